// Package monitor runs the reconciliation loop of a pipeline monitor.
//
// An Engine owns a single goroutine that receives frames from a Source,
// decodes them, applies them to a store.Store and hands copies of the store
// to a Sink. The goroutine is the only writer of the store, so the store has
// no locks; the Sink only ever sees copies.
//
// Emissions to the Sink are capped at one per frame interval while events
// keep arriving. When a receive times out with nothing to read, the current
// state is emitted regardless of the cap so a quiet pipeline still refreshes
// the display once per poll timeout.
package monitor
