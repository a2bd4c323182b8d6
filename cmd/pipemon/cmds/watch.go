package cmds

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/pipemon/pkg/config"
	"github.com/go-go-golems/pipemon/pkg/emitter"
	"github.com/go-go-golems/pipemon/pkg/monitor"
	"github.com/go-go-golems/pipemon/pkg/store"
	"github.com/go-go-golems/pipemon/pkg/tui"
	"github.com/go-go-golems/pipemon/pkg/tui/models"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type watchSettings struct {
	plain        bool
	altScreen    bool
	demo         bool
	demoInterval time.Duration
	demoRounds   int
	record       string
}

func newWatchCmd() *cobra.Command {
	var s watchSettings

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Subscribe to a pipeline and show its steps as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}
			return runWatch(cmd, opts.Config, s)
		},
	}

	cmd.Flags().BoolVar(&s.plain, "plain", false, "Log snapshots as JSON lines on stdout instead of starting the TUI")
	cmd.Flags().BoolVar(&s.altScreen, "alt-screen", true, "Use the terminal alternate screen buffer")
	cmd.Flags().BoolVar(&s.demo, "demo", false, "Play a scripted pipeline onto the transport while watching")
	cmd.Flags().DurationVar(&s.demoInterval, "demo-interval", 300*time.Millisecond, "Delay between demo frames")
	cmd.Flags().IntVar(&s.demoRounds, "demo-rounds", 3, "Rounds per demo session")
	cmd.Flags().StringVar(&s.record, "record", "", "Also append every snapshot as a JSON line to this file")
	return cmd
}

func runWatch(cmd *cobra.Command, cfg *config.File, s watchSettings) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	l, err := newLink(cfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := monitor.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return err
	}
	engineOpts := cfg.EngineOptions()
	engineOpts.Metrics = metrics

	eg, egCtx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		eg.Go(func() error { return serveMetrics(egCtx, cfg.MetricsAddr, registry) })
	}
	if s.demo {
		eg.Go(func() error {
			return ignoreCanceled(runDemo(egCtx, cfg, l, s))
		})
	}

	var record monitor.Sink
	if s.record != "" {
		f, err := os.OpenFile(s.record, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "open record file")
		}
		defer func() { _ = f.Close() }()
		record = newJSONLinesSink(f)
	}

	if s.plain {
		runPlain(egCtx, eg, cancel, withRecord(newJSONLinesSink(cmd.OutOrStdout()), record), l, engineOpts)
	} else if err := runTUI(egCtx, eg, cancel, cmd, cfg, l, engineOpts, record, s.altScreen); err != nil {
		return err
	}

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "watch")
	}
	return nil
}

// newJSONLinesSink writes every emission to out as one JSON line.
func newJSONLinesSink(out io.Writer) monitor.Sink {
	lines := zerolog.New(out).With().Timestamp().Logger()
	return monitor.SinkFunc(func(ctx context.Context, steps []store.StepRecord) error {
		running := 0
		for _, st := range steps {
			if st.Running {
				running++
			}
		}
		lines.Log().Int("running", running).Interface("steps", steps).Send()
		return nil
	})
}

// withRecord adds the --record sink, if any, after primary.
func withRecord(primary, record monitor.Sink) monitor.Sink {
	if record == nil {
		return primary
	}
	return monitor.MultiSink{primary, record}
}

// runPlain runs the engine into sink. The command ends when the engine does,
// including when it comes up disabled.
func runPlain(ctx context.Context, eg *errgroup.Group, cancel context.CancelFunc, sink monitor.Sink, l link, opts monitor.Options) {
	opts.OnStateChange = func(st monitor.State) {
		log.Info().Str("state", string(st)).Msg("monitor state")
	}

	engine := monitor.NewEngine(l.connector, sink, opts)
	eg.Go(func() error {
		defer cancel()
		return engine.Run(ctx)
	})
}

func runTUI(ctx context.Context, eg *errgroup.Group, cancel context.CancelFunc, cmd *cobra.Command, cfg *config.File, l link, opts monitor.Options, record monitor.Sink, altScreen bool) error {
	bus, err := tui.NewInMemoryBus()
	if err != nil {
		return err
	}

	model := models.NewRootModel(cfg.Endpoint)
	programOptions := []tea.ProgramOption{
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if altScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, programOptions...)
	tui.RegisterUIForwarder(bus, program)

	publisher := tui.NewPublisher(bus, cfg.Endpoint)
	opts.OnStateChange = func(st monitor.State) {
		if err := publisher.PublishState(string(st)); err != nil {
			log.Warn().Err(err).Msg("publish monitor state")
		}
	}
	engine := monitor.NewEngine(l.connector, withRecord(publisher, record), opts)

	eg.Go(func() error {
		return ignoreCanceled(bus.Run(ctx))
	})
	eg.Go(func() error {
		// nothing subscribes to the bus before the router is up
		select {
		case <-bus.Running():
		case <-ctx.Done():
			return nil
		}
		return engine.Run(ctx)
	})
	eg.Go(func() error {
		_, err := program.Run()
		cancel()
		return ignoreCanceled(err)
	})
	return nil
}

func runDemo(ctx context.Context, cfg *config.File, l link, s watchSettings) error {
	pub, err := l.newPublisher()
	if err != nil {
		log.Error().Err(err).Msg("demo emitter disabled")
		return nil
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn().Err(err).Msg("close demo publisher")
		}
	}()
	enc := wire.NewEncoder(cfg.Topics, cfg.Delimiters)
	return emitter.Run(ctx, pub, enc, 0, s.demoRounds, s.demoInterval)
}

func ignoreCanceled(err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
