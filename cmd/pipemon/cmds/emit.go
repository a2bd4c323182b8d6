package cmds

import (
	"time"

	"github.com/go-go-golems/pipemon/pkg/config"
	"github.com/go-go-golems/pipemon/pkg/emitter"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newEmitCmd() *cobra.Command {
	var sessions, rounds int
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Publish a scripted pipeline run so a monitor has something to show",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}
			cfg := opts.Config
			if cfg.Transport == config.TransportMemory {
				return errors.New("emit needs a shared transport; use watch --demo for the in-memory one")
			}
			l, err := newLink(cfg)
			if err != nil {
				return err
			}
			pub, err := l.newPublisher()
			if err != nil {
				return err
			}
			defer func() { _ = pub.Close() }()

			enc := wire.NewEncoder(cfg.Topics, cfg.Delimiters)
			return ignoreCanceled(emitter.Run(cmd.Context(), pub, enc, sessions, rounds, interval))
		},
	}

	cmd.Flags().IntVar(&sessions, "sessions", 1, "Sessions to play; 0 loops until interrupted")
	cmd.Flags().IntVar(&rounds, "rounds", 3, "Snapshot rounds per session")
	cmd.Flags().DurationVar(&interval, "interval", 300*time.Millisecond, "Delay between frames")
	return cmd
}
