package cmds

import (
	"os"
	"path/filepath"

	"github.com/go-go-golems/pipemon/pkg/config"
	"github.com/go-go-golems/pipemon/pkg/monitor"
	"github.com/go-go-golems/pipemon/pkg/transport"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOptions struct {
	ConfigPath string
	Config     *config.File
}

func AddRootFlags(root *cobra.Command) {
	addRootFlags(root.PersistentFlags())
}

func addRootFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config file (defaults to .pipemon.yaml in the current directory)")
	fs.String("transport", "", "Transport to subscribe on: nats or memory")
	fs.String("endpoint", "", "Transport endpoint, e.g. nats://127.0.0.1:4222")
	fs.Duration("poll-timeout", 0, "Receive timeout; also the idle refresh period")
	fs.Duration("frame-interval", 0, "Minimum time between two published snapshots")
	fs.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464)")
}

// getRootOptions loads the config file, then PIPEMON_* environment, then any
// root flag the user set explicitly.
func getRootOptions(cmd *cobra.Command) (rootOptions, error) {
	fs := cmd.Root().PersistentFlags()

	cfgPath, err := fs.GetString("config")
	if err != nil {
		return rootOptions{}, err
	}
	if cfgPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return rootOptions{}, err
		}
		cfgPath = config.DefaultPath(cwd)
	}
	cfgPath, err = filepath.Abs(cfgPath)
	if err != nil {
		return rootOptions{}, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return rootOptions{}, errors.Wrapf(err, "load %s", cfgPath)
	}
	if err := applyFlagOverrides(fs, cfg); err != nil {
		return rootOptions{}, err
	}
	if err := cfg.Validate(); err != nil {
		return rootOptions{}, err
	}
	return rootOptions{ConfigPath: cfgPath, Config: cfg}, nil
}

func applyFlagOverrides(fs *pflag.FlagSet, cfg *config.File) error {
	var err error
	if fs.Changed("transport") {
		if cfg.Transport, err = fs.GetString("transport"); err != nil {
			return err
		}
	}
	if fs.Changed("endpoint") {
		if cfg.Endpoint, err = fs.GetString("endpoint"); err != nil {
			return err
		}
	}
	if fs.Changed("poll-timeout") {
		if cfg.PollTimeout, err = fs.GetDuration("poll-timeout"); err != nil {
			return err
		}
	}
	if fs.Changed("frame-interval") {
		if cfg.FrameInterval, err = fs.GetDuration("frame-interval"); err != nil {
			return err
		}
	}
	if fs.Changed("metrics-addr") {
		if cfg.MetricsAddr, err = fs.GetString("metrics-addr"); err != nil {
			return err
		}
	}
	return nil
}

// link is both ends of the configured transport. The monitor uses the
// connector; demo emitters use the publisher.
type link struct {
	connector    monitor.Connector
	newPublisher func() (transport.Publisher, error)
}

func newLink(cfg *config.File) (link, error) {
	switch cfg.Transport {
	case config.TransportMemory:
		pubsub := transport.NewInMemoryPubSub()
		return link{
			connector: &transport.Watermill{Subscriber: pubsub},
			newPublisher: func() (transport.Publisher, error) {
				return &transport.WatermillPublisher{Publisher: pubsub}, nil
			},
		}, nil
	case config.TransportNATS:
		n := &transport.NATS{URL: cfg.Endpoint, Name: "pipemon"}
		return link{
			connector: n,
			newPublisher: func() (transport.Publisher, error) {
				return transport.NewNATSPublisher(&transport.NATS{URL: cfg.Endpoint, Name: "pipemon-emit"})
			},
		}, nil
	default:
		return link{}, errors.Errorf("unknown transport %q", cfg.Transport)
	}
}
