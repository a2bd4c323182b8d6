package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-go-golems/pipemon/pkg/monitor"
	"github.com/go-go-golems/pipemon/pkg/transport"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFilename = ".pipemon.yaml"
	EnvPrefix             = "PIPEMON"
)

const (
	TransportNATS   = "nats"
	TransportMemory = "memory"
)

type File struct {
	Transport     string          `yaml:"transport" envconfig:"TRANSPORT"`
	Endpoint      string          `yaml:"endpoint" envconfig:"ENDPOINT"`
	PollTimeout   time.Duration   `yaml:"poll_timeout" envconfig:"POLL_TIMEOUT"`
	FrameInterval time.Duration   `yaml:"frame_interval" envconfig:"FRAME_INTERVAL"`
	MetricsAddr   string          `yaml:"metrics_addr,omitempty" envconfig:"METRICS_ADDR"`
	Topics        wire.TopicSet   `yaml:"topics"`
	Delimiters    wire.Delimiters `yaml:"delimiters"`
}

func Default() *File {
	return &File{
		Transport:     TransportNATS,
		Endpoint:      transport.DefaultNATSURL,
		PollTimeout:   monitor.DefaultPollTimeout,
		FrameInterval: monitor.DefaultFrameInterval,
		Topics:        wire.DefaultTopics(),
		Delimiters:    wire.DefaultDelimiters(),
	}
}

func DefaultPath(dir string) string {
	return filepath.Join(dir, DefaultConfigFilename)
}

// LoadFromFile reads path over the defaults. Keys missing from the file keep
// their default value.
func LoadFromFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	return cfg, nil
}

func LoadOptional(path string) (*File, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(err, "stat config")
	}
	return LoadFromFile(path)
}

// Load reads the optional file at path, applies PIPEMON_* environment
// overrides and validates the result.
func Load(path string) (*File, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "apply environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *File) Validate() error {
	switch f.Transport {
	case TransportNATS, TransportMemory:
	default:
		return errors.Errorf("unknown transport %q", f.Transport)
	}
	if f.PollTimeout <= 0 {
		return errors.New("poll_timeout must be > 0")
	}
	if f.FrameInterval <= 0 {
		return errors.New("frame_interval must be > 0")
	}
	for _, topic := range f.Topics.All() {
		if topic == "" {
			return errors.New("topic labels must not be empty")
		}
	}
	if f.Delimiters.Step == "" || f.Delimiters.Router == "" {
		return errors.New("delimiters must not be empty")
	}
	return nil
}

func (f *File) EngineOptions() monitor.Options {
	return monitor.Options{
		Topics:        f.Topics,
		Delimiters:    f.Delimiters,
		PollTimeout:   f.PollTimeout,
		FrameInterval: f.FrameInterval,
	}
}
