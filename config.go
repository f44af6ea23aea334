package grid

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Mode decides when edits are turned into rebuilds.
type Mode string

const (
	// Immediate rebuilds the 3x3 block around every effective edit.
	// Full rebuilds only happen on Initialize and config changes.
	Immediate Mode = "immediate"

	// Deferred only flags that a rebuild is needed. The next Tick does one
	// full rebuild no matter how many edits came before it. Used by editors
	// where many edits land in one frame.
	Deferred Mode = "deferred"
)

// Config includes settings for a Grid
type Config struct {
	// in cells
	Width  uint `yaml:"width"`
	Height uint `yaml:"height"`

	Mode Mode `yaml:"mode"`

	// labels for each property bit, display only
	PropertyNames []string `yaml:"property_names"`
}

// DefaultConfig returns a grid config with default settings.
func DefaultConfig() *Config {
	return &Config{
		Width:  5,
		Height: 5,
		Mode:   Immediate,
	}
}

// LoadConfig reads a YAML config file. Unset fields keep their defaults.
func LoadConfig(fname string) (*Config, error) {
	path, err := expandPath(fname)
	if err != nil {
		return nil, err
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	switch cfg.Mode {
	case Immediate, Deferred:
	case "":
		cfg.Mode = Immediate
	default:
		return nil, errors.Errorf("unknown mode %q", cfg.Mode)
	}

	return cfg, nil
}

// size returns the configured size as ints
func (c *Config) size() Size {
	return Size{X: int(c.Width), Y: int(c.Height)}
}
