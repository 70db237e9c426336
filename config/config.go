package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spacemeshos/smutil"

	"github.com/spacemeshos/bitint"
)

const (
	MinWidth = bitint.MinWidth

	// MaxWidth keeps CLI and verification workloads bounded; the encoding itself allows up to bitint.MaxWidth.
	MaxWidth = 4096

	MaxIterations = 1 << 24
	MaxWorkers    = 1 << 10
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultWidth          = bitint.DefaultWidth
	DefaultIterations     = 1 << 10
	DefaultSeed           = 1
)

var (
	DefaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), ".bitcalc")
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFileName)
)

type Config struct {
	Width    uint `mapstructure:"width"`
	Unsigned bool `mapstructure:"unsigned"`

	// Property verification.
	Iterations uint  `mapstructure:"iterations"`
	Workers    uint  `mapstructure:"workers"`
	Seed       int64 `mapstructure:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Iterations: DefaultIterations,
		Workers:    defaultWorkers(),
		Seed:       DefaultSeed,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Width < MinWidth {
		return fmt.Errorf("invalid `Width`; expected: >= %d, given: %d", MinWidth, cfg.Width)
	}

	if cfg.Width > MaxWidth {
		return fmt.Errorf("invalid `Width`; expected: <= %d, given: %d", MaxWidth, cfg.Width)
	}

	if cfg.Iterations > MaxIterations {
		return fmt.Errorf("invalid `Iterations`; expected: <= %d, given: %d", MaxIterations, cfg.Iterations)
	}

	if cfg.Workers == 0 {
		return fmt.Errorf("invalid `Workers`; expected: >= 1, given: %d", cfg.Workers)
	}

	if cfg.Workers > MaxWorkers {
		return fmt.Errorf("invalid `Workers`; expected: <= %d, given: %d", MaxWorkers, cfg.Workers)
	}

	return nil
}

// Kind names the integer kind the config selects.
func (cfg *Config) Kind() string {
	if cfg.Unsigned {
		return "unsigned"
	}
	return "signed"
}

func defaultWorkers() uint {
	n := uint(runtime.NumCPU())
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
