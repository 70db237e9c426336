package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "bitcalc"

// loadConfig layers, from lowest to highest priority: defaults, the config
// file, BITCALC_* environment variables and explicitly set flags.
func (a *app) loadConfig(cmd *cobra.Command) error {
	vip := viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	vip.SetDefault("width", a.cfg.Width)
	vip.SetDefault("unsigned", a.cfg.Unsigned)
	vip.SetDefault("iterations", a.cfg.Iterations)
	vip.SetDefault("workers", a.cfg.Workers)
	vip.SetDefault("seed", a.cfg.Seed)

	if err := loadConfigFile(vip, a.configFile, cmd.Flags().Changed("config")); err != nil {
		return err
	}

	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := vip.Unmarshal(a.cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// loadConfigFile reads the config file. A missing file is only an error if it was asked for explicitly.
func loadConfigFile(vip *viper.Viper, fileLocation string, explicit bool) error {
	if fileLocation == "" {
		return nil
	}

	vip.SetConfigFile(smutil.GetCanonicalPath(fileLocation))
	err := vip.ReadInConfig()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return nil
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}
}
