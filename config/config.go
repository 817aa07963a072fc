// Package config resolves cutlist settings from defaults, a .cutlist.yaml file,
// .env and CUTLIST_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"cutlist/compiler"
)

const envPrefix = "CUTLIST"

// Config holds resolved settings. Padding and tolerance are frames.
type Config struct {
	HeadPadding    int
	TailPadding    int
	MergeTolerance int
	StorePath      string
	Listen         string
	LogLevel       string
	// File is the config file that was read, empty when none was found.
	File string
}

// Load reads configuration. An explicit path must exist; otherwise .cutlist.yaml
// is looked up in $CUTLIST_CONFIG_PATH, the working directory and the home
// directory, and a missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("head_padding", compiler.DefaultHeadPadding)
	v.SetDefault("tail_padding", compiler.DefaultTailPadding)
	v.SetDefault("merge_tolerance", compiler.DefaultMergeTolerance)
	v.SetDefault("store_path", "~/.cutlist/selections")
	v.SetDefault("listen", "127.0.0.1:8788")
	v.SetDefault("log_level", "info")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(".cutlist") // .yaml is implicit
		if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		HeadPadding:    v.GetInt("head_padding"),
		TailPadding:    v.GetInt("tail_padding"),
		MergeTolerance: v.GetInt("merge_tolerance"),
		StorePath:      v.GetString("store_path"),
		Listen:         v.GetString("listen"),
		LogLevel:       v.GetString("log_level"),
		File:           v.ConfigFileUsed(),
	}

	storePath, err := homedir.Expand(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	cfg.StorePath = storePath

	if err := cfg.Options().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options returns the compiler options the config describes.
func (c *Config) Options() compiler.Options {
	return compiler.Options{
		HeadPadding:    c.HeadPadding,
		TailPadding:    c.TailPadding,
		MergeTolerance: c.MergeTolerance,
	}
}
