package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultOverlayKey is the record the edit overlay lives under.
const DefaultOverlayKey = "satellite-catalogue-edits"

// Config describes where satcat keeps its data.
type Config interface {
	BasePath() string
	Driver() string
	BaselinePath() string
	OverlayKey() string
}

// LoadConfig reads .satcat.yaml from $SATCAT_CONFIG_PATH or the working
// directory, with SATCAT_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.satcat.db")
	v.SetDefault("driver", DriverDiskv)
	v.SetDefault("baseline", "")
	v.SetDefault("key", DefaultOverlayKey)
	v.SetConfigName(".satcat") // .yaml is implicit
	v.SetEnvPrefix("SATCAT")
	v.AutomaticEnv()

	if override := os.Getenv("SATCAT_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	baseline, err := homedir.Expand(v.GetString("baseline"))
	if err != nil {
		return nil, fmt.Errorf("store: expand baseline: %w", err)
	}

	return &fileConfig{
		Path:     path,
		Backend:  v.GetString("driver"),
		Baseline: baseline,
		Key:      v.GetString("key"),
	}, nil
}

// StaticConfig builds a Config from explicit values. Empty key and driver
// fall back to the defaults.
func StaticConfig(path, driver, baseline, key string) Config {
	if driver == "" {
		driver = DriverDiskv
	}
	if key == "" {
		key = DefaultOverlayKey
	}
	return &fileConfig{Path: path, Backend: driver, Baseline: baseline, Key: key}
}

type fileConfig struct {
	Path     string `json:"path"`
	Backend  string `json:"driver"`
	Baseline string `json:"baseline,omitempty"`
	Key      string `json:"key"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Driver() string {
	return f.Backend
}

func (f *fileConfig) BaselinePath() string {
	return f.Baseline
}

func (f *fileConfig) OverlayKey() string {
	if f.Key == "" {
		return DefaultOverlayKey
	}
	return f.Key
}
