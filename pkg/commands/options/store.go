package options

import (
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/store"
)

// StoreOptions override the loaded configuration for one invocation.
type StoreOptions struct {
	Path     string
	Driver   string
	Baseline string
	Verbose  bool
}

func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	cmd.PersistentFlags().StringVar(&o.Path, "path", "",
		"Storage directory. Overrides the config file.")
	cmd.PersistentFlags().StringVar(&o.Driver, "driver", "",
		"Storage driver: diskv, badger or sqlite.")
	cmd.PersistentFlags().StringVar(&o.Baseline, "baseline", "",
		"Directory of satellite files to use instead of the built-in set.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log storage activity to stderr.")
}

// Config loads the configuration and applies any overrides.
func (o *StoreOptions) Config() (store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	path, driver, baseline := cfg.BasePath(), cfg.Driver(), cfg.BaselinePath()
	if o.Path != "" {
		if path, err = homedir.Expand(o.Path); err != nil {
			return nil, err
		}
	}
	if o.Driver != "" {
		driver = o.Driver
	}
	if o.Baseline != "" {
		if baseline, err = homedir.Expand(o.Baseline); err != nil {
			return nil, err
		}
	}
	return store.StaticConfig(path, driver, baseline, cfg.OverlayKey()), nil
}
