package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the catalogue and where it is stored.",
		Example: `
satcat info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := storeOpts.Config()
			if err != nil {
				return err
			}
			i := info.Info{Config: cfg}
			s, _, closer, err := openSession(context.Background(), cmd.ErrOrStderr())
			if err != nil {
				i.OpenErr = err
			} else {
				defer closer()
				i.Session = s
			}
			return output.HandleError(i.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
