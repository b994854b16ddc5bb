package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/commands/options"
	"tableflip.dev/satcat/pkg/runner/overlay"
)

func addOverlay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "overlay",
		Aliases: []string{"diff"},
		Short:   "List the satellites changed, added or deleted relative to the baseline.",
		Example: `
satcat overlay
satcat diff --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := overlay.Overlay{Session: s, JSON: output.JSON}
				return r.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard every edit and go back to the baseline.",
		Example: `
satcat reset
satcat reset -y
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := overlay.Reset{Session: s, Yes: co.Yes, In: cmd.InOrStdin()}
				return r.Do(ctx)
			})
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
