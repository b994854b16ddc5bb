package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/runner/browse"
)

func addBrowse(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ui"},
		Short:   "Browse and edit the catalogue interactively.",
		Example: `
satcat browse
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				return browse.Run(ctx, s)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
