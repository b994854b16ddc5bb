package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/commands/options"
	"tableflip.dev/satcat/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	var tree, lineage bool

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Show what the cursor is looking at.",
		Example: `
satcat show
satcat ls --tree
satcat show --lineage -k
satcat show --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := show.Show{
					Session: s,
					ShowID:  output.ShowID,
					JSON:    output.JSON,
					Tree:    tree,
					Lineage: lineage,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Print every satellite with all of its modules.")
	cmd.Flags().BoolVar(&lineage, "lineage", false, "Print the path from the satellite down to the selection.")
	options.AddOutputArg(cmd, output)
	options.AddShowIDArgs(cmd, output)

	topLevel.AddCommand(cmd)
}
