package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/commands/options"
	"tableflip.dev/satcat/pkg/cursor"
	"tableflip.dev/satcat/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the open satellite or the selected module.",
		Example: `
satcat edit satellite -n "ISS (Zarya)"
satcat edit module -d "**Primary** power bus"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newEditCommand("satellite", []string{"sat"}, "Change the open satellite.", app.TargetRoot),
		newEditCommand("module", []string{"mod"}, "Change the selected module.", app.TargetSelected),
	)
	topLevel.AddCommand(cmd)
}

func newEditCommand(use string, aliases []string, short string, target app.Target) *cobra.Command {
	no := &options.NodeOptions{}

	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short + " Only the flags given are changed.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				v := s.View()
				current := v.Root
				if target == app.TargetSelected {
					current = v.Selected
				}
				if current == nil {
					if target == app.TargetSelected {
						return app.ErrNoSelection
					}
					return cursor.ErrNoRoot
				}
				r := edit.Save{
					Session: s,
					Target:  target,
					Input:   no.Merge(cmd, app.InputFrom(current)),
					ShowID:  output.ShowID,
					JSON:    output.JSON,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddNameArg(cmd, no)
	options.AddNodeArgs(cmd, no)
	options.AddOutputArg(cmd, output)
	options.AddShowIDArgs(cmd, output)
	return cmd
}

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete the open satellite or the selected module, with everything below it.",
		Example: `
satcat delete module
satcat delete satellite -y
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newDeleteCommand("satellite", []string{"sat"}, "Delete the open satellite.", app.DeleteRoot),
		newDeleteCommand("module", []string{"mod"}, "Delete the selected module.", app.DeleteSelected),
	)
	topLevel.AddCommand(cmd)
}

func newDeleteCommand(use string, aliases []string, short string, target app.DeleteTarget) *cobra.Command {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := edit.Delete{
					Session: s,
					Target:  target,
					Yes:     co.Yes,
					JSON:    output.JSON,
					In:      cmd.InOrStdin(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	return cmd
}

func addImage(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "image <file>",
		Short: "Embed an image into the selected module, or the open satellite.",
		Long:  "The file must be an image of at most 2 MiB. It is stored inline as a data URI.",
		Example: `
satcat image ./hubble.png
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := edit.Image{
					Session: s,
					Path:    args[0],
					JSON:    output.JSON,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
