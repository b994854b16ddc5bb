package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/commands/options"
	"tableflip.dev/satcat/pkg/runner/edit"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a satellite, a module, or a sub-component.",
		Example: `
satcat add satellite "Sentinel-6" --icon 🌊 -t "Ocean altimetry"
satcat add module "Star tracker" -t ADCS
satcat add sub "Baffle"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, a := range []struct {
		use, short string
		aliases    []string
		target     app.Target
	}{
		{use: "satellite <name>", aliases: []string{"sat"}, short: "Append a satellite to the catalogue.", target: app.TargetNewRoot},
		{use: "module <name>", aliases: []string{"mod"}, short: "Append a module at the current depth.", target: app.TargetNewModule},
		{use: "sub <name>", aliases: []string{"subcomponent"}, short: "Append a module under the selected module.", target: app.TargetNewSubcomponent},
	} {
		cmd.AddCommand(newAddCommand(a.use, a.short, a.aliases, a.target))
	}

	topLevel.AddCommand(cmd)
}

func newAddCommand(use, short string, aliases []string, target app.Target) *cobra.Command {
	no := &options.NodeOptions{}

	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			no.Name = strings.Join(args, " ")
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := edit.Save{
					Session: s,
					Target:  target,
					Input:   no.Input(),
					ShowID:  output.ShowID,
					JSON:    output.JSON,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddNodeArgs(cmd, no)
	options.AddOutputArg(cmd, output)
	options.AddShowIDArgs(cmd, output)
	return cmd
}
