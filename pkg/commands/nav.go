package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/commands/options"
	"tableflip.dev/satcat/pkg/runner/nav"
)

type navCommand struct {
	use     string
	aliases []string
	short   string
	example string
	move    nav.Move
	// arg names the positional argument, if any.
	arg      string
	complete func(toComplete string) []string
}

func addNav(topLevel *cobra.Command) {
	for _, nc := range []navCommand{{
		use:      "enter <satellite>",
		short:    "Open a satellite by its index in the home list.",
		example:  "satcat enter 0",
		move:     nav.Enter,
		arg:      "satellite",
		complete: satelliteCompletions,
	}, {
		use:      "drill <module>",
		aliases:  []string{"cd"},
		short:    "Descend into a module that has modules of its own.",
		example:  "satcat drill 2",
		move:     nav.Drill,
		arg:      "module",
		complete: moduleCompletions,
	}, {
		use:      "crumb <level>",
		short:    "Jump back to a breadcrumb. \"root\" (or -1) is the satellite itself.",
		example:  "satcat crumb root\nsatcat crumb 0\nsatcat crumb -- -1",
		move:     nav.Crumb,
		arg:      "level",
		complete: crumbCompletions,
	}, {
		use:     "up",
		aliases: []string{".."},
		short:   "Go one level up, or home from a satellite.",
		example: "satcat up",
		move:    nav.Up,
	}, {
		use:     "home",
		short:   "Close the satellite and list them all.",
		example: "satcat home",
		move:    nav.Home,
	}, {
		use:      "goto <id>",
		short:    "Jump to a satellite or module by id.",
		example:  "satcat goto iss-arrays",
		move:     nav.Goto,
		arg:      "id",
		complete: idCompletions,
	}} {
		topLevel.AddCommand(newNavCommand(nc))
	}
	topLevel.AddCommand(newSelectCommand())
}

func newNavCommand(nc navCommand) *cobra.Command {
	quiet := false
	r := nav.Nav{Move: nc.move}

	args := cobra.NoArgs
	if nc.arg != "" {
		args = cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:     nc.use,
		Aliases: nc.aliases,
		Short:   nc.short,
		Example: "\n" + nc.example + "\n",
		Args:    args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				switch {
				case nc.move == nav.Goto:
					r.ID = args[0]
				case nc.move == nav.Crumb && args[0] == "root":
					r.Index = -1
				default:
					i, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("%s must be a number, got %q", nc.arg, args[0])
					}
					r.Index = i
				}
			}
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r.Session = s
				r.ShowID = output.ShowID
				r.JSON = output.JSON
				r.Quiet = quiet
				return r.Do(ctx)
			})
		},
	}
	if nc.complete != nil {
		cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nc.complete(toComplete), cobra.ShellCompDirectiveNoFileComp
		}
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Move without printing the result.")
	options.AddOutputArg(cmd, output)
	options.AddShowIDArgs(cmd, output)
	return cmd
}

func newSelectCommand() *cobra.Command {
	var quiet, deselect bool

	cmd := &cobra.Command{
		Use:   "select [module]",
		Short: "Select a module at the current depth so it can be edited.",
		Example: `
satcat select 1
satcat select --clear
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return moduleCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := nav.Nav{Move: nav.Deselect}
			if !deselect {
				if len(args) != 1 {
					return fmt.Errorf("select needs a module index, or --clear")
				}
				i, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("module must be a number, got %q", args[0])
				}
				r.Move, r.Index = nav.Select, i
			}
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r.Session = s
				r.ShowID = output.ShowID
				r.JSON = output.JSON
				r.Quiet = quiet
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&deselect, "clear", false, "Drop the selection instead.")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Move without printing the result.")
	options.AddOutputArg(cmd, output)
	options.AddShowIDArgs(cmd, output)
	return cmd
}
