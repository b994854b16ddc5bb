package commands

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/node"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(satcat completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(satcat completion)
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(os.Stdout)
			case "fish":
				return topLevel.GenFishCompletion(os.Stdout, true)
			default:
				return topLevel.GenBashCompletionV2(os.Stdout, true)
			}
		},
	}

	topLevel.AddCommand(cmd)
}

// completionView opens the catalogue quietly for shell completion.
func completionView() (app.View, bool) {
	s, _, closer, err := openSession(context.Background(), io.Discard)
	if err != nil {
		return app.View{}, false
	}
	defer closer()
	return s.View(), true
}

func indexed(nodes []*node.Node, toComplete string) []string {
	out := make([]string, 0, len(nodes))
	for i, n := range nodes {
		idx := strconv.Itoa(i)
		if strings.HasPrefix(idx, toComplete) {
			out = append(out, idx+"\t"+n.Name)
		}
	}
	return out
}

func satelliteCompletions(toComplete string) []string {
	v, ok := completionView()
	if !ok {
		return nil
	}
	return indexed(v.Roots, toComplete)
}

func moduleCompletions(toComplete string) []string {
	v, ok := completionView()
	if !ok {
		return nil
	}
	return indexed(v.Modules, toComplete)
}

func crumbCompletions(toComplete string) []string {
	v, ok := completionView()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(v.Crumbs))
	for _, c := range v.Crumbs {
		level := strconv.Itoa(c.Level)
		if c.Level == -1 {
			level = "root"
		}
		if strings.HasPrefix(level, toComplete) {
			out = append(out, level+"\t"+c.Name)
		}
	}
	return out
}

func idCompletions(toComplete string) []string {
	v, ok := completionView()
	if !ok {
		return nil
	}
	var out []string
	node.Walk(v.Roots, func(n *node.Node, _ int) bool {
		if strings.HasPrefix(n.ID, toComplete) {
			out = append(out, n.ID+"\t"+n.Name)
		}
		return true
	})
	return out
}
