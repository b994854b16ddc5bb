package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/commands/options"
	"tableflip.dev/satcat/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the catalogue again whenever another satcat changes it.",
		Long: "Follow the store and reprint the cursor view after each change. " +
			"The badger driver locks its directory, so watch works with diskv and sqlite.",
		Example: `
satcat watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, cfg, closer, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			r := watch.Watch{
				Session:  s,
				BasePath: cfg.BasePath(),
				Keys:     []string{cfg.OverlayKey(), app.CursorKey},
				ShowID:   output.ShowID,
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddShowIDArgs(cmd, output)
	topLevel.AddCommand(cmd)
}
