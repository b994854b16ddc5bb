package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/catalogue"
	"tableflip.dev/satcat/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	path := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole catalogue, edits included, as JSON.",
		Example: `
satcat export
satcat export -o ` + catalogue.ExportFileName + `
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := transfer.Export{Session: s, Path: path}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "File to write. Defaults to stdout.")
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the catalogue with an exported one.",
		Long: "Replace the working catalogue with the contents of an export. The baseline is " +
			"kept, so the difference is stored as edits and `satcat reset` brings it back.",
		Example: `
satcat import ` + catalogue.ExportFileName + `
cat backup.json | satcat import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *app.Session) error {
				r := transfer.Import{Session: s, Path: args[0], In: cmd.InOrStdin()}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
