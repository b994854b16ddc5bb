package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/commands/options"
)

var (
	output    = &options.OutputOptions{}
	storeOpts = &options.StoreOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "satcat",
		Short: base.Wrap80("Browse and edit a catalogue of satellites and their modules."),
		Long: base.Wrap80("satcat keeps a built-in catalogue of satellites read-only and stores " +
			"your additions, changes and deletions as an overlay on top of it. " +
			"A navigation cursor remembers which satellite and module you are looking at between runs."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddStoreArgs(cmd, storeOpts)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addNav(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addImage(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addOverlay(topLevel)
	addReset(topLevel)
	addWatch(topLevel)
	addBrowse(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
