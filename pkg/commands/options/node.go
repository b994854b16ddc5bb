package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/satcat/pkg/app"
)

// NodeOptions holds the editable fields of a satellite or module.
type NodeOptions struct {
	Name        string
	Icon        string
	Type        string
	Image       string
	Description string
}

func AddNodeArgs(cmd *cobra.Command, o *NodeOptions) {
	cmd.Flags().StringVar(&o.Icon, "icon", "",
		"Icon shown next to the name, usually an emoji.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		"Free text kind, for example \"Camera\".")
	cmd.Flags().StringVar(&o.Image, "image", "",
		"Image path or data URI. Use `satcat image` to embed a file.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Description. **bold**, *italic* and \"- \" bullets are rendered.")
}

func AddNameArg(cmd *cobra.Command, o *NodeOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"New name.")
}

// Input returns the fields as given.
func (o *NodeOptions) Input() app.NodeInput {
	return app.NodeInput{Name: o.Name, Icon: o.Icon, Type: o.Type, Image: o.Image, Description: o.Description}
}

// Merge overlays the flags that were set on cmd onto current.
func (o *NodeOptions) Merge(cmd *cobra.Command, current app.NodeInput) app.NodeInput {
	flags := cmd.Flags()
	if flags.Changed("name") {
		current.Name = o.Name
	}
	if flags.Changed("icon") {
		current.Icon = o.Icon
	}
	if flags.Changed("type") {
		current.Type = o.Type
	}
	if flags.Changed("image") {
		current.Image = o.Image
	}
	if flags.Changed("description") {
		current.Description = o.Description
	}
	return current
}
