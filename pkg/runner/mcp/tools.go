package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/satcat/pkg/app"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(listSatellitesTool(), listSatellitesHandler(svc))
	srv.AddTool(getNodeTool(), getNodeHandler(svc))
	srv.AddTool(addSatelliteTool(), addSatelliteHandler(svc))
	srv.AddTool(addModuleTool(), addModuleHandler(svc))
	srv.AddTool(updateNodeTool(), updateNodeHandler(svc))
	srv.AddTool(setImageTool(), setImageHandler(svc))
	srv.AddTool(deleteNodeTool(), deleteNodeHandler(svc))
	srv.AddTool(showOverlayTool(), showOverlayHandler(svc))
	srv.AddTool(exportCatalogueTool(), exportCatalogueHandler(svc))
}

// nodeFieldOptions are the editable fields shared by the add tools.
func nodeFieldOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name."),
		),
		mcp.WithString("icon",
			mcp.Description("Single emoji or short glyph shown before the name."),
		),
		mcp.WithString("type",
			mcp.Description("Free-form kind, such as power, payload or structure."),
		),
		mcp.WithString("description",
			mcp.Description("Description; supports **bold**, *italic* and - bullets."),
		),
	}
}

type nodeArgs struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (a nodeArgs) input() app.NodeInput {
	return app.NodeInput{Name: a.Name, Icon: a.Icon, Type: a.Type, Description: a.Description}
}

func listSatellitesTool() mcp.Tool {
	return mcp.NewTool(
		"list_satellites",
		mcp.WithDescription("List every satellite in the catalogue with module counts."),
	)
}

func listSatellitesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListSatellites(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"satellites": list, "count": len(list)})
	}
}

func getNodeTool() mcp.Tool {
	return mcp.NewTool(
		"get_node",
		mcp.WithDescription("Fetch a satellite or module by id, with its path and direct modules."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier."),
		),
	)
}

func getNodeHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.GetNode(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func addSatelliteTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Add a satellite to the end of the catalogue."),
	}, nodeFieldOptions()...)
	return mcp.NewTool("add_satellite", opts...)
}

func addSatelliteHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args nodeArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddSatellite(ctx, args.input())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func addModuleTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Add a module under a satellite or another module."),
		mcp.WithString("parent_id",
			mcp.Required(),
			mcp.Description("Satellite or module that receives the new module."),
		),
	}, nodeFieldOptions()...)
	return mcp.NewTool("add_module", opts...)
}

func addModuleHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			nodeArgs
			ParentID string `json:"parent_id"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddModule(ctx, args.ParentID, args.input())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func updateNodeTool() mcp.Tool {
	return mcp.NewTool(
		"update_node",
		mcp.WithDescription("Change fields of a satellite or module. Omitted fields are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier."),
		),
		mcp.WithString("name", mcp.Description("New display name.")),
		mcp.WithString("icon", mcp.Description("New icon; empty restores the default.")),
		mcp.WithString("type", mcp.Description("New kind.")),
		mcp.WithString("description", mcp.Description("New description.")),
	)
}

func updateNodeHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		args := request.GetArguments()
		field := func(name string) *string {
			if v, ok := args[name].(string); ok {
				return &v
			}
			return nil
		}
		fields := NodeFields{
			Name:        field("name"),
			Icon:        field("icon"),
			Type:        field("type"),
			Description: field("description"),
		}
		dto, err := svc.UpdateNode(ctx, id, fields)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func setImageTool() mcp.Tool {
	return mcp.NewTool(
		"set_image",
		mcp.WithDescription("Embed an image file, read on the server, into a satellite or module."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier."),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of an image file of at most 2 MiB."),
		),
	)
}

func setImageHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetImage(ctx, id, path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func deleteNodeTool() mcp.Tool {
	return mcp.NewTool(
		"delete_node",
		mcp.WithDescription("Delete a satellite or module together with everything below it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier."),
		),
	)
}

func deleteNodeHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteNode(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	}
}

func showOverlayTool() mcp.Tool {
	return mcp.NewTool(
		"show_overlay",
		mcp.WithDescription("Show which satellites were modified, added or deleted relative to the baseline."),
	)
}

func showOverlayHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		o, err := svc.Overlay(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(o)
	}
}

func exportCatalogueTool() mcp.Tool {
	return mcp.NewTool(
		"export_catalogue",
		mcp.WithDescription("Export the whole catalogue as the JSON accepted by satcat import."),
	)
}

func exportCatalogueHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := svc.Export(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultStructured(data, string(text)), nil
}
