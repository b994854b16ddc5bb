package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSatellitesResource(srv, svc)
	registerNodeTemplate(srv, svc)
}

func registerSatellitesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"satcat://satellites",
		"Satellites",
		mcp.WithResourceDescription("Every satellite in the catalogue with module counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := svc.ListSatellites(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"satellites": list,
			"count":      len(list),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerNodeTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"satcat://nodes/{id}",
		"Node Details",
		mcp.WithTemplateDescription("A satellite or module with its path and direct modules."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, nodeResourceHandler(svc))
}

func nodeResourceHandler(svc *Service) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("node id is required")
		}
		dto, err := svc.GetNode(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	}
}

// templateArg reads a URI template variable, which arrives as a string or a
// single-element list depending on how it was matched.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
