package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("expected content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestAddModuleHandler(t *testing.T) {
	svc, s := newService(t)
	handler := addModuleHandler(svc)

	res, err := handler(context.Background(), newCallToolRequest("add_module", map[string]any{
		"parent_id": "r",
		"name":      "Radio",
		"type":      "comms",
	}))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), `"Radio"`) {
		t.Fatalf("unexpected result %s", resultText(t, res))
	}
	if got := len(s.Roots()[0].Modules); got != 3 {
		t.Fatalf("expected 3 modules, got %d", got)
	}
}

func TestAddModuleHandlerRejectsBlankName(t *testing.T) {
	svc, _ := newService(t)
	res, err := addModuleHandler(svc)(context.Background(), newCallToolRequest("add_module", map[string]any{
		"parent_id": "r",
		"name":      " ",
	}))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
}

func TestUpdateNodeHandlerOnlyTouchesGivenFields(t *testing.T) {
	svc, s := newService(t)
	res, err := updateNodeHandler(svc)(context.Background(), newCallToolRequest("update_node", map[string]any{
		"id":   "c",
		"type": "payload",
	}))
	if err != nil || res.IsError {
		t.Fatalf("update failed: %v", err)
	}
	n, ok := s.Find("c")
	if !ok || n.Name != "Camera" || n.Type != "payload" {
		t.Fatalf("unexpected node %+v", n)
	}
}

func TestGetNodeHandlerMissingID(t *testing.T) {
	svc, _ := newService(t)
	res, err := getNodeHandler(svc)(context.Background(), newCallToolRequest("get_node", map[string]any{}))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
}

func TestDeleteAndExportHandlers(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	res, err := deleteNodeHandler(svc)(ctx, newCallToolRequest("delete_node", map[string]any{"id": "q"}))
	if err != nil || res.IsError {
		t.Fatalf("delete failed: %v", err)
	}

	res, err = exportCatalogueHandler(svc)(ctx, newCallToolRequest("export_catalogue", nil))
	if err != nil || res.IsError {
		t.Fatalf("export failed: %v", err)
	}
	text := resultText(t, res)
	if strings.Contains(text, "Relay") || !strings.Contains(text, "Voyager") {
		t.Fatalf("unexpected export %s", text)
	}
}

func TestNodeResourceHandler(t *testing.T) {
	svc, _ := newService(t)
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "satcat://nodes/a"
	req.Params.Arguments = map[string]any{"id": []string{"a"}}

	contents, err := nodeResourceHandler(svc)(context.Background(), req)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok || !strings.Contains(text.Text, `"Battery"`) {
		t.Fatalf("unexpected contents %+v", contents)
	}
}

func TestNewServer(t *testing.T) {
	svc, _ := newService(t)
	if NewServer(svc, "", "") == nil {
		t.Fatal("expected a server")
	}
}
