package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/satcat/pkg/node"
)

// ExportFileName is the suggested name for exported catalogues.
const ExportFileName = "satellite-catalogue-export.json"

// ImportFormatError reports an import payload that is not a sequence of
// named nodes.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalogue: import: %s: %v", e.Reason, e.Err)
	}
	return "catalogue: import: " + e.Reason
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}

// Export renders the working set as indented JSON.
func Export(roots []*node.Node) ([]byte, error) {
	if roots == nil {
		roots = []*node.Node{}
	}
	data, err := json.MarshalIndent(roots, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("catalogue: export: %w", err)
	}
	return append(data, '\n'), nil
}

// Import parses an exported catalogue. The payload must be a JSON array of
// node objects, each (at every depth) with a non-empty name and no id shared
// with another node. Missing ids are filled in.
func Import(data []byte, src IDSource) ([]*node.Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ImportFormatError{Reason: "not a sequence"}
	}
	var roots []*node.Node
	if err := json.Unmarshal(trimmed, &roots); err != nil {
		return nil, &ImportFormatError{Reason: "not a sequence of nodes", Err: err}
	}

	seen := make(map[string]struct{})
	if err := validateImported(roots, 0, seen); err != nil {
		return nil, err
	}
	if src == nil {
		src = UUIDSource
	}
	for _, r := range roots {
		backfill(r, RootPrefix, seen, src)
	}
	if roots == nil {
		roots = []*node.Node{}
	}
	return roots, nil
}

func validateImported(nodes []*node.Node, depth int, seen map[string]struct{}) error {
	for _, n := range nodes {
		if n == nil {
			return &ImportFormatError{Reason: fmt.Sprintf("null entry at depth %d", depth)}
		}
		if strings.TrimSpace(n.Name) == "" {
			return &ImportFormatError{Reason: fmt.Sprintf("node %q at depth %d has no name", n.ID, depth)}
		}
		if n.ID != "" {
			if _, dup := seen[n.ID]; dup {
				return &ImportFormatError{Reason: fmt.Sprintf("duplicate id %q", n.ID)}
			}
			seen[n.ID] = struct{}{}
		}
		if err := validateImported(n.Modules, depth+1, seen); err != nil {
			return err
		}
	}
	return nil
}

func backfill(n *node.Node, prefix string, seen map[string]struct{}, src IDSource) {
	for n.ID == "" {
		id := src(prefix)
		if _, taken := seen[id]; !taken && id != "" {
			n.ID = id
			seen[id] = struct{}{}
		}
	}
	for _, child := range n.Modules {
		backfill(child, ModulePrefix, seen, src)
	}
}
