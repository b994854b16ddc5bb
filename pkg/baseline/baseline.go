// Package baseline loads the read-only satellite dataset that user edits are
// layered on top of.
package baseline

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"tableflip.dev/satcat/pkg/catalogue"
	"tableflip.dev/satcat/pkg/node"
)

//go:embed satellites/*.yaml
var embedded embed.FS

var (
	// ErrDuplicateID is returned when two baseline nodes share an id.
	ErrDuplicateID = errors.New("baseline: duplicate id")
	// ErrMissingName is returned for a baseline node without a name.
	ErrMissingName = errors.New("baseline: node has no name")
)

// Default returns the dataset compiled into the binary.
func Default() ([]*node.Node, error) {
	return Load(embedded, "satellites")
}

// Resolve loads dir, or the compiled-in dataset when dir is empty.
func Resolve(dir string) ([]*node.Node, error) {
	if dir == "" {
		return Default()
	}
	return LoadDir(dir)
}

// LoadDir loads every satellite file in a directory on disk.
func LoadDir(dir string) ([]*node.Node, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("baseline: %s is not a directory", dir)
	}
	return Load(os.DirFS(dir), ".")
}

// Load reads the .json, .yaml and .yml files in dir in file name order. A
// file holds either one satellite or a list of them. Other files are
// skipped. The result has passed Register.
func Load(fsys fs.FS, dir string) ([]*node.Node, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	roots := []*node.Node{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "_") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}
		nodes, err := decode(data, ext)
		if err != nil {
			return nil, fmt.Errorf("baseline: %s: %w", e.Name(), err)
		}
		roots = append(roots, nodes...)
	}
	return Register(roots)
}

func decode(data []byte, ext string) ([]*node.Node, error) {
	if ext == ".json" {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var nodes []*node.Node
			err := json.Unmarshal(trimmed, &nodes)
			return nodes, err
		}
		n := new(node.Node)
		if err := json.Unmarshal(trimmed, n); err != nil {
			return nil, err
		}
		return []*node.Node{n}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	top := doc.Content[0]
	switch top.Kind {
	case yaml.SequenceNode:
		var nodes []*node.Node
		err := top.Decode(&nodes)
		return nodes, err
	case yaml.MappingNode:
		n := new(node.Node)
		if err := top.Decode(n); err != nil {
			return nil, err
		}
		return []*node.Node{n}, nil
	default:
		return nil, fmt.Errorf("line %d: expected a satellite or a list of satellites", top.Line)
	}
}

// Register makes a dataset safe to hand to the catalogue and returns it: nil
// entries are dropped, every node must be named, and missing ids are filled in. Filled
// ids are derived from the node's position and name, so the same files
// yield the same ids on every start and stored edits keep matching them.
func Register(roots []*node.Node) ([]*node.Node, error) {
	seen := node.IDs(roots)

	dup := map[string]struct{}{}
	var err error
	var fill func(n *node.Node, prefix, scope string)
	fill = func(n *node.Node, prefix, scope string) {
		if err != nil {
			return
		}
		if strings.TrimSpace(n.Name) == "" {
			err = fmt.Errorf("%w (under %q)", ErrMissingName, scope)
			return
		}
		if n.ID == "" {
			n.ID = stableID(prefix, scope, n.Name, seen)
			seen[n.ID] = struct{}{}
		} else if _, ok := dup[n.ID]; ok {
			err = fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
			return
		}
		dup[n.ID] = struct{}{}
		n.Modules = compact(n.Modules)
		for i, m := range n.Modules {
			fill(m, catalogue.ModulePrefix, n.ID+"/"+strconv.Itoa(i))
		}
	}

	roots = compact(roots)
	for i, r := range roots {
		fill(r, catalogue.RootPrefix, strconv.Itoa(i))
	}
	if err != nil {
		return nil, err
	}
	if roots == nil {
		roots = []*node.Node{}
	}
	return roots, nil
}

func stableID(prefix, scope, name string, seen map[string]struct{}) string {
	seed := scope + "/" + name
	for {
		id := prefix + "-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
		if _, taken := seen[id]; !taken {
			return id
		}
		seed += "'"
	}
}

func compact(nodes []*node.Node) []*node.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
