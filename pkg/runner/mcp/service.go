// Package mcp exposes the satellite catalogue over the Model Context
// Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/overlay"
	"tableflip.dev/satcat/pkg/printers"
)

// ErrNodeNotFound is returned when no node carries the requested id.
var ErrNodeNotFound = errors.New("node not found")

// Service serializes catalogue operations for the MCP handlers. Edits are
// addressed by id; each one moves the session cursor to the node it touches.
type Service struct {
	mu      sync.Mutex
	Session *app.Session
}

// SatelliteSummary describes one satellite.
type SatelliteSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Type        string `json:"type,omitempty"`
	ModuleCount int    `json:"moduleCount"`
	NodeCount   int    `json:"nodeCount"`
}

// ModuleSummary is a child listed under a NodeDTO.
type ModuleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	ModuleCount int    `json:"moduleCount"`
}

// NodeDTO is a transport-friendly projection of a node. The image is
// summarized rather than inlined.
type NodeDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Icon        string          `json:"icon,omitempty"`
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Path        []string        `json:"path"`
	IsSatellite bool            `json:"isSatellite"`
	Modules     []ModuleSummary `json:"modules"`
}

// NodeFields carries optional edits; nil leaves a field unchanged.
type NodeFields struct {
	Name        *string
	Icon        *string
	Type        *string
	Description *string
}

// NewService wraps s.
func NewService(s *app.Session) *Service {
	return &Service{Session: s}
}

func (s *Service) ready() error {
	if s == nil || s.Session == nil {
		return errors.New("catalogue is not configured")
	}
	return nil
}

// ListSatellites summarizes every satellite in the working set.
func (s *Service) ListSatellites(ctx context.Context) ([]SatelliteSummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	roots := s.Session.Roots()
	out := make([]SatelliteSummary, 0, len(roots))
	for _, r := range roots {
		out = append(out, SatelliteSummary{
			ID:          r.ID,
			Name:        r.Name,
			Icon:        r.Icon,
			Type:        r.Type,
			ModuleCount: len(r.Modules),
			NodeCount:   node.Count([]*node.Node{r}),
		})
	}
	return out, nil
}

// GetNode returns the node with id.
func (s *Service) GetNode(ctx context.Context, id string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

func (s *Service) get(id string) (*NodeDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}
	path, ok := pathTo(s.Session.Roots(), id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return toDTO(path), nil
}

// AddSatellite appends a satellite.
func (s *Service) AddSatellite(ctx context.Context, in app.NodeInput) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.Session.Save(ctx, app.TargetNewRoot, in)
	if err != nil {
		return nil, err
	}
	return s.get(v.Roots[len(v.Roots)-1].ID)
}

// AddModule appends a module to the node parentID.
func (s *Service) AddModule(ctx context.Context, parentID string, in app.NodeInput) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.locate(ctx, parentID)
	if err != nil {
		return nil, err
	}
	target := app.TargetNewSubcomponent
	if v.Selected == nil {
		target = app.TargetNewModule
	}
	if _, err := s.Session.Save(ctx, target, in); err != nil {
		return nil, err
	}
	parent, ok := s.Session.Find(parentID)
	if !ok || len(parent.Modules) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, parentID)
	}
	return s.get(parent.Modules[len(parent.Modules)-1].ID)
}

// UpdateNode changes the fields set in f on the node id.
func (s *Service) UpdateNode(ctx context.Context, id string, f NodeFields) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.locate(ctx, id)
	if err != nil {
		return nil, err
	}
	target, current := app.TargetSelected, v.Selected
	if current == nil {
		target, current = app.TargetRoot, v.Root
	}
	in := app.InputFrom(current)
	if f.Name != nil {
		in.Name = *f.Name
	}
	if f.Icon != nil {
		in.Icon = *f.Icon
	}
	if f.Type != nil {
		in.Type = *f.Type
	}
	if f.Description != nil {
		in.Description = *f.Description
	}
	if _, err := s.Session.Save(ctx, target, in); err != nil {
		return nil, err
	}
	return s.get(id)
}

// SetImage embeds the image file at path on the node id.
func (s *Service) SetImage(ctx context.Context, id, path string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.locate(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.Session.SetImage(ctx, path); err != nil {
		return nil, err
	}
	return s.get(id)
}

// DeleteNode removes the node id with everything below it.
func (s *Service) DeleteNode(ctx context.Context, id string) (*NodeDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dto, err := s.get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.locate(ctx, id)
	if err != nil {
		return nil, err
	}
	target := app.DeleteSelected
	if v.Selected == nil {
		target = app.DeleteRoot
	}
	if _, err := s.Session.Delete(ctx, target); err != nil {
		return nil, err
	}
	return dto, nil
}

// Overlay reports the edits against the baseline.
func (s *Service) Overlay(ctx context.Context) (overlay.Overlay, error) {
	if err := s.ready(); err != nil {
		return overlay.Overlay{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Session.Overlay(), nil
}

// Export serializes the working set.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Session.Export()
}

func (s *Service) locate(ctx context.Context, id string) (app.View, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return app.View{}, errors.New("id is required")
	}
	if _, ok := s.Session.Find(id); !ok {
		return app.View{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return s.Session.Locate(ctx, id)
}

// pathTo returns the nodes from a satellite down to id.
func pathTo(nodes []*node.Node, id string) ([]*node.Node, bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.ID == id {
			return []*node.Node{n}, true
		}
		if rest, ok := pathTo(n.Modules, id); ok {
			return append([]*node.Node{n}, rest...), true
		}
	}
	return nil, false
}

func toDTO(path []*node.Node) *NodeDTO {
	n := path[len(path)-1]
	dto := &NodeDTO{
		ID:          n.ID,
		Name:        n.Name,
		Icon:        n.Icon,
		Type:        n.Type,
		Description: n.Description,
		Path:        make([]string, 0, len(path)),
		IsSatellite: len(path) == 1,
		Modules:     make([]ModuleSummary, 0, len(n.Modules)),
	}
	if n.Image != "" {
		dto.Image = printers.ImageSummary(n.Image)
	}
	for _, p := range path {
		dto.Path = append(dto.Path, p.Name)
	}
	for _, m := range n.Modules {
		dto.Modules = append(dto.Modules, ModuleSummary{
			ID:          m.ID,
			Name:        m.Name,
			Icon:        m.Icon,
			ModuleCount: len(m.Modules),
		})
	}
	return dto
}
