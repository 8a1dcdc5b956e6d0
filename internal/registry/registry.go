// Package registry resolves report descriptors by name. All resolvers
// share the convention that an unknown name yields (nil, nil) rather than
// an error; the controller treats it as "leave everything alone".
package registry

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/statview/internal/model"
)

// Static serves descriptors from an in-memory set.
type Static struct {
	mu    sync.RWMutex
	descs map[string]model.ReportDescriptor
}

// NewStatic builds a static registry from the given descriptors. Later
// duplicates win.
func NewStatic(descs ...model.ReportDescriptor) *Static {
	byName := make(map[string]model.ReportDescriptor, len(descs))
	for _, d := range descs {
		byName[d.Name] = d
	}
	return &Static{descs: byName}
}

// GetDescByName resolves name, or returns (nil, nil) when unknown.
func (s *Static) GetDescByName(_ context.Context, name string) (*model.ReportDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.descs[name]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// List returns all descriptors in unspecified order.
func (s *Static) List() []model.ReportDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ReportDescriptor, 0, len(s.descs))
	for _, d := range s.descs {
		out = append(out, d)
	}
	return out
}

// LoadFile reads a YAML descriptor file of the shape:
//
//	reports:
//	  - name: ClientsByVersion
//	    type: CLIENT
//	    requires_time_range: true
func LoadFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}

	var doc struct {
		Reports []model.ReportDescriptor `yaml:"reports"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}

	for _, d := range doc.Reports {
		if d.Name == "" {
			return nil, fmt.Errorf("registry: %s: report with empty name", path)
		}
	}
	return NewStatic(doc.Reports...), nil
}

// Lister is the slice of the stats API the remote registry needs.
type Lister interface {
	ListReports(ctx context.Context) ([]model.ReportDescriptor, error)
}

// API resolves descriptors against a remote report server.
type API struct {
	lister Lister
}

// NewAPI wraps a report lister as a registry.
func NewAPI(lister Lister) *API {
	return &API{lister: lister}
}

// GetDescByName fetches the descriptor list and scans it for name.
// An unknown name is (nil, nil); transport failures surface as errors.
func (a *API) GetDescByName(ctx context.Context, name string) (*model.ReportDescriptor, error) {
	descs, err := a.lister.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	for i := range descs {
		if descs[i].Name == name {
			return &descs[i], nil
		}
	}
	return nil, nil
}
