package reportserver

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/statview/internal/model"
	"github.com/tinytelemetry/statview/internal/typedval"
)

// Point is one sample in a report's series. Offset is seconds before the
// source's base time, so definition files stay valid as time passes.
type Point struct {
	Offset int64   `yaml:"offset"`
	Label  string  `yaml:"label"`
	Value  float64 `yaml:"value"`
}

// Definition pairs a report descriptor with its sample series.
type Definition struct {
	Descriptor model.ReportDescriptor `yaml:",inline"`
	Series     []Point                `yaml:"series"`
}

// Source serves report descriptors and builds typed payloads for them.
type Source struct {
	base time.Time
	defs map[string]Definition
}

// NewSource indexes the definitions against a fixed base time.
func NewSource(base time.Time, defs []Definition) *Source {
	byName := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byName[d.Descriptor.Name] = d
	}
	return &Source{base: base, defs: byName}
}

// LoadDefinitions reads a YAML report definitions file:
//
//	reports:
//	  - name: ClientsByVersion
//	    type: CLIENT
//	    requires_time_range: true
//	    series:
//	      - {offset: 3600, label: "4.1.0", value: 128}
func LoadDefinitions(path string) ([]Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reportserver: read %s: %w", path, err)
	}

	var doc struct {
		Reports []Definition `yaml:"reports"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("reportserver: parse %s: %w", path, err)
	}
	for _, d := range doc.Reports {
		if d.Descriptor.Name == "" {
			return nil, fmt.Errorf("reportserver: %s: report with empty name", path)
		}
	}
	return doc.Reports, nil
}

// SampleDefinitions returns a built-in demo set so the daemon is useful
// without a definitions file.
func SampleDefinitions() []Definition {
	return []Definition{
		{
			Descriptor: model.ReportDescriptor{
				Name:              "ClientsByVersion",
				Type:              model.ReportTypeClient,
				RequiresTimeRange: true,
				Summary:           "Active clients grouped by agent version.",
			},
			Series: []Point{
				{Offset: 6 * 86400, Label: "4.0.3", Value: 311},
				{Offset: 4 * 86400, Label: "4.1.0", Value: 282},
				{Offset: 2 * 86400, Label: "4.1.1", Value: 476},
				{Offset: 3600, Label: "4.1.2", Value: 94},
			},
		},
		{
			Descriptor: model.ReportDescriptor{
				Name:              "ServerLoad",
				Type:              model.ReportTypeServer,
				RequiresTimeRange: true,
				Summary:           "Frontend request load over the window.",
			},
			Series: []Point{
				{Offset: 5 * 86400, Label: "frontend-1", Value: 1210},
				{Offset: 3 * 86400, Label: "frontend-1", Value: 1498},
				{Offset: 86400, Label: "frontend-2", Value: 1377},
			},
		},
		{
			Descriptor: model.ReportDescriptor{
				Name:    "FileStoreTotals",
				Type:    model.ReportTypeFileStore,
				Summary: "Current file store object counts.",
			},
			Series: []Point{
				{Offset: 0, Label: "objects", Value: 88211},
				{Offset: 0, Label: "blobs", Value: 64410},
			},
		},
	}
}

// Descriptors lists the served reports sorted by name.
func (s *Source) Descriptors() []model.ReportDescriptor {
	out := make([]model.ReportDescriptor, 0, len(s.defs))
	for _, d := range s.defs {
		out = append(out, d.Descriptor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Build assembles the typed payload for one report request. Reports that
// require a time range are windowed to [start, start+duration) in epoch
// seconds; others return their full series. The second return is false
// for unknown report names.
func (s *Source) Build(name string, startSec, durationSec int64, clientLabel string) (any, bool) {
	def, ok := s.defs[name]
	if !ok {
		return nil, false
	}

	series := make([]any, 0, len(def.Series))
	for _, p := range def.Series {
		t := s.base.Unix() - p.Offset
		if def.Descriptor.RequiresTimeRange {
			if t < startSec || t >= startSec+durationSec {
				continue
			}
		}
		series = append(series, map[string]any{
			"time":  typedval.Tagged(typedval.KindTimestamp, t),
			"label": typedval.Tagged(typedval.KindLabel, p.Label),
			"value": typedval.Tagged(typedval.KindCount, p.Value),
		})
	}

	payload := map[string]any{
		"report": typedval.Tagged(typedval.KindLabel, def.Descriptor.Name),
		"window": map[string]any{
			"start":    typedval.Tagged(typedval.KindTimestamp, startSec),
			"duration": typedval.Tagged(typedval.KindDuration, durationSec),
		},
		"series": series,
	}
	if def.Descriptor.Type == model.ReportTypeClient {
		payload["client_label"] = typedval.Tagged(typedval.KindLabel, clientLabel)
	}
	return payload, true
}
