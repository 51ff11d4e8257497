package interactions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dd0wney/ppinet/pkg/network"
	"gopkg.in/yaml.v3"
)

// Dataset holds the interactions one database knows about.
type Dataset struct {
	// Default is returned for identifiers without their own entry.
	Default  []network.Edge            `yaml:"default,omitempty"`
	Proteins map[string][]network.Edge `yaml:"proteins,omitempty"`
}

// Bundle is the on-disk layout of a fixture file.
type Bundle struct {
	Sources map[string]Dataset `yaml:"sources"`
}

// FixtureFetcher serves interactions from in-memory datasets.
type FixtureFetcher struct {
	mu       sync.RWMutex
	datasets map[Source]*Dataset
}

// NewFixtureFetcher creates an empty fixture fetcher.
func NewFixtureFetcher() *FixtureFetcher {
	return &FixtureFetcher{datasets: make(map[Source]*Dataset)}
}

// NewDemoFetcher returns a fixture fetcher preloaded with the demo BRCA1
// neighbourhoods for BioGRID and STRING.
func NewDemoFetcher() *FixtureFetcher {
	f := NewFixtureFetcher()
	f.Add(BioGRID, "BRCA1", network.EdgesFromPairs([][2]string{
		{"BRCA1", "TP53"},
		{"BRCA1", "EGFR"},
		{"BRCA1", "MYC"},
	}))
	f.Add(STRING, "BRCA1", network.EdgesFromPairs([][2]string{
		{"BRCA1", "MDM2"},
		{"BRCA1", "AKT1"},
		{"BRCA1", "ATM"},
	}))
	return f
}

func (f *FixtureFetcher) dataset(source Source) *Dataset {
	ds, ok := f.datasets[source]
	if !ok {
		ds = &Dataset{Proteins: make(map[string][]network.Edge)}
		f.datasets[source] = ds
	}
	return ds
}

// Add registers the interactions of identifier in source, replacing any
// previous entry.
func (f *FixtureFetcher) Add(source Source, identifier string, edges []network.Edge) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataset(source).Proteins[identifier] = cloneEdges(edges)
}

// SetDefault registers the interactions returned for unknown identifiers.
func (f *FixtureFetcher) SetDefault(source Source, edges []network.Edge) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataset(source).Default = cloneEdges(edges)
}

// Identifiers returns the proteins with their own entry in source.
func (f *FixtureFetcher) Identifiers(source Source) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ds, ok := f.datasets[source]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(ds.Proteins))
	for id := range ds.Proteins {
		ids = append(ids, id)
	}
	return ids
}

// FetchInteractions returns the entry for identifier, matched exactly first
// and then case-insensitively, falling back to the source's default list.
func (f *FixtureFetcher) FetchInteractions(ctx context.Context, identifier string, source Source) ([]network.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstreamError(source, identifier, err)
	}
	if !source.Valid() {
		return nil, upstreamError(source, identifier, fmt.Errorf("%w: %q", ErrUnknownSource, string(source)))
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	ds, ok := f.datasets[source]
	if !ok {
		return []network.Edge{}, nil
	}
	if edges, ok := ds.Proteins[identifier]; ok {
		return cloneEdges(edges), nil
	}
	for id, edges := range ds.Proteins {
		if strings.EqualFold(id, identifier) {
			return cloneEdges(edges), nil
		}
	}
	return cloneEdges(ds.Default), nil
}

// Load merges a bundle into the fetcher. Unknown source names fail the
// whole load.
func (f *FixtureFetcher) Load(b *Bundle) error {
	parsed := make(map[Source]Dataset, len(b.Sources))
	for name, ds := range b.Sources {
		src, err := ParseSource(name)
		if err != nil {
			return err
		}
		parsed[src] = ds
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for src, ds := range parsed {
		target := f.dataset(src)
		if ds.Default != nil {
			target.Default = cloneEdges(ds.Default)
		}
		for id, edges := range ds.Proteins {
			target.Proteins[id] = cloneEdges(edges)
		}
	}
	return nil
}

// ParseBundle decodes a YAML fixture bundle.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse fixture bundle: %w", err)
	}
	return &b, nil
}

// LoadBundleFile reads a YAML fixture bundle from path into a new fetcher.
func LoadBundleFile(path string) (*FixtureFetcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture bundle: %w", err)
	}
	b, err := ParseBundle(data)
	if err != nil {
		return nil, err
	}
	f := NewFixtureFetcher()
	if err := f.Load(b); err != nil {
		return nil, err
	}
	return f, nil
}

// Bundle exports the fetcher's datasets in the on-disk layout.
func (f *FixtureFetcher) Bundle() *Bundle {
	f.mu.RLock()
	defer f.mu.RUnlock()

	b := &Bundle{Sources: make(map[string]Dataset, len(f.datasets))}
	for src, ds := range f.datasets {
		out := Dataset{
			Default:  cloneEdges(ds.Default),
			Proteins: make(map[string][]network.Edge, len(ds.Proteins)),
		}
		for id, edges := range ds.Proteins {
			out.Proteins[id] = cloneEdges(edges)
		}
		b.Sources[string(src)] = out
	}
	return b
}

func cloneEdges(edges []network.Edge) []network.Edge {
	out := make([]network.Edge, len(edges))
	copy(out, edges)
	return out
}
