package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Source returns the raw records of one supplier collection.
type Source interface {
	Name() string
	Fetch(ctx context.Context, st ServiceType) ([]json.RawMessage, error)
}

// Registry maps service types to the source that serves them.
type Registry struct {
	mu      sync.RWMutex
	sources map[ServiceType]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[ServiceType]Source),
	}
}

// Register sets the source for a service type, replacing any previous one.
func (r *Registry) Register(st ServiceType, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[st] = src
}

// Get returns the source for a service type.
func (r *Registry) Get(st ServiceType) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[st]
	return src, ok
}

// List returns registered service types in ServiceTypes order.
func (r *Registry) List() []ServiceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]ServiceType, 0, len(r.sources))
	for _, st := range ServiceTypes {
		if _, ok := r.sources[st]; ok {
			types = append(types, st)
		}
	}
	return types
}

// RegistryOptions selects sources when building a registry from configuration.
type RegistryOptions struct {
	HTTP          *HTTPSourceConfig
	WorkbookPath  string
	WorkbookTypes []ServiceType
	// CSVDir is used in place of WorkbookPath when no workbook is set.
	CSVDir      string
	CSVEncoding string
	// Zero disables caching of API collections.
	CacheTTL time.Duration
}

// BuildRegistry wires sources per service type. Types listed in WorkbookTypes
// come from the file source (workbook, else CSV directory); the rest from the
// HTTP API when configured, else from the file source.
func BuildRegistry(opts RegistryOptions) *Registry {
	reg := NewRegistry()

	var httpSrc, workbook Source
	if opts.HTTP != nil && opts.HTTP.BaseURL != "" {
		httpSrc = NewHTTPSource(*opts.HTTP)
		if opts.CacheTTL > 0 {
			httpSrc = NewCachedSource(httpSrc, opts.CacheTTL)
		}
	}
	switch {
	case opts.WorkbookPath != "":
		workbook = NewSpreadsheetSource(opts.WorkbookPath)
	case opts.CSVDir != "":
		workbook = NewCSVSource(opts.CSVDir, opts.CSVEncoding)
	}

	fromWorkbook := make(map[ServiceType]bool, len(opts.WorkbookTypes))
	for _, st := range opts.WorkbookTypes {
		fromWorkbook[st] = true
	}

	for _, st := range ServiceTypes {
		switch {
		case fromWorkbook[st] && workbook != nil:
			reg.Register(st, workbook)
		case httpSrc != nil:
			reg.Register(st, httpSrc)
		case workbook != nil:
			reg.Register(st, workbook)
		}
	}
	return reg
}
