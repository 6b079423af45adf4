package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Adapter lists catalog items through the registered sources.
type Adapter struct {
	registry *Registry
	metrics  *MetricsRecorder
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewAdapter creates an adapter over registry.
func NewAdapter(registry *Registry) *Adapter {
	return &Adapter{
		registry: registry,
		metrics:  NewMetricsRecorder(),
		logger:   log.With().Str("component", "catalog_adapter").Logger(),
		tracer:   otel.Tracer("github.com/tourdesk/quote-service/internal/catalog"),
	}
}

// Registry returns the underlying source registry.
func (a *Adapter) Registry() *Registry {
	return a.registry
}

// ListCatalog returns the items of one service type matching filters.
// No results is an empty slice; an unreachable source is an *UpstreamError.
func (a *Adapter) ListCatalog(ctx context.Context, st ServiceType, filters Filters) ([]CatalogItem, error) {
	ctx, span := a.tracer.Start(ctx, "catalog.ListCatalog",
		trace.WithAttributes(attribute.String("catalog.service_type", string(st))))
	defer span.End()

	src, ok := a.registry.Get(st)
	if !ok {
		err := &UpstreamError{ServiceType: st, Err: ErrNoSource}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("catalog.source", src.Name()))

	start := time.Now()
	raws, err := src.Fetch(ctx, st)
	a.metrics.RecordFetch(st, src.Name(), time.Since(start), err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		a.logger.Error().Err(err).Str("service_type", string(st)).Str("source", src.Name()).Msg("Catalog fetch failed")
		return nil, &UpstreamError{ServiceType: st, Err: err}
	}

	items := make([]CatalogItem, 0, len(raws))
	skipped := 0
	for i, raw := range raws {
		item, err := ToCatalogItem(raw, st)
		if err != nil {
			skipped++
			a.metrics.RecordInvalidRecord(st)
			a.logger.Warn().Err(err).Str("service_type", string(st)).Int("index", i).Msg("Skipping catalog record")
			continue
		}
		if filters.Match(item) {
			items = append(items, item)
		}
	}

	span.SetAttributes(
		attribute.Int("catalog.records", len(raws)),
		attribute.Int("catalog.skipped", skipped),
		attribute.Int("catalog.items", len(items)),
	)
	a.metrics.RecordListed(st, len(items))
	return items, nil
}

// GetItem resolves one item by id, active or not.
func (a *Adapter) GetItem(ctx context.Context, st ServiceType, id string) (CatalogItem, error) {
	items, err := a.ListCatalog(ctx, st, Filters{})
	if err != nil {
		return CatalogItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return CatalogItem{}, &ItemNotFoundError{ServiceType: st, ItemID: id}
}

// ListAll fetches every registered service type concurrently and returns the
// items grouped in ServiceTypes order. The first upstream failure cancels the rest.
func (a *Adapter) ListAll(ctx context.Context, filters Filters) ([]CatalogItem, error) {
	types := a.registry.List()
	results := make([][]CatalogItem, len(types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, st := range types {
		g.Go(func() error {
			items, err := a.ListCatalog(gctx, st, filters)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]CatalogItem, 0)
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}

// Refresher is a source holding cached collections.
type Refresher interface {
	Invalidate(st ServiceType)
	InvalidateAll()
}

// Refresh drops cached collections so the next listing refetches them. An
// empty st refreshes every type. It returns how many cached sources were
// touched; uncached sources are skipped.
func (a *Adapter) Refresh(st ServiceType) int {
	seen := make(map[Refresher]bool)
	for _, t := range a.registry.List() {
		if st != "" && t != st {
			continue
		}
		src, _ := a.registry.Get(t)
		r, ok := src.(Refresher)
		if !ok || seen[r] {
			continue
		}
		seen[r] = true
		if st == "" {
			r.InvalidateAll()
		} else {
			r.Invalidate(st)
		}
	}
	a.logger.Info().Str("service_type", string(st)).Int("sources", len(seen)).Msg("Catalog cache refreshed")
	return len(seen)
}
