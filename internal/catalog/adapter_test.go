package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned records per service type.
type fakeSource struct {
	mu      sync.Mutex
	records map[ServiceType][]string
	err     error
	calls   int
}

func newFakeSource() *fakeSource {
	return &fakeSource{records: make(map[ServiceType][]string)}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(ctx context.Context, st ServiceType) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]json.RawMessage, 0, len(f.records[st]))
	for _, r := range f.records[st] {
		out = append(out, json.RawMessage(r))
	}
	return out, nil
}

func newTestAdapter(src Source, types ...ServiceType) *Adapter {
	reg := NewRegistry()
	for _, st := range types {
		reg.Register(st, src)
	}
	return NewAdapter(reg)
}

func TestAdapter_ListCatalog(t *testing.T) {
	src := newFakeSource()
	src.records[ServiceEntranceFee] = []string{
		`{"id":1,"siteName":"Topkapı Palace","city":"Istanbul","currency":"TRY","adultPrice":100}`,
		`{"id":2,"siteName":"Ephesus","city":"Selçuk","currency":"TRY","adultPrice":150,"isActive":false}`,
		`{"id":3,"siteName":"Broken","currency":"NOPE","adultPrice":1}`,
		`{"siteName":"No id","currency":"TRY"}`,
	}
	adapter := newTestAdapter(src, ServiceEntranceFee)
	ctx := context.Background()

	items, err := adapter.ListCatalog(ctx, ServiceEntranceFee, Filters{})
	require.NoError(t, err)
	require.Len(t, items, 2, "invalid records are skipped")
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)

	items, err = adapter.ListCatalog(ctx, ServiceEntranceFee, Filters{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Topkapı Palace", items[0].Name)

	items, err = adapter.ListCatalog(ctx, ServiceEntranceFee, Filters{Query: "topkapi"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAdapter_ListCatalog_EmptyIsNotError(t *testing.T) {
	adapter := newTestAdapter(newFakeSource(), ServiceGuide)

	items, err := adapter.ListCatalog(context.Background(), ServiceGuide, Filters{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAdapter_ListCatalog_Upstream(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("connection refused")
	adapter := newTestAdapter(src, ServiceHotel)

	_, err := adapter.ListCatalog(context.Background(), ServiceHotel, Filters{})
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, ServiceHotel, upstream.ServiceType)

	_, err = adapter.ListCatalog(context.Background(), ServiceGuide, Filters{})
	require.True(t, errors.As(err, &upstream))
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestAdapter_GetItem(t *testing.T) {
	src := newFakeSource()
	src.records[ServiceExtra] = []string{
		`{"id":"w","name":"Water","currency":"EUR","price":1}`,
		`{"id":"t","name":"Tips","currency":"EUR","isActive":false}`,
	}
	adapter := newTestAdapter(src, ServiceExtra)
	ctx := context.Background()

	item, err := adapter.GetItem(ctx, ServiceExtra, "t")
	require.NoError(t, err)
	assert.False(t, item.IsActive, "inactive items are still resolvable")

	_, err = adapter.GetItem(ctx, ServiceExtra, "missing")
	var notFound *ItemNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.ItemID)
}

func TestAdapter_ListAll(t *testing.T) {
	src := newFakeSource()
	src.records[ServiceHotel] = []string{`{"id":1,"name":"H","currency":"EUR","pricePerPersonDouble":50}`}
	src.records[ServiceExtra] = []string{`{"id":2,"name":"E","currency":"EUR","price":1}`}
	src.records[ServiceGuide] = []string{`{"id":3,"name":"G","currency":"EUR","dailyRate":100}`}
	adapter := newTestAdapter(src, ServiceExtra, ServiceGuide, ServiceHotel)

	items, err := adapter.ListAll(context.Background(), Filters{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ServiceHotel, items[0].ServiceType)
	assert.Equal(t, ServiceGuide, items[1].ServiceType)
	assert.Equal(t, ServiceExtra, items[2].ServiceType)
}

func TestBuildRegistry(t *testing.T) {
	reg := BuildRegistry(RegistryOptions{
		HTTP:          &HTTPSourceConfig{BaseURL: "http://catalog.local"},
		WorkbookPath:  "catalog.xlsx",
		WorkbookTypes: []ServiceType{ServiceExtra},
	})

	extra, ok := reg.Get(ServiceExtra)
	require.True(t, ok)
	assert.Equal(t, "workbook", extra.Name())

	hotel, ok := reg.Get(ServiceHotel)
	require.True(t, ok)
	assert.Equal(t, "http", hotel.Name())
	assert.Equal(t, ServiceTypes, reg.List())

	csvOnly := BuildRegistry(RegistryOptions{CSVDir: t.TempDir()})
	guide, ok := csvOnly.Get(ServiceGuide)
	require.True(t, ok)
	assert.Equal(t, "csv", guide.Name())

	empty := BuildRegistry(RegistryOptions{})
	assert.Empty(t, empty.List())
}
