package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/handlers"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

type cannedSource map[catalog.ServiceType][]string

func (s cannedSource) Name() string { return "canned" }

func (s cannedSource) Fetch(ctx context.Context, st catalog.ServiceType) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(s[st]))
	for _, r := range s[st] {
		out = append(out, json.RawMessage(r))
	}
	return out, nil
}

func testAdapter() *catalog.Adapter {
	src := cannedSource{
		catalog.ServiceEntranceFee: {`{"id":1,"siteName":"Topkapı Palace","city":"Istanbul","currency":"TRY","adultPrice":100}`},
		catalog.ServiceGuide:       {`{"id":"g1","name":"Ayşe","currency":"EUR","dailyRate":150}`},
	}
	reg := catalog.NewRegistry()
	for st := range src {
		reg.Register(st, src)
	}
	return catalog.NewAdapter(reg)
}

const sampleFile = `{
  "name": "Istanbul Highlights",
  "startDate": "2025-12-01",
  "endDate": "2025-12-03",
  "adults": 2,
  "services": [
    {"serviceType": "entrance-fee", "itemId": "1", "serviceDate": "2025-12-02"},
    {"serviceType": "guide", "itemId": "g1", "serviceDate": "2025-12-02"}
  ]
}`

func TestPriceQuotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))

	qf, err := loadQuotationFile(path)
	require.NoError(t, err)
	require.Len(t, qf.Services, 2)

	rates, err := fx.ParseTable(map[string]string{"TRY_EUR": "0.027"})
	require.NoError(t, err)
	p, err := itinerary.NewPricer(nil, rates)
	require.NoError(t, err)

	trip, err := priceQuotation(context.Background(), p, testAdapter(), qf)
	require.NoError(t, err)
	assert.Equal(t, 2, trip.Len())

	view := handlers.NewQuotationView(trip)
	// 120 TRY x 2 x 0.027 + 180 EUR x 1
	assert.Equal(t, "186.48", view.Total.StringFixed(2))

	var buf bytes.Buffer
	require.NoError(t, writeQuotation(&buf, view, "table"))
	out := buf.String()
	assert.Contains(t, out, "Topkapı Palace")
	assert.Contains(t, out, "departure")
	assert.Contains(t, out, "Total  186.48 EUR")

	buf.Reset()
	require.NoError(t, writeQuotation(&buf, view, "json"))
	var decoded handlers.QuotationView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Days, 3)
}

func TestPriceQuotation_Errors(t *testing.T) {
	p, err := itinerary.NewPricer(nil, nil)
	require.NoError(t, err)

	var qf QuotationFile
	require.NoError(t, json.Unmarshal([]byte(sampleFile), &qf))

	_, err = priceQuotation(context.Background(), p, testAdapter(), qf)
	var missing *itinerary.MissingExchangeRateError
	assert.ErrorAs(t, err, &missing, "TRY needs a rate when no source is configured")
	assert.Contains(t, err.Error(), "service 1")

	qf.Services = []handlers.AddServiceRequest{{ServiceType: "guide", ItemID: "nope"}}
	_, err = priceQuotation(context.Background(), p, testAdapter(), qf)
	var notFound *catalog.ItemNotFoundError
	assert.ErrorAs(t, err, &notFound)

	qf.StartDate = "tomorrow"
	_, err = priceQuotation(context.Background(), p, testAdapter(), qf)
	assert.Error(t, err)
}

func TestWritePrecedence(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePrecedence(&buf))
	assert.Contains(t, buf.String(), "pricePerPersonDouble > pricePerPersonSingle > pricePerPersonTriple")
	assert.Contains(t, buf.String(), "tour_company")
}

func TestWriteCatalogTable(t *testing.T) {
	items, err := testAdapter().ListCatalog(context.Background(), catalog.ServiceGuide, catalog.Filters{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCatalogTable(&buf, items))
	assert.Contains(t, buf.String(), "dailyRate")
	assert.Contains(t, buf.String(), "1 item(s)")
}

func TestListCatalogItems(t *testing.T) {
	ctx := context.Background()
	adapter := testAdapter()

	all, err := listCatalogItems(ctx, adapter, nil, catalog.Filters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, catalog.ServiceGuide, all[0].ServiceType)
	assert.Equal(t, catalog.ServiceEntranceFee, all[1].ServiceType)

	fees, err := listCatalogItems(ctx, adapter, []string{"entrance-fee"}, catalog.Filters{})
	require.NoError(t, err)
	require.Len(t, fees, 1)

	_, err = listCatalogItems(ctx, adapter, []string{"spaceship"}, catalog.Filters{})
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCatalogTable(&buf, all))
	assert.Contains(t, buf.String(), "entrance_fee")
}

func TestFileRegistryOptions(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, catalog.RegistryOptions{CSVDir: dir}, fileRegistryOptions(dir))

	book := filepath.Join(dir, "suppliers.xlsx")
	assert.Equal(t, catalog.RegistryOptions{WorkbookPath: book}, fileRegistryOptions(book))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.csv"), []byte("id,name,currency,dailyRate\ng1,Ayse,EUR,150\n"), 0o644))
	adapter, err := newCatalogAdapter(dir)
	require.NoError(t, err)
	items, err := adapter.ListCatalog(context.Background(), catalog.ServiceGuide, catalog.Filters{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "150", items[0].UnitPrice.String())
}
