package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/database"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

type stubSource struct {
	records map[catalog.ServiceType][]string
	err     error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, st catalog.ServiceType) ([]json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]json.RawMessage, 0, len(s.records[st]))
	for _, r := range s.records[st] {
		out = append(out, json.RawMessage(r))
	}
	return out, nil
}

type memoryRepo struct {
	mu    sync.Mutex
	snaps map[string]itinerary.TripSnapshot
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{snaps: make(map[string]itinerary.TripSnapshot)}
}

func (r *memoryRepo) Save(ctx context.Context, snap itinerary.TripSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps[snap.ID] = snap
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (itinerary.TripSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.snaps[id]
	if !ok {
		return itinerary.TripSnapshot{}, fmt.Errorf("%w: %s", database.ErrQuotationNotFound, id)
	}
	return snap, nil
}

func (r *memoryRepo) List(ctx context.Context, opts database.QuotationFilterOptions) ([]database.QuotationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []database.QuotationSummary{}
	for _, s := range r.snaps {
		out = append(out, database.QuotationSummary{ID: s.ID, Name: s.Name, BaseCurrency: s.BaseCurrency,
			StartDate: s.StartDate, EndDate: s.EndDate, Services: len(s.Selections), MarkupFactor: s.MarkupFactor})
	}
	return out, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snaps[id]; !ok {
		return fmt.Errorf("%w: %s", database.ErrQuotationNotFound, id)
	}
	delete(r.snaps, id)
	return nil
}

func sampleSource() *stubSource {
	return &stubSource{records: map[catalog.ServiceType][]string{
		catalog.ServiceEntranceFee: {
			`{"id":1,"siteName":"Topkapı Palace","city":"Istanbul","currency":"TRY","adultPrice":100}`,
			`{"id":2,"siteName":"Closed Museum","city":"Istanbul","currency":"TRY","adultPrice":50,"isActive":false}`,
			`{"id":3,"siteName":"Dollar Tour","city":"Istanbul","currency":"USD","adultPrice":40}`,
		},
	}}
}

// setupRouter wires the package globals and returns a router; store may be nil
func setupRouter(t *testing.T, src catalog.Source, store QuotationRepository) *gin.Engine {
	t.Helper()

	reg := catalog.NewRegistry()
	for _, st := range catalog.ServiceTypes {
		reg.Register(st, src)
	}
	InitCatalog(catalog.NewAdapter(reg))

	rates, err := fx.ParseTable(map[string]string{"TRY_EUR": "0.027"})
	require.NoError(t, err)
	p, err := itinerary.NewPricer(itinerary.Defaults(), rates)
	require.NoError(t, err)
	InitQuotations(p, NewDraftStore(0), store)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterInternalRoutes(router.Group("/internal"))
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createDraft(t *testing.T, router http.Handler) QuotationView {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/internal/quotations", CreateQuotationRequest{
		Name:      "Istanbul Highlights",
		StartDate: "2025-12-01",
		EndDate:   "2025-12-05",
		Adults:    2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[QuotationView](t, w)
}

func addFee(t *testing.T, router http.Handler, quoteID, itemID string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodPost, "/internal/quotations/"+quoteID+"/services", AddServiceRequest{
		ServiceType: "entrance-fee",
		ItemID:      itemID,
		ServiceDate: "2025-12-02",
	})
}

func TestCreateQuotation(t *testing.T) {
	router := setupRouter(t, sampleSource(), nil)

	view := createDraft(t, router)
	assert.Contains(t, view.ID, "quo_")
	assert.Equal(t, "EUR", view.BaseCurrency)
	require.Len(t, view.Days, 5)
	assert.Equal(t, itinerary.DayArrival, view.Days[0].DayType)
	assert.Equal(t, itinerary.DayMiddle, view.Days[2].DayType)
	assert.Equal(t, itinerary.DayDeparture, view.Days[4].DayType)
	assert.True(t, view.Total.IsZero())

	t.Run("end before start", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/internal/quotations", CreateQuotationRequest{
			StartDate: "2025-12-05", EndDate: "2025-12-01",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "invalid_trip", decode[ErrorResponse](t, w).Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/internal/quotations", CreateQuotationRequest{
			StartDate: "01/12/2025", EndDate: "2025-12-05",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAddService(t *testing.T) {
	router := setupRouter(t, sampleSource(), nil)
	quote := createDraft(t, router)

	w := addFee(t, router, quote.ID, "1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[ServiceResponse](t, w)

	sel := resp.Selection
	assert.Contains(t, sel.ID, "sel_")
	assert.Equal(t, 2, sel.Quantity, "entrance fees default to headcount")
	assert.Equal(t, "TRY", sel.CostCurrency)
	assert.True(t, sel.CostInBaseCurrency.Equal(decimal.RequireFromString("2.7")))
	assert.True(t, sel.SellingPrice.Equal(decimal.NewFromInt(120)))
	assert.True(t, sel.LineTotal.Equal(decimal.RequireFromString("6.48")))

	day := resp.Quotation.Days[1]
	require.Len(t, day.Selections, 1)
	assert.True(t, day.Total.Equal(decimal.RequireFromString("6.48")))
	assert.True(t, resp.Quotation.Margin.Equal(decimal.RequireFromString("1.08")))

	tests := []struct {
		name   string
		itemID string
		status int
		code   string
	}{
		{"inactive item", "2", http.StatusConflict, "inactive_item"},
		{"no exchange rate", "3", http.StatusUnprocessableEntity, "missing_exchange_rate"},
		{"unknown item", "999", http.StatusNotFound, "item_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := addFee(t, router, quote.ID, tt.itemID)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Code)
		})
	}

	t.Run("rejections leave the draft unchanged", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/internal/quotations/"+quote.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decode[QuotationView](t, w).Services)
	})

	t.Run("explicit rate for a foreign currency", func(t *testing.T) {
		rate := decimal.RequireFromString("0.92")
		w := doJSON(t, router, http.MethodPost, "/internal/quotations/"+quote.ID+"/services", AddServiceRequest{
			ServiceType: "entrance_fee", ItemID: "3", ExchangeRate: &rate,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		sel := decode[ServiceResponse](t, w).Selection
		assert.Equal(t, "2025-12-01", sel.ServiceDate, "defaults to the trip start")
		assert.True(t, sel.CostInBaseCurrency.Equal(decimal.RequireFromString("36.8")))
	})

	t.Run("unknown quotation", func(t *testing.T) {
		w := addFee(t, router, "quo_missing", "1")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "quotation_not_found", decode[ErrorResponse](t, w).Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		down := setupRouter(t, &stubSource{err: errors.New("connection refused")}, nil)
		q := createDraft(t, down)
		w := addFee(t, down, q.ID, "1")
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "upstream_unavailable", decode[ErrorResponse](t, w).Code)
	})
}

func TestUpdateService(t *testing.T) {
	router := setupRouter(t, sampleSource(), nil)
	quote := createDraft(t, router)
	w := addFee(t, router, quote.ID, "1")
	require.Equal(t, http.StatusCreated, w.Code)
	selID := decode[ServiceResponse](t, w).Selection.ID
	path := "/internal/quotations/" + quote.ID + "/services/" + selID

	t.Run("quantity", func(t *testing.T) {
		qty := 4
		w := doJSON(t, router, http.MethodPatch, path, UpdateServiceRequest{Quantity: &qty})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[ServiceResponse](t, w)
		assert.Equal(t, 4, resp.Selection.Quantity)
		assert.True(t, resp.Quotation.Total.Equal(decimal.RequireFromString("12.96")))
	})

	t.Run("partial failure applies nothing", func(t *testing.T) {
		qty := 9
		outside := "2026-01-01"
		w := doJSON(t, router, http.MethodPatch, path, UpdateServiceRequest{Quantity: &qty, ServiceDate: &outside})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "date_out_of_range", decode[ErrorResponse](t, w).Code)

		w = doJSON(t, router, http.MethodGet, "/internal/quotations/"+quote.ID, nil)
		view := decode[QuotationView](t, w)
		assert.Equal(t, 4, view.Days[1].Selections[0].Quantity)
	})

	t.Run("selling override and clear", func(t *testing.T) {
		price := decimal.NewFromInt(150)
		w := doJSON(t, router, http.MethodPatch, path, UpdateServiceRequest{SellingPrice: &price})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		sel := decode[ServiceResponse](t, w).Selection
		assert.True(t, sel.PriceOverridden)
		assert.True(t, sel.SellingPrice.Equal(price))

		w = doJSON(t, router, http.MethodPatch, path, UpdateServiceRequest{ClearOverride: true})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		sel = decode[ServiceResponse](t, w).Selection
		assert.False(t, sel.PriceOverridden)
		assert.True(t, sel.SellingPrice.Equal(decimal.NewFromInt(120)))
	})

	t.Run("unknown selection", func(t *testing.T) {
		qty := 1
		w := doJSON(t, router, http.MethodPatch, "/internal/quotations/"+quote.ID+"/services/sel_nope", UpdateServiceRequest{Quantity: &qty})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "selection_not_found", decode[ErrorResponse](t, w).Code)
	})

	t.Run("quantity below one", func(t *testing.T) {
		qty := 0
		w := doJSON(t, router, http.MethodPatch, path, UpdateServiceRequest{Quantity: &qty})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRemoveService(t *testing.T) {
	router := setupRouter(t, sampleSource(), nil)
	quote := createDraft(t, router)
	first := decode[ServiceResponse](t, addFee(t, router, quote.ID, "1")).Selection.ID
	second := decode[ServiceResponse](t, addFee(t, router, quote.ID, "1")).Selection.ID

	w := doJSON(t, router, http.MethodDelete, "/internal/quotations/"+quote.ID+"/services/"+first, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[QuotationView](t, w)
	assert.Equal(t, 1, view.Services)
	assert.Equal(t, second, view.Days[1].Selections[0].ID)

	w = doJSON(t, router, http.MethodDelete, "/internal/quotations/"+quote.ID+"/services/"+first, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveOpenDiscard(t *testing.T) {
	repo := newMemoryRepo()
	router := setupRouter(t, sampleSource(), repo)
	quote := createDraft(t, router)
	require.Equal(t, http.StatusCreated, addFee(t, router, quote.ID, "1").Code)

	w := doJSON(t, router, http.MethodPost, "/internal/quotations/"+quote.ID+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[SaveQuotationResponse](t, w).Services)

	w = doJSON(t, router, http.MethodGet, "/internal/quotations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[ListQuotationsResponse](t, w).Total)

	w = doJSON(t, router, http.MethodDelete, "/internal/quotations/"+quote.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodGet, "/internal/quotations/"+quote.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/internal/quotations/"+quote.ID+"/open", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[QuotationView](t, w)
	assert.Equal(t, quote.ID, view.ID)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("6.48")))

	w = doJSON(t, router, http.MethodDelete, "/internal/quotations/"+quote.ID+"?purge=true", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err := repo.Get(context.Background(), quote.ID)
	assert.ErrorIs(t, err, database.ErrQuotationNotFound)

	w = doJSON(t, router, http.MethodPost, "/internal/quotations/"+quote.ID+"/open", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersistenceNotConfigured(t *testing.T) {
	router := setupRouter(t, sampleSource(), nil)
	quote := createDraft(t, router)

	w := doJSON(t, router, http.MethodPost, "/internal/quotations/"+quote.ID+"/save", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = doJSON(t, router, http.MethodGet, "/internal/quotations", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/internal/quotations/"+quote.ID+"?purge=true", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = doJSON(t, router, http.MethodGet, "/internal/quotations/"+quote.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, "draft must survive a purge that cannot reach the store")
}

func TestDiscardQuotation_PurgeUnsaved(t *testing.T) {
	router := setupRouter(t, sampleSource(), newMemoryRepo())
	quote := createDraft(t, router)

	w := doJSON(t, router, http.MethodDelete, "/internal/quotations/"+quote.ID+"?purge=true", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodGet, "/internal/quotations/"+quote.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/internal/quotations/"+quote.ID+"?purge=true", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
