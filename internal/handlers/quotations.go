package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/database"
	"github.com/tourdesk/quote-service/internal/itinerary"
	"github.com/tourdesk/quote-service/internal/money"
)

// QuotationRepository persists quotation snapshots
type QuotationRepository interface {
	Save(ctx context.Context, snap itinerary.TripSnapshot) error
	Get(ctx context.Context, id string) (itinerary.TripSnapshot, error)
	List(ctx context.Context, opts database.QuotationFilterOptions) ([]database.QuotationSummary, error)
	Delete(ctx context.Context, id string) error
}

// Global quotation state (initialized by the application)
var (
	pricer         *itinerary.Pricer
	drafts         *DraftStore
	quotationStore QuotationRepository
)

// InitQuotations sets the pricer, the draft store and the optional
// repository used by the quotation endpoints.
// This should be called during application startup
func InitQuotations(p *itinerary.Pricer, d *DraftStore, store QuotationRepository) {
	pricer = p
	drafts = d
	quotationStore = store
}

// CreateQuotationRequest opens a new draft quotation
type CreateQuotationRequest struct {
	Name         string           `json:"name" binding:"max=200"`
	BaseCurrency string           `json:"baseCurrency" binding:"omitempty,len=3" jsonschema:"minLength=3,maxLength=3"`
	StartDate    string           `json:"startDate" binding:"required" jsonschema:"required,format=date"`
	EndDate      string           `json:"endDate" binding:"required" jsonschema:"required,format=date"`
	Adults       int              `json:"adults" binding:"min=0" jsonschema:"minimum=0"`
	Children     int              `json:"children" binding:"min=0" jsonschema:"minimum=0"`
	MarkupFactor *decimal.Decimal `json:"markupFactor,omitempty"`
}

// AddServiceRequest selects a catalog item for the quotation
type AddServiceRequest struct {
	ServiceType  string           `json:"serviceType" binding:"required" jsonschema:"required"`
	ItemID       string           `json:"itemId" binding:"required" jsonschema:"required"`
	ServiceDate  string           `json:"serviceDate,omitempty" jsonschema:"format=date"`
	Quantity     *int             `json:"quantity,omitempty" binding:"omitempty,min=1" jsonschema:"minimum=1"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	SellingPrice *decimal.Decimal `json:"sellingPrice,omitempty"`
	// Defaults to the item currency
	SellingCurrency string `json:"sellingCurrency,omitempty" binding:"omitempty,len=3"`
}

// UpdateServiceRequest edits one selection. Unset fields are left alone.
type UpdateServiceRequest struct {
	Quantity        *int             `json:"quantity,omitempty" binding:"omitempty,min=1" jsonschema:"minimum=1"`
	ServiceDate     *string          `json:"serviceDate,omitempty" jsonschema:"format=date"`
	CostAmount      *decimal.Decimal `json:"costAmount,omitempty"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	SellingPrice    *decimal.Decimal `json:"sellingPrice,omitempty"`
	SellingCurrency string           `json:"sellingCurrency,omitempty" binding:"omitempty,len=3"`
	// Drops a manual selling price so it follows the markup again
	ClearOverride bool `json:"clearOverride,omitempty"`
}

// ServiceResponse carries the touched selection and the refreshed itinerary
type ServiceResponse struct {
	Selection SelectionView `json:"selection" jsonschema:"required"`
	Quotation QuotationView `json:"quotation" jsonschema:"required"`
}

// SaveQuotationResponse confirms a persisted quotation
type SaveQuotationResponse struct {
	ID       string `json:"id" jsonschema:"required"`
	Services int    `json:"services"`
	SavedAt  string `json:"savedAt" jsonschema:"format=date-time"`
}

// ListQuotationsRequest represents query parameters for listing saved quotations
type ListQuotationsRequest struct {
	ActiveOn string `form:"activeOn" json:"activeOn" jsonschema:"format=date"`
	Limit    int    `form:"limit" json:"limit" binding:"min=0,max=200" jsonschema:"minimum=0,maximum=200"`
	Offset   int    `form:"offset" json:"offset" binding:"min=0" jsonschema:"minimum=0"`
}

// ListQuotationsResponse represents the response for listing saved quotations
type ListQuotationsResponse struct {
	Quotations []database.QuotationSummary `json:"quotations" jsonschema:"required"`
	Total      int                         `json:"total" jsonschema:"required"`
}

var errNoPersistence = errors.New("quotation persistence is not configured")

func requireStore(c *gin.Context) bool {
	if quotationStore == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Error: errNoPersistence.Error(), Code: "persistence_unavailable"})
		return false
	}
	return true
}

func parseDateParam(c *gin.Context, field, value string) (time.Time, bool) {
	d, err := itinerary.ParseDate(value)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: field + ": expected YYYY-MM-DD", Code: "bad_request"})
		return time.Time{}, false
	}
	return d, true
}

// CreateQuotation opens a draft quotation
// @Summary Create draft quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body CreateQuotationRequest true "Trip parameters"
// @Success 201 {object} QuotationView
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /internal/quotations [post]
func CreateQuotation(c *gin.Context) {
	var req CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	start, ok := parseDateParam(c, "startDate", req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDateParam(c, "endDate", req.EndDate)
	if !ok {
		return
	}

	tc := itinerary.TripContext{
		BaseCurrency: req.BaseCurrency,
		StartDate:    start,
		EndDate:      end,
		Adults:       req.Adults,
		Children:     req.Children,
	}
	if req.MarkupFactor != nil {
		tc.MarkupFactor = decimal.NewNullDecimal(*req.MarkupFactor)
	}

	trip, err := pricer.NewTrip(req.Name, tc)
	if err != nil {
		respondError(c, err)
		return
	}
	drafts.Put(trip)
	c.JSON(http.StatusCreated, NewQuotationView(trip))
}

// GetQuotation returns the itinerary of a draft
// @Summary Get draft itinerary
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation id"
// @Success 200 {object} QuotationView
// @Failure 404 {object} ErrorResponse
// @Router /internal/quotations/{id} [get]
func GetQuotation(c *gin.Context) {
	var view QuotationView
	err := drafts.With(c.Param("id"), func(trip *itinerary.Trip) error {
		view = NewQuotationView(trip)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddService prices a catalog item and adds it to a draft
// @Summary Add service to quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation id"
// @Param request body AddServiceRequest true "Service selection"
// @Success 201 {object} ServiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Inactive item"
// @Failure 422 {object} ErrorResponse "Missing exchange rate or invalid input"
// @Failure 502 {object} ErrorResponse
// @Router /internal/quotations/{id}/services [post]
func AddService(c *gin.Context) {
	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	st, err := catalog.ParseServiceType(req.ServiceType)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	opts := itinerary.AddServiceOptions{Quantity: req.Quantity, ExchangeRate: req.ExchangeRate}
	if req.ServiceDate != "" {
		d, ok := parseDateParam(c, "serviceDate", req.ServiceDate)
		if !ok {
			return
		}
		opts.ServiceDate = &d
	}

	ctx := c.Request.Context()
	item, err := catalogAdapter.GetItem(ctx, st, req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.SellingPrice != nil {
		currency := req.SellingCurrency
		if currency == "" {
			currency = item.Currency
		}
		price := money.New(*req.SellingPrice, currency)
		opts.SellingPrice = &price
	}

	var resp ServiceResponse
	err = drafts.Update(c.Param("id"), func(trip *itinerary.Trip) error {
		sel, err := pricer.AddService(ctx, trip, item, opts)
		if err != nil {
			return err
		}
		resp = ServiceResponse{Selection: newSelectionView(*sel), Quotation: NewQuotationView(trip)}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateService edits a selection of a draft. All changes apply or none do.
// @Summary Update quotation service
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation id"
// @Param selectionId path string true "Selection id"
// @Param request body UpdateServiceRequest true "Changes"
// @Success 200 {object} ServiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /internal/quotations/{id}/services/{selectionId} [patch]
func UpdateService(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	var serviceDate *time.Time
	if req.ServiceDate != nil {
		d, ok := parseDateParam(c, "serviceDate", *req.ServiceDate)
		if !ok {
			return
		}
		serviceDate = &d
	}

	ctx := c.Request.Context()
	selID := c.Param("selectionId")

	var resp ServiceResponse
	err := drafts.Update(c.Param("id"), func(trip *itinerary.Trip) error {
		if _, ok := trip.Selection(selID); !ok {
			return &itinerary.NotFoundError{SelectionID: selID}
		}
		if req.Quantity != nil {
			if _, err := trip.UpdateQuantity(selID, *req.Quantity); err != nil {
				return err
			}
		}
		if serviceDate != nil {
			if _, err := trip.UpdateServiceDate(selID, *serviceDate); err != nil {
				return err
			}
		}
		if req.CostAmount != nil {
			if _, err := trip.UpdateCost(selID, *req.CostAmount); err != nil {
				return err
			}
		}
		if req.ExchangeRate != nil {
			if _, err := trip.UpdateExchangeRate(selID, *req.ExchangeRate); err != nil {
				return err
			}
		}
		if req.ClearOverride {
			if _, err := trip.ClearSellingOverride(selID); err != nil {
				return err
			}
		}
		if req.SellingPrice != nil {
			current, _ := trip.Selection(selID)
			currency := req.SellingCurrency
			if currency == "" {
				currency = current.SellingCurrency
			}
			if _, err := pricer.OverrideSellingPrice(ctx, trip, selID, money.New(*req.SellingPrice, currency)); err != nil {
				return err
			}
		}

		sel, _ := trip.Selection(selID)
		resp = ServiceResponse{Selection: newSelectionView(sel), Quotation: NewQuotationView(trip)}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveService deletes a selection from a draft
// @Summary Remove quotation service
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation id"
// @Param selectionId path string true "Selection id"
// @Success 200 {object} QuotationView
// @Failure 404 {object} ErrorResponse
// @Router /internal/quotations/{id}/services/{selectionId} [delete]
func RemoveService(c *gin.Context) {
	var view QuotationView
	err := drafts.Update(c.Param("id"), func(trip *itinerary.Trip) error {
		if err := trip.RemoveService(c.Param("selectionId")); err != nil {
			return err
		}
		view = NewQuotationView(trip)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SaveQuotation persists the current state of a draft
// @Summary Save quotation
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation id"
// @Success 200 {object} SaveQuotationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Persistence not configured"
// @Router /internal/quotations/{id}/save [post]
func SaveQuotation(c *gin.Context) {
	if !requireStore(c) {
		return
	}
	var resp SaveQuotationResponse
	err := drafts.With(c.Param("id"), func(trip *itinerary.Trip) error {
		if err := quotationStore.Save(c.Request.Context(), trip.Snapshot()); err != nil {
			return err
		}
		resp = SaveQuotationResponse{ID: trip.ID, Services: trip.Len(), SavedAt: time.Now().UTC().Format(time.RFC3339)}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OpenQuotation loads a saved quotation into a draft, replacing any open
// draft with the same id
// @Summary Open saved quotation
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation id"
// @Success 200 {object} QuotationView
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /internal/quotations/{id}/open [post]
func OpenQuotation(c *gin.Context) {
	if !requireStore(c) {
		return
	}
	snap, err := quotationStore.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	trip, err := itinerary.FromSnapshot(snap)
	if err != nil {
		respondError(c, err)
		return
	}
	drafts.Put(trip)
	c.JSON(http.StatusOK, NewQuotationView(trip))
}

// DiscardQuotation closes a draft. With purge=true the saved copy is deleted too.
// @Summary Discard quotation
// @Tags quotations
// @Param id path string true "Quotation id"
// @Param purge query bool false "Also delete the saved quotation"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /internal/quotations/{id} [delete]
func DiscardQuotation(c *gin.Context) {
	id := c.Param("id")

	if c.Query("purge") == "true" {
		if !requireStore(c) {
			return
		}
		// the saved copy goes first so a failed delete leaves the draft open
		err := quotationStore.Delete(c.Request.Context(), id)
		if err != nil && !errors.Is(err, database.ErrQuotationNotFound) {
			respondError(c, err)
			return
		}
		if removed := drafts.Remove(id); err != nil && !removed {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	if !drafts.Remove(id) {
		respondError(c, ErrDraftNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListQuotations returns saved quotations
// @Summary List saved quotations
// @Tags quotations
// @Produce json
// @Param activeOn query string false "Only quotations travelling on this day (YYYY-MM-DD)"
// @Param limit query int false "Number of items to return" default(50) minimum(1) maximum(200)
// @Param offset query int false "Number of items to skip" default(0) minimum(0)
// @Success 200 {object} ListQuotationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /internal/quotations [get]
func ListQuotations(c *gin.Context) {
	if !requireStore(c) {
		return
	}
	var req ListQuotationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	opts := database.QuotationFilterOptions{Limit: req.Limit, Offset: req.Offset}
	if req.ActiveOn != "" {
		d, ok := parseDateParam(c, "activeOn", req.ActiveOn)
		if !ok {
			return
		}
		opts.ActiveOn = &d
	}

	list, err := quotationStore.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListQuotationsResponse{Quotations: list, Total: len(list)})
}
