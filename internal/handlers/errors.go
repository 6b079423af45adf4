package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/database"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error" jsonschema:"required"`
	Code  string `json:"code" jsonschema:"required"`
}

// statusFor maps domain errors to an HTTP status and a stable code.
func statusFor(err error) (int, string) {
	var (
		itemNotFound *catalog.ItemNotFoundError
		upstream     *catalog.UpstreamError
	)
	switch {
	case errors.Is(err, ErrDraftNotFound), errors.Is(err, database.ErrQuotationNotFound):
		return http.StatusNotFound, "quotation_not_found"
	case errors.As(err, &itemNotFound):
		return http.StatusNotFound, "item_not_found"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "upstream_unavailable"
	}

	switch kind := itinerary.ErrorKind(err); kind {
	case "not_found":
		return http.StatusNotFound, "selection_not_found"
	case "inactive_item":
		return http.StatusConflict, kind
	case "missing_exchange_rate", "invalid_quantity", "date_out_of_range", "invalid_amount", "invalid_trip":
		return http.StatusUnprocessableEntity, kind
	}
	return http.StatusInternalServerError, "internal"
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: code})
}

func respondBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "bad_request"})
}
