package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourdesk/quote-service/internal/catalog"
)

var catalogAdapter *catalog.Adapter

// InitCatalog sets the adapter used by the catalog endpoints.
// This should be called during application startup
func InitCatalog(adapter *catalog.Adapter) {
	catalogAdapter = adapter
}

// ListCatalogResponse represents the response for listing catalog items
type ListCatalogResponse struct {
	ServiceType catalog.ServiceType   `json:"serviceType" jsonschema:"required"`
	Items       []catalog.CatalogItem `json:"items" jsonschema:"required"`
	Total       int                   `json:"total" jsonschema:"required"`
}

// ListAllCatalogResponse represents the response for listing every service type
type ListAllCatalogResponse struct {
	Items []catalog.CatalogItem `json:"items" jsonschema:"required"`
	Total int                   `json:"total" jsonschema:"required"`
}

// RefreshCatalogResponse reports how many cached sources were dropped
type RefreshCatalogResponse struct {
	ServiceType catalog.ServiceType `json:"serviceType,omitempty"`
	Sources     int                 `json:"sources"`
}

// ListAllCatalog returns the normalized items of every configured service type
// @Summary List the whole catalog
// @Description Fetches every configured service type concurrently; items are grouped by service type
// @Tags catalog
// @Produce json
// @Param q query string false "Diacritic-insensitive name search"
// @Param city query string false "Filter by city"
// @Param currency query string false "Filter by currency code"
// @Param activeOnly query bool false "Only active items"
// @Success 200 {object} ListAllCatalogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /internal/catalog [get]
func ListAllCatalog(c *gin.Context) {
	var filters catalog.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBadRequest(c, err)
		return
	}

	items, err := catalogAdapter.ListAll(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListAllCatalogResponse{Items: items, Total: len(items)})
}

// RefreshCatalog drops cached supplier collections
// @Summary Refresh catalog cache
// @Description Drops cached collections of one service type, or of all when serviceType is omitted
// @Tags catalog
// @Produce json
// @Param serviceType query string false "Service type"
// @Success 200 {object} RefreshCatalogResponse
// @Failure 400 {object} ErrorResponse
// @Router /internal/catalog/refresh [post]
func RefreshCatalog(c *gin.Context) {
	var st catalog.ServiceType
	if raw := c.Query("serviceType"); raw != "" {
		parsed, err := catalog.ParseServiceType(raw)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		st = parsed
	}
	c.JSON(http.StatusOK, RefreshCatalogResponse{ServiceType: st, Sources: catalogAdapter.Refresh(st)})
}

// ListCatalog returns the normalized items of one service type
// @Summary List catalog items
// @Description Returns active and inactive items of a service type, filtered by name, city and currency
// @Tags catalog
// @Produce json
// @Param serviceType path string true "Service type" Enums(hotel, guide, restaurant, entrance_fee, extra, vehicle_transfer, vehicle_rental, tour_company)
// @Param q query string false "Diacritic-insensitive name search"
// @Param city query string false "Filter by city"
// @Param currency query string false "Filter by currency code"
// @Param activeOnly query bool false "Only active items"
// @Success 200 {object} ListCatalogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /internal/catalog/{serviceType} [get]
func ListCatalog(c *gin.Context) {
	st, err := catalog.ParseServiceType(c.Param("serviceType"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var filters catalog.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBadRequest(c, err)
		return
	}

	items, err := catalogAdapter.ListCatalog(c.Request.Context(), st, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListCatalogResponse{ServiceType: st, Items: items, Total: len(items)})
}

// GetCatalogItem returns one catalog item
// @Summary Get catalog item
// @Tags catalog
// @Produce json
// @Param serviceType path string true "Service type"
// @Param itemId path string true "Supplier item id"
// @Success 200 {object} catalog.CatalogItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /internal/catalog/{serviceType}/{itemId} [get]
func GetCatalogItem(c *gin.Context) {
	st, err := catalog.ParseServiceType(c.Param("serviceType"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := catalogAdapter.GetItem(c.Request.Context(), st, c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
