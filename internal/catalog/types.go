// Package catalog normalises supplier offerings (hotels, guides, restaurants,
// entrance fees, vehicles, tour companies, extras) into one CatalogItem shape.
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ServiceType identifies a supplier collection.
type ServiceType string

const (
	ServiceHotel           ServiceType = "hotel"
	ServiceGuide           ServiceType = "guide"
	ServiceRestaurant      ServiceType = "restaurant"
	ServiceEntranceFee     ServiceType = "entrance_fee"
	ServiceExtra           ServiceType = "extra"
	ServiceVehicleTransfer ServiceType = "vehicle_transfer"
	ServiceVehicleRental   ServiceType = "vehicle_rental"
	ServiceTourCompany     ServiceType = "tour_company"
)

// ServiceTypes lists every service type in display order.
var ServiceTypes = []ServiceType{
	ServiceHotel,
	ServiceGuide,
	ServiceRestaurant,
	ServiceEntranceFee,
	ServiceExtra,
	ServiceVehicleTransfer,
	ServiceVehicleRental,
	ServiceTourCompany,
}

// ParseServiceType accepts the canonical value and the kebab-case form used in URLs.
func ParseServiceType(value string) (ServiceType, error) {
	v := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	for _, st := range ServiceTypes {
		if string(st) == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown service type: %q", value)
}

// IsValidServiceType checks if a string is a valid service type
func IsValidServiceType(value string) bool {
	_, err := ParseServiceType(value)
	return err == nil
}

// CatalogItem is the uniform view of one supplier offering.
type CatalogItem struct {
	ID          string          `json:"id"`
	ServiceType ServiceType     `json:"serviceType"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Currency    string          `json:"currency"`
	IsActive    bool            `json:"isActive"`
	// PriceField is the raw field UnitPrice came from; empty means no price was
	// present and UnitPrice is zero ("price TBD").
	PriceField string `json:"priceField"`
	City       string `json:"city,omitempty"`
}

// PriceTBD reports whether the supplier record carried no usable price.
func (i CatalogItem) PriceTBD() bool {
	return i.PriceField == ""
}

// Filters narrows a catalog listing. Zero value matches everything.
type Filters struct {
	ActiveOnly bool   `form:"activeOnly"`
	Query      string `form:"q"`
	City       string `form:"city"`
	Currency   string `form:"currency"`
}

// Match reports whether item passes every set filter.
func (f Filters) Match(item CatalogItem) bool {
	if f.ActiveOnly && !item.IsActive {
		return false
	}
	if f.Currency != "" && !strings.EqualFold(f.Currency, item.Currency) {
		return false
	}
	if f.City != "" && FoldText(f.City) != FoldText(item.City) {
		return false
	}
	if f.Query != "" {
		q := FoldText(f.Query)
		if !strings.Contains(FoldText(item.Name), q) && !strings.Contains(FoldText(item.Description), q) {
			return false
		}
	}
	return true
}
