package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/money"
)

// pricePrecedence is the fixed order in which unit-price fields are tried.
// The first non-null field wins.
var pricePrecedence = map[ServiceType][]string{
	ServiceHotel:           {"pricePerPersonDouble", "pricePerPersonSingle", "pricePerPersonTriple"},
	ServiceGuide:           {"dailyRate", "halfDayRate"},
	ServiceRestaurant:      {"lunchPrice", "dinnerPrice"},
	ServiceEntranceFee:     {"adultPrice", "price"},
	ServiceExtra:           {"price"},
	ServiceVehicleTransfer: {"pricePerVehicle", "pricePerPerson"},
	ServiceVehicleRental:   {"fullDayPrice", "halfDayPrice"},
	ServiceTourCompany:     {"pricePerPerson", "groupPrice"},
}

// PricePrecedence returns the unit-price field order for a service type.
func PricePrecedence(st ServiceType) []string {
	fields := pricePrecedence[st]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// ToCatalogItem maps one raw supplier record into a CatalogItem.
//
// Every service type has exactly one case here; a new type that is not added
// fails with InvalidRecordError instead of mapping silently.
func ToCatalogItem(raw json.RawMessage, st ServiceType) (CatalogItem, error) {
	switch st {
	case ServiceHotel:
		return mapRecord(raw, st, mapHotel)
	case ServiceGuide:
		return mapRecord(raw, st, mapGuide)
	case ServiceRestaurant:
		return mapRecord(raw, st, mapRestaurant)
	case ServiceEntranceFee:
		return mapRecord(raw, st, mapEntranceFee)
	case ServiceExtra:
		return mapRecord(raw, st, mapExtra)
	case ServiceVehicleTransfer:
		return mapRecord(raw, st, mapVehicleTransfer)
	case ServiceVehicleRental:
		return mapRecord(raw, st, mapVehicleRental)
	case ServiceTourCompany:
		return mapRecord(raw, st, mapTourCompany)
	default:
		return CatalogItem{}, &InvalidRecordError{ServiceType: st, Reason: "unknown service type"}
	}
}

type pricedRecord interface {
	prices() map[string]decimal.NullDecimal
}

// mapRecord decodes raw into R, runs the per-type mapper and validates the
// shared fields.
func mapRecord[R any, P interface {
	*R
	pricedRecord
}](raw json.RawMessage, st ServiceType, mapFn func(P) CatalogItem) (CatalogItem, error) {
	var rec R
	if err := json.Unmarshal(raw, &rec); err != nil {
		return CatalogItem{}, &InvalidRecordError{ServiceType: st, Reason: "malformed record", Err: err}
	}
	p := P(&rec)

	item := mapFn(p)
	item.ServiceType = st
	item.UnitPrice, item.PriceField = firstPrice(st, p.prices())

	if item.ID == "" {
		return CatalogItem{}, &InvalidRecordError{ServiceType: st, Reason: "missing id"}
	}
	cur, err := money.ParseCurrency(item.Currency)
	if err != nil {
		return CatalogItem{}, &InvalidRecordError{ServiceType: st, ItemID: item.ID, Reason: "invalid currency", Err: err}
	}
	item.Currency = cur
	if item.UnitPrice.IsNegative() {
		return CatalogItem{}, &InvalidRecordError{ServiceType: st, ItemID: item.ID, Reason: "negative " + item.PriceField}
	}
	return item, nil
}

// firstPrice walks the precedence list; zero and "" when nothing is set.
func firstPrice(st ServiceType, fields map[string]decimal.NullDecimal) (decimal.Decimal, string) {
	for _, name := range pricePrecedence[st] {
		if v, ok := fields[name]; ok && v.Valid {
			return v.Decimal, name
		}
	}
	return decimal.Zero, ""
}

func (b recordBase) item(name string) CatalogItem {
	return CatalogItem{
		ID:          string(b.ID),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(b.Description),
		Currency:    b.Currency,
		IsActive:    b.active(),
	}
}

func mapHotel(r *HotelRecord) CatalogItem {
	item := r.item(r.Name)
	if item.Description == "" && r.Stars > 0 {
		item.Description = fmt.Sprintf("%d-star hotel", r.Stars)
	}
	item.City = r.City
	return item
}

func mapGuide(r *GuideRecord) CatalogItem {
	item := r.item(r.Name)
	if item.Description == "" && len(r.Languages) > 0 {
		item.Description = "Languages: " + strings.Join(r.Languages, ", ")
	}
	item.City = r.City
	return item
}

func mapRestaurant(r *RestaurantRecord) CatalogItem {
	item := r.item(r.Name)
	if item.Description == "" {
		item.Description = r.Cuisine
	}
	item.City = r.City
	return item
}

func mapEntranceFee(r *EntranceFeeRecord) CatalogItem {
	name := r.Name
	if name == "" {
		name = r.SiteName
	}
	item := r.item(name)
	item.City = r.City
	return item
}

func mapExtra(r *ExtraRecord) CatalogItem {
	item := r.item(r.Name)
	if item.Description == "" && r.Unit != "" {
		item.Description = "per " + r.Unit
	}
	return item
}

func mapVehicleTransfer(r *VehicleTransferRecord) CatalogItem {
	name := r.Name
	if name == "" {
		name = r.FromLocation + " → " + r.ToLocation
		if r.VehicleType != "" {
			name += " (" + r.VehicleType + ")"
		}
	}
	return r.item(name)
}

func mapVehicleRental(r *VehicleRentalRecord) CatalogItem {
	name := r.Name
	if name == "" {
		name = r.VehicleType
	}
	item := r.item(name)
	if item.Description == "" && r.Capacity > 0 {
		item.Description = fmt.Sprintf("%d seats", r.Capacity)
	}
	return item
}

func mapTourCompany(r *TourCompanyRecord) CatalogItem {
	item := r.item(r.Name)
	if item.Description == "" {
		item.Description = r.TourName
	}
	return item
}
