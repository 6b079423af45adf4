package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RecordID accepts both numeric and string identifiers from supplier payloads.
type RecordID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// recordBase holds the fields every supplier collection shares.
type recordBase struct {
	ID          RecordID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Currency    string   `json:"currency"`
	// nil when the source omits the flag; the catalog backend defaults it to true.
	IsActive *bool `json:"isActive"`
}

func (b recordBase) active() bool {
	return b.IsActive == nil || *b.IsActive
}

// HotelRecord is a raw hotel row.
type HotelRecord struct {
	recordBase
	City                 string              `json:"city"`
	Stars                int                 `json:"stars"`
	PricePerPersonDouble decimal.NullDecimal `json:"pricePerPersonDouble"`
	PricePerPersonSingle decimal.NullDecimal `json:"pricePerPersonSingle"`
	PricePerPersonTriple decimal.NullDecimal `json:"pricePerPersonTriple"`
}

func (r *HotelRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"pricePerPersonDouble": r.PricePerPersonDouble,
		"pricePerPersonSingle": r.PricePerPersonSingle,
		"pricePerPersonTriple": r.PricePerPersonTriple,
	}
}

// GuideRecord is a raw guide row.
type GuideRecord struct {
	recordBase
	City        string              `json:"city"`
	Languages   []string            `json:"languages"`
	DailyRate   decimal.NullDecimal `json:"dailyRate"`
	HalfDayRate decimal.NullDecimal `json:"halfDayRate"`
}

func (r *GuideRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"dailyRate":   r.DailyRate,
		"halfDayRate": r.HalfDayRate,
	}
}

// RestaurantRecord is a raw restaurant row.
type RestaurantRecord struct {
	recordBase
	City        string              `json:"city"`
	Cuisine     string              `json:"cuisine"`
	LunchPrice  decimal.NullDecimal `json:"lunchPrice"`
	DinnerPrice decimal.NullDecimal `json:"dinnerPrice"`
}

func (r *RestaurantRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"lunchPrice":  r.LunchPrice,
		"dinnerPrice": r.DinnerPrice,
	}
}

// EntranceFeeRecord is a raw museum / site ticket row.
type EntranceFeeRecord struct {
	recordBase
	SiteName   string              `json:"siteName"`
	City       string              `json:"city"`
	AdultPrice decimal.NullDecimal `json:"adultPrice"`
	ChildPrice decimal.NullDecimal `json:"childPrice"`
	Price      decimal.NullDecimal `json:"price"`
}

func (r *EntranceFeeRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"adultPrice": r.AdultPrice,
		"price":      r.Price,
	}
}

// ExtraRecord is a raw free-form extra (tips, water, porterage).
type ExtraRecord struct {
	recordBase
	Unit  string              `json:"unit"`
	Price decimal.NullDecimal `json:"price"`
}

func (r *ExtraRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"price": r.Price,
	}
}

// VehicleTransferRecord is a raw point-to-point transfer row.
type VehicleTransferRecord struct {
	recordBase
	FromLocation    string              `json:"fromLocation"`
	ToLocation      string              `json:"toLocation"`
	VehicleType     string              `json:"vehicleType"`
	PricePerVehicle decimal.NullDecimal `json:"pricePerVehicle"`
	PricePerPerson  decimal.NullDecimal `json:"pricePerPerson"`
}

func (r *VehicleTransferRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"pricePerVehicle": r.PricePerVehicle,
		"pricePerPerson":  r.PricePerPerson,
	}
}

// VehicleRentalRecord is a raw vehicle-with-driver rental row.
type VehicleRentalRecord struct {
	recordBase
	VehicleType  string              `json:"vehicleType"`
	Capacity     int                 `json:"capacity"`
	FullDayPrice decimal.NullDecimal `json:"fullDayPrice"`
	HalfDayPrice decimal.NullDecimal `json:"halfDayPrice"`
}

func (r *VehicleRentalRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"fullDayPrice": r.FullDayPrice,
		"halfDayPrice": r.HalfDayPrice,
	}
}

// TourCompanyRecord is a raw third-party tour operator row.
type TourCompanyRecord struct {
	recordBase
	TourName       string              `json:"tourName"`
	PricePerPerson decimal.NullDecimal `json:"pricePerPerson"`
	GroupPrice     decimal.NullDecimal `json:"groupPrice"`
}

func (r *TourCompanyRecord) prices() map[string]decimal.NullDecimal {
	return map[string]decimal.NullDecimal{
		"pricePerPerson": r.PricePerPerson,
		"groupPrice":     r.GroupPrice,
	}
}
