package itinerary

import (
	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/money"
)

// BucketByDay returns one bucket per calendar day from start to end
// inclusive, empty days included. A single-day trip is an arrival day.
// Selections keep insertion order inside their bucket.
func BucketByDay(trip *Trip) []DayBucket {
	tc := trip.ctx
	n := tc.Days()
	base := tc.BaseCurrency

	buckets := make([]DayBucket, n)
	for i := range buckets {
		dayType := DayMiddle
		switch i {
		case 0:
			dayType = DayArrival
		case n - 1:
			dayType = DayDeparture
		}
		buckets[i] = DayBucket{
			DayNumber:  i + 1,
			Date:       tc.StartDate.AddDate(0, 0, i),
			DayType:    dayType,
			Selections: make([]ServiceSelection, 0),
		}
	}

	for _, s := range trip.selections {
		i := int(Date(s.ServiceDate).Sub(tc.StartDate).Hours() / 24)
		if i < 0 || i >= n {
			continue
		}
		buckets[i].Selections = append(buckets[i].Selections, *s)
	}

	for i := range buckets {
		buckets[i].Total = ComputeDayTotal(buckets[i], base)
		buckets[i].Cost = ComputeDayCost(buckets[i], base)
	}
	return buckets
}

// ComputeDayTotal sums SellingPrice x Quantity of the bucket after
// normalising every selection to base with its selling rate.
// base must be the currency of the trip the bucket came from.
func ComputeDayTotal(bucket DayBucket, base string) money.Money {
	total := money.Zero(base)
	for _, s := range bucket.Selections {
		line := s.Selling().Mul(decimal.NewFromInt(int64(s.Quantity))).Convert(s.SellingRate, base)
		total.Amount = total.Amount.Add(line.Amount)
	}
	return total
}

// ComputeDayCost sums CostInBaseCurrency x Quantity of the bucket.
func ComputeDayCost(bucket DayBucket, base string) money.Money {
	total := decimal.Zero
	for _, s := range bucket.Selections {
		total = total.Add(s.CostTotal())
	}
	return money.New(total, base)
}

// ComputeTripTotal is the sum of the day totals.
func ComputeTripTotal(trip *Trip) money.Money {
	base := trip.BaseCurrency()
	total := money.Zero(base)
	for _, b := range BucketByDay(trip) {
		total.Amount = total.Amount.Add(ComputeDayTotal(b, base).Amount)
	}
	return total
}

// ComputeTripCost is the sum of the day costs.
func ComputeTripCost(trip *Trip) money.Money {
	base := trip.BaseCurrency()
	total := money.Zero(base)
	for _, b := range BucketByDay(trip) {
		total.Amount = total.Amount.Add(ComputeDayCost(b, base).Amount)
	}
	return total
}

// Margin is selling total minus cost total, in base currency.
func Margin(trip *Trip) money.Money {
	selling := ComputeTripTotal(trip)
	cost := ComputeTripCost(trip)
	return money.New(selling.Amount.Sub(cost.Amount), selling.Currency)
}

// MarginPercent is Margin relative to the selling total, zero when nothing is sold.
func MarginPercent(trip *Trip) decimal.Decimal {
	selling := ComputeTripTotal(trip)
	if selling.IsZero() {
		return decimal.Zero
	}
	return Margin(trip).Amount.Div(selling.Amount).Mul(decimal.NewFromInt(100)).Round(2)
}
