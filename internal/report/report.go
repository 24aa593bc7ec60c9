// Package report aggregates shipment listings into the dashboard summary.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

// Summary holds totals over a listing. ByWeekday is indexed Monday first.
type Summary struct {
	Count            int
	TotalAmount      decimal.Decimal
	AverageAmount    decimal.Decimal
	TotalShippingFee decimal.Decimal
	ByWeekday        [7]decimal.Decimal
}

func Summarize(shipments []*shipment.Shipment) Summary {
	var s Summary

	for _, sh := range shipments {
		s.Count++
		s.TotalAmount = s.TotalAmount.Add(sh.TotalAmount)
		s.TotalShippingFee = s.TotalShippingFee.Add(sh.ShippingFee)

		idx := WeekdayIndex(sh.Date.Weekday())
		s.ByWeekday[idx] = s.ByWeekday[idx].Add(sh.TotalAmount)
	}

	if s.Count > 0 {
		s.AverageAmount = s.TotalAmount.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	}

	return s
}

// WeekdayIndex maps a weekday to its position in a Monday-first week.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WeekdayLabel is the short English name for a Monday-first index.
func WeekdayLabel(idx int) string {
	return time.Weekday((idx + 1) % 7).String()[:3]
}

// Peak returns the largest weekday total, or zero when all are zero.
func (s Summary) Peak() decimal.Decimal {
	peak := decimal.Zero
	for _, v := range s.ByWeekday {
		if v.GreaterThan(peak) {
			peak = v
		}
	}

	return peak
}
