package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/shiptrack/internal/report"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

func sh(amount, fee string, y, m, d int) *shipment.Shipment {
	return &shipment.Shipment{
		TotalAmount: decimal.RequireFromString(amount),
		ShippingFee: decimal.RequireFromString(fee),
		Date:        time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarize(t *testing.T) {
	got := report.Summarize([]*shipment.Shipment{
		sh("100", "10", 2024, 1, 8),   // Monday
		sh("50.50", "0", 2024, 1, 8),  // Monday
		sh("25", "5.25", 2024, 1, 14), // Sunday
		sh("0.01", "0", 2024, 1, 10),  // Wednesday
	})

	assert.Equal(t, 4, got.Count)
	assert.Equal(t, "175.51", got.TotalAmount.String())
	assert.Equal(t, "43.88", got.AverageAmount.String())
	assert.Equal(t, "15.25", got.TotalShippingFee.String())
	assert.Equal(t, "150.5", got.ByWeekday[0].String())
	assert.Equal(t, "0.01", got.ByWeekday[2].String())
	assert.Equal(t, "25", got.ByWeekday[6].String())
	assert.True(t, got.ByWeekday[1].IsZero())
	assert.Equal(t, "150.5", got.Peak().String())
}

func TestSummarize_Empty(t *testing.T) {
	got := report.Summarize(nil)

	assert.Zero(t, got.Count)
	assert.True(t, got.TotalAmount.IsZero())
	assert.True(t, got.AverageAmount.IsZero())
	assert.True(t, got.Peak().IsZero())
}

func TestWeekdayLabels(t *testing.T) {
	var labels []string
	for i := range 7 {
		labels = append(labels, report.WeekdayLabel(i))
	}

	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, labels)
	assert.Equal(t, 0, report.WeekdayIndex(time.Monday))
	assert.Equal(t, 6, report.WeekdayIndex(time.Sunday))
}
