package params_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/shiptrack/internal/http/params"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    shipment.Filter
		wantErr bool
	}{
		{name: "None", query: "", want: shipment.NoFilter()},
		{name: "ThisWeek", query: "filter=this_week", want: shipment.CurrentWeek()},
		{
			name:  "ThisWeekWinsOverRange",
			query: "filter=this_week&startDate=2024-01-01&endDate=2024-01-31",
			want:  shipment.CurrentWeek(),
		},
		{
			name:  "Range",
			query: "startDate=2024-01-01&endDate=2024-01-31",
			want: shipment.Range(
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			),
		},
		{name: "OnlyStart", query: "startDate=2024-01-01", want: shipment.NoFilter()},
		{name: "UnknownFilterValue", query: "filter=last_month", want: shipment.NoFilter()},
		{name: "BadStart", query: "startDate=01/01/2024&endDate=2024-01-31", wantErr: true},
		{name: "BadEnd", query: "startDate=2024-01-01&endDate=soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/shipments?"+tt.query, nil)

			got, err := params.Filter(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "abc", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.raw)

			r := httptest.NewRequest(http.MethodDelete, "/api/shipments/"+tt.raw, nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			got, err := params.ID(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, params.ErrInvalidID)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
