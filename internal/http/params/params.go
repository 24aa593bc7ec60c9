// Package params reads shipment specific values from request URLs.
package params

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

var ErrInvalidID = errors.New("invalid id")

// ID parses the {id} route parameter. Only positive integers are accepted.
func ID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// Filter builds the list filter from the query string.
//
// filter=this_week wins over everything else. A range applies only when both
// startDate and endDate are present; a lone bound is ignored.
func Filter(r *http.Request) (shipment.Filter, error) {
	q := r.URL.Query()

	if q.Get("filter") == "this_week" {
		return shipment.CurrentWeek(), nil
	}

	rawStart, rawEnd := q.Get("startDate"), q.Get("endDate")
	if rawStart == "" || rawEnd == "" {
		return shipment.NoFilter(), nil
	}

	start, err := time.Parse(time.DateOnly, rawStart)
	if err != nil {
		return shipment.Filter{}, fmt.Errorf("invalid startDate %q, expected YYYY-MM-DD", rawStart)
	}

	end, err := time.Parse(time.DateOnly, rawEnd)
	if err != nil {
		return shipment.Filter{}, fmt.Errorf("invalid endDate %q, expected YYYY-MM-DD", rawEnd)
	}

	return shipment.Range(start, end), nil
}
