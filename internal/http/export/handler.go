package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/shiptrack/internal/export"
	"github.com/MrJamesThe3rd/shiptrack/internal/http/params"
	"github.com/MrJamesThe3rd/shiptrack/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	loc *time.Location
	now func() time.Time
}

// NewHandler names downloads after the current day in loc.
func NewHandler(svc *export.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}

	return &Handler{svc: svc, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := params.Filter(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// Rendered up front so a failed listing can still produce a JSON error.
	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), filter, format, &buf)
	if err != nil {
		slog.Error("failed to export shipments", "format", format, "filter", filter.Kind.String(), "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", format.Filename(h.now().In(h.loc))))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Shipment-Count", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
