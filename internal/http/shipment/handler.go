package shipment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/shiptrack/internal/http/params"
	"github.com/MrJamesThe3rd/shiptrack/internal/http/respond"
	"github.com/MrJamesThe3rd/shiptrack/internal/report"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

type Handler struct {
	svc *shipment.Service
}

func NewHandler(svc *shipment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/summary", h.summary)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := params.Filter(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	shipments, err := h.svc.List(r.Context(), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewResponseList(shipments))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := params.Filter(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	shipments, err := h.svc.List(r.Context(), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(report.Summarize(shipments)))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Create(r.Context(), req.Params())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	slog.Info("shipment created", "id", s.ID, "code", s.Code)

	respond.JSON(w, http.StatusCreated, NewResponse(s))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Update(r.Context(), id, req.Params()); err != nil {
		WriteError(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "shipment updated")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "shipment deleted")
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return req, false
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return req, false
	}

	return req, true
}

// WriteError maps a service error to its status code. Unexpected errors are
// logged and hidden behind a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shipment.ErrDuplicateCode):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shipment.ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("shipment request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}
