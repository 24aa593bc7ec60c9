package importcsv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/shiptrack/internal/http/respond"
	httpshipment "github.com/MrJamesThe3rd/shiptrack/internal/http/shipment"
	"github.com/MrJamesThe3rd/shiptrack/internal/importer"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc   *importer.Service
	shipmentSvc *shipment.Service
}

func NewHandler(importSvc *importer.Service, shipmentSvc *shipment.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		shipmentSvc: shipmentSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type importSuccessResponse struct {
	Imported  int                     `json:"imported"`
	Shipments []httpshipment.Response `json:"shipments"`
}

type conflictDTO struct {
	Incoming httpshipment.Response `json:"incoming"`
	Existing httpshipment.Response `json:"existing"`
}

type importConflictResponse struct {
	New       []httpshipment.Response `json:"new"`
	Conflicts []conflictDTO           `json:"conflicts"`
}

type confirmRequest struct {
	Shipments []httpshipment.Request `json:"shipments"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.shipmentSvc.ImportBatch(r.Context(), params)
	if err != nil {
		httpshipment.WriteError(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		slog.Info("import has conflicts",
			"file", header.Filename, "rows", len(params), "conflicts", len(result.Conflicts))

		resp := importConflictResponse{
			New:       make([]httpshipment.Response, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, httpshipment.NewParamsResponse(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: httpshipment.NewParamsResponse(c.Incoming),
				Existing: httpshipment.NewResponse(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	slog.Info("shipments imported", "file", header.Filename, "count", len(result.Imported))

	respond.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Shipments) == 0 {
		respond.Error(w, http.StatusBadRequest, "shipments must not be empty")
		return
	}

	params := make([]shipment.Params, 0, len(req.Shipments))
	for i, s := range req.Shipments {
		if err := s.Validate(); err != nil {
			respond.Error(w, http.StatusBadRequest, fmt.Sprintf("shipment %d: %v", i+1, err))
			return
		}

		params = append(params, s.Params())
	}

	created, err := h.shipmentSvc.CreateBatch(r.Context(), params)
	if err != nil {
		httpshipment.WriteError(w, r, err)
		return
	}

	slog.Info("import confirmed", "count", len(created))

	respond.JSON(w, http.StatusCreated, toSuccessResponse(created))
}

func toSuccessResponse(shipments []*shipment.Shipment) importSuccessResponse {
	return importSuccessResponse{
		Imported:  len(shipments),
		Shipments: httpshipment.NewResponseList(shipments),
	}
}
