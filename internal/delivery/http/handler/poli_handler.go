package handler

import (
	"net/http"
	"strconv"

	"puskesmas-frontdesk/internal/delivery/http/middleware"
	"puskesmas-frontdesk/internal/usecase"
	"puskesmas-frontdesk/pkg/response"

	"github.com/gorilla/mux"
)

type PoliHandler struct {
	poliUsecase usecase.PoliUsecase
}

func NewPoliHandler(poliUsecase usecase.PoliUsecase) *PoliHandler {
	return &PoliHandler{
		poliUsecase: poliUsecase,
	}
}

// List serves the poli overview with each department's resolved doctor
// status.
func (h *PoliHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.poliUsecase.ListPoli(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list poli")
		return
	}

	response.Success(w, http.StatusOK, "Daftar poli", list)
}

// Detail serves one poli's schedules, availability and queue info scoped to
// the viewer.
func (h *PoliHandler) Detail(w http.ResponseWriter, r *http.Request) {
	poliID, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid poli id", nil)
		return
	}

	viewer, _ := middleware.GetUserFromContext(r.Context())

	detail, err := h.poliUsecase.GetPoliDetail(r.Context(), poliID, viewer)
	if err != nil {
		switch err {
		case usecase.ErrPoliNotFound:
			response.NotFound(w, "Poli tidak ditemukan")
		default:
			response.InternalServerError(w, "Failed to load poli")
		}
		return
	}

	response.Success(w, http.StatusOK, "Detail poli", detail)
}

// OverrideDokter forces the displayed doctor status from the aktif query
// parameter.
func (h *PoliHandler) OverrideDokter(w http.ResponseWriter, r *http.Request) {
	poliID, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid poli id", nil)
		return
	}

	aktif, err := strconv.ParseBool(r.URL.Query().Get("aktif"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Parameter aktif harus bool", nil)
		return
	}

	admin, _ := middleware.GetUserFromContext(r.Context())

	if err := h.poliUsecase.OverrideDokter(r.Context(), admin.ID, poliID, aktif); err != nil {
		switch err {
		case usecase.ErrPoliNotFound:
			response.NotFound(w, "Poli tidak ditemukan")
		default:
			response.InternalServerError(w, "Failed to override dokter")
		}
		return
	}

	msg := "Status dokter dipaksa tidak aktif"
	if aktif {
		msg = "Status dokter dipaksa aktif"
	}
	response.Success(w, http.StatusOK, msg, nil)
}

// AutoDokter clears the override so status follows operating hours again.
func (h *PoliHandler) AutoDokter(w http.ResponseWriter, r *http.Request) {
	poliID, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid poli id", nil)
		return
	}

	admin, _ := middleware.GetUserFromContext(r.Context())

	if err := h.poliUsecase.AutoDokter(r.Context(), admin.ID, poliID); err != nil {
		switch err {
		case usecase.ErrPoliNotFound:
			response.NotFound(w, "Poli tidak ditemukan")
		default:
			response.InternalServerError(w, "Failed to reset dokter status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Status dokter kembali mengikuti jam operasional", nil)
}

// pathID parses the {id} path variable.
func pathID(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
