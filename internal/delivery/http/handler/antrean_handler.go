package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/delivery/http/middleware"
	"puskesmas-frontdesk/internal/usecase"
	"puskesmas-frontdesk/pkg/response"
	"puskesmas-frontdesk/pkg/validator"
)

type AntreanHandler struct {
	antreanUsecase usecase.AntreanUsecase
	validator      *validator.CustomValidator
}

func NewAntreanHandler(antreanUsecase usecase.AntreanUsecase, validator *validator.CustomValidator) *AntreanHandler {
	return &AntreanHandler{
		antreanUsecase: antreanUsecase,
		validator:      validator,
	}
}

// Daftar joins the logged-in patient to a poli's queue (JSON API). The
// body's user_id is ignored; the session decides who is joining.
func (h *AntreanHandler) Daftar(w http.ResponseWriter, r *http.Request) {
	var req dto.DaftarAntreanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, _ := middleware.GetUserFromContext(r.Context())

	resp, err := h.antreanUsecase.Daftar(r.Context(), user.ID, req.PoliID)
	if err != nil {
		switch err {
		case usecase.ErrPoliNotFound:
			response.NotFound(w, "Poli tidak ditemukan")
		default:
			response.InternalServerError(w, "Failed to join antrean")
		}
		return
	}

	response.Success(w, http.StatusOK, resp.Message, resp)
}

// DaftarForm joins via the UI form and bounces back to the poli detail
// page. Guests are redirected to login by the route middleware.
func (h *AntreanHandler) DaftarForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form body", nil)
		return
	}

	poliID, err := strconv.ParseUint(r.PostFormValue("poli_id"), 10, 32)
	if err != nil || poliID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid poli id", nil)
		return
	}

	user, _ := middleware.GetUserFromContext(r.Context())

	if _, err := h.antreanUsecase.Daftar(r.Context(), user.ID, uint(poliID)); err != nil {
		switch err {
		case usecase.ErrPoliNotFound:
			response.NotFound(w, "Poli tidak ditemukan")
		default:
			response.InternalServerError(w, "Failed to join antrean")
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/ui/poli/%d", poliID), http.StatusFound)
}

// Selesai completes a queue entry (admin only).
func (h *AntreanHandler) Selesai(w http.ResponseWriter, r *http.Request) {
	antreanID, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid antrean id", nil)
		return
	}

	admin, _ := middleware.GetUserFromContext(r.Context())

	if err := h.antreanUsecase.Selesai(r.Context(), admin.ID, antreanID); err != nil {
		switch err {
		case usecase.ErrAntreanNotFound:
			response.NotFound(w, "Antrean tidak ditemukan")
		default:
			response.InternalServerError(w, "Failed to complete antrean")
		}
		return
	}

	response.Success(w, http.StatusOK, "Antrean diselesaikan", nil)
}
