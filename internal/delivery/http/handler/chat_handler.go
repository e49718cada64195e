package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"puskesmas-frontdesk/internal/converter"
	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/delivery/http/middleware"
	"puskesmas-frontdesk/internal/infrastructure/assistant"
	"puskesmas-frontdesk/internal/usecase"
	"puskesmas-frontdesk/pkg/response"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
	}
}

// ShowChat serves the chat page payload with the current viewer, if any.
func (h *ChatHandler) ShowChat(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetUserFromContext(r.Context())
	response.Success(w, http.StatusOK, "Halaman chat", converter.UserToResponse(viewer))
}

// Chat answers a question from live clinic state. The response body keeps
// the plain {"jawaban": ...} shape the chat page consumes.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	viewer, _ := middleware.GetUserFromContext(r.Context())

	resp, err := h.chatUsecase.Tanya(r.Context(), viewer, req.Pertanyaan)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPertanyaanKosong):
			response.Error(w, http.StatusBadRequest, "Pertanyaan tidak boleh kosong", nil)
		case errors.Is(err, assistant.ErrUpstream):
			response.BadGateway(w, "Asisten sedang tidak tersedia, coba beberapa saat lagi")
		default:
			response.InternalServerError(w, "Failed to answer question")
		}
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
