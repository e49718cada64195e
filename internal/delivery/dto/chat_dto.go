package dto

type ChatRequest struct {
	Pertanyaan string `json:"pertanyaan" validate:"required"`
}

type ChatResponse struct {
	Jawaban string `json:"jawaban"`
}
