package dto

import "time"

// Request DTOs

// DaftarAntreanRequest is the JSON join-queue body. UserID is accepted for
// wire compatibility but ignored; the session's logged-in user is used.
type DaftarAntreanRequest struct {
	PoliID uint `json:"poli_id" validate:"required,min=1"`
	UserID uint `json:"user_id"`
}

// Response DTOs

type AntreanResponse struct {
	ID           uint      `json:"id"`
	PoliID       uint      `json:"poli_id"`
	PasienID     uint      `json:"pasien_id"`
	WaktuDaftar  time.Time `json:"waktu_daftar"`
	Status       string    `json:"status"`
	NomorAntrean int       `json:"nomor_antrean"`
}

type DaftarAntreanResponse struct {
	Message      string `json:"message"`
	NomorAntrean int    `json:"nomor_antrean"`
}

// QueueItemResponse is one row of the admin queue listing.
type QueueItemResponse struct {
	ID           uint      `json:"id"`
	NomorAntrean int       `json:"nomor_antrean"`
	Username     string    `json:"username"`
	Status       string    `json:"status"`
	WaktuDaftar  time.Time `json:"waktu_daftar"`
}
