package converter

import (
	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/domain/repository"
)

// AntreanToResponse converts an Antrean entity to its DTO.
func AntreanToResponse(antrean *entity.Antrean) *dto.AntreanResponse {
	if antrean == nil {
		return nil
	}

	return &dto.AntreanResponse{
		ID:           antrean.ID,
		PoliID:       antrean.PoliID,
		PasienID:     antrean.PasienID,
		WaktuDaftar:  antrean.WaktuDaftar,
		Status:       string(antrean.Status),
		NomorAntrean: antrean.NomorAntrean,
	}
}

// QueueToResponses converts the joined admin queue listing.
func QueueToResponses(entries []repository.AntreanWithPasien) []dto.QueueItemResponse {
	responses := make([]dto.QueueItemResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.QueueItemResponse{
			ID:           entry.ID,
			NomorAntrean: entry.NomorAntrean,
			Username:     entry.Username,
			Status:       string(entry.Status),
			WaktuDaftar:  entry.WaktuDaftar,
		}
	}
	return responses
}
