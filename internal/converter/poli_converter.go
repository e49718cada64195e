package converter

import (
	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/service"
)

// PoliToResponse converts a Poli entity plus its resolved availability.
func PoliToResponse(poli *entity.Poli, availability service.Availability) dto.PoliResponse {
	return dto.PoliResponse{
		ID:           poli.ID,
		Nama:         poli.Nama,
		Deskripsi:    poli.Deskripsi,
		DokterAktif:  availability.Active,
		SumberStatus: string(availability.Source),
	}
}

// JadwalToResponse converts a JadwalDokter entity to its DTO.
func JadwalToResponse(jadwal *entity.JadwalDokter) dto.JadwalResponse {
	return dto.JadwalResponse{
		ID:         jadwal.ID,
		Dokter:     jadwal.Dokter,
		Hari:       jadwal.Hari,
		JamMulai:   jadwal.JamMulai,
		JamSelesai: jadwal.JamSelesai,
	}
}

// JadwalsToResponses converts a slice of schedule rows.
func JadwalsToResponses(jadwal []entity.JadwalDokter) []dto.JadwalResponse {
	responses := make([]dto.JadwalResponse, len(jadwal))
	for i := range jadwal {
		responses[i] = JadwalToResponse(&jadwal[i])
	}
	return responses
}
