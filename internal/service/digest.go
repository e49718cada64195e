package service

import (
	"fmt"
	"strings"
	"time"

	"puskesmas-frontdesk/internal/domain/entity"
)

// PoliStatus is one poli's resolved state, ready for the clinic digest.
type PoliStatus struct {
	Nama         string
	Dokter       string
	JamInfo      string
	Availability Availability
	Menunggu     int64
}

// NewPoliStatus resolves a poli against its schedule rows and waiting count.
func NewPoliStatus(poli *entity.Poli, jadwal []entity.JadwalDokter, menunggu int64, now time.Time) PoliStatus {
	today := ScheduleForToday(jadwal, now)

	dokter := "Tidak diketahui"
	jamInfo := "-"
	if today != nil {
		dokter = today.Dokter
		jamInfo = fmt.Sprintf("%s - %s", today.JamMulai, today.JamSelesai)
	}

	return PoliStatus{
		Nama:         poli.Nama,
		Dokter:       dokter,
		JamInfo:      jamInfo,
		Availability: ResolveAvailability(poli, today, now),
		Menunggu:     menunggu,
	}
}

// BuildDigest serializes clinic state into the human-readable status block
// handed to the assistant: a current-time line, a viewer line, then one line
// per poli in storage order.
//
// viewerRole is the logged-in role, or empty for a guest.
func BuildDigest(now time.Time, viewerRole string, rows []PoliStatus) string {
	lines := make([]string, 0, len(rows)+2)

	lines = append(lines, fmt.Sprintf("Waktu saat ini: %s WIB", now.Format("15:04")))

	if viewerRole != "" {
		lines = append(lines, fmt.Sprintf("Status penanya: login sebagai %s", viewerRole))
	} else {
		lines = append(lines, "Status penanya: guest (belum login)")
	}

	for _, row := range rows {
		status := "tidak aktif"
		if row.Availability.Active {
			status = "aktif"
		}
		lines = append(lines, fmt.Sprintf(
			"Poli %s | Dokter: %s | Jam: %s | Status dokter: %s | Sumber status: %s | Antrean menunggu: %d",
			row.Nama, row.Dokter, row.JamInfo, status, row.Availability.Source, row.Menunggu,
		))
	}

	return strings.Join(lines, "\n")
}
