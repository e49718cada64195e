package service

import (
	"testing"
	"time"

	"puskesmas-frontdesk/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-24 is a Monday.
func mondayAt(clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	loc := time.FixedZone("WIB", 7*60*60)
	return time.Date(2026, time.August, 24, t.Hour(), t.Minute(), 0, 0, loc)
}

func TestResolveAvailability_OverrideWins(t *testing.T) {
	jadwal := &entity.JadwalDokter{Hari: "Monday", JamMulai: "09:00", JamSelesai: "12:00"}

	tests := []struct {
		name   string
		manual bool
		now    time.Time
	}{
		{name: "forced active outside hours", manual: true, now: mondayAt("22:00")},
		{name: "forced inactive within hours", manual: false, now: mondayAt("10:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poli := &entity.Poli{Nama: "Umum", DokterOverride: true, DokterAktifManual: tt.manual}

			got := ResolveAvailability(poli, jadwal, tt.now)

			assert.Equal(t, tt.manual, got.Active)
			assert.Equal(t, SourceManual, got.Source)
			assert.NoError(t, got.Err)
		})
	}
}

func TestResolveAvailability_OverrideWinsWithoutSchedule(t *testing.T) {
	poli := &entity.Poli{Nama: "Gigi", DokterOverride: true, DokterAktifManual: true}

	got := ResolveAvailability(poli, nil, mondayAt("03:00"))

	assert.True(t, got.Active)
	assert.Equal(t, SourceManual, got.Source)
}

func TestResolveAvailability_NoSchedule(t *testing.T) {
	poli := &entity.Poli{Nama: "Umum"}

	got := ResolveAvailability(poli, nil, mondayAt("10:00"))

	assert.False(t, got.Active)
	assert.Equal(t, SourceNoSchedule, got.Source)
	assert.NoError(t, got.Err)
}

func TestResolveAvailability_WindowIsInclusive(t *testing.T) {
	poli := &entity.Poli{Nama: "Umum"}
	jadwal := &entity.JadwalDokter{Hari: "Monday", JamMulai: "09:00", JamSelesai: "12:00"}

	tests := []struct {
		clock      string
		wantActive bool
		wantSource StatusSource
	}{
		{clock: "08:59", wantActive: false, wantSource: SourceOutsideHours},
		{clock: "09:00", wantActive: true, wantSource: SourceWithinHours},
		{clock: "10:30", wantActive: true, wantSource: SourceWithinHours},
		{clock: "12:00", wantActive: true, wantSource: SourceWithinHours},
		{clock: "12:01", wantActive: false, wantSource: SourceOutsideHours},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			got := ResolveAvailability(poli, jadwal, mondayAt(tt.clock))

			assert.Equal(t, tt.wantActive, got.Active)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.NoError(t, got.Err)
		})
	}
}

func TestResolveAvailability_BadTimeFormat(t *testing.T) {
	poli := &entity.Poli{Nama: "Umum"}

	tests := []struct {
		name   string
		jadwal *entity.JadwalDokter
	}{
		{name: "bad start", jadwal: &entity.JadwalDokter{Hari: "Monday", JamMulai: "9am", JamSelesai: "12:00"}},
		{name: "bad end", jadwal: &entity.JadwalDokter{Hari: "Monday", JamMulai: "09:00", JamSelesai: "noon"}},
		{name: "empty", jadwal: &entity.JadwalDokter{Hari: "Monday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got := ResolveAvailability(poli, tt.jadwal, mondayAt("10:00"))

				assert.False(t, got.Active)
				assert.Equal(t, SourceBadTimeFormat, got.Source)
				assert.Error(t, got.Err)
			})
		})
	}
}

func TestScheduleForToday(t *testing.T) {
	jadwal := []entity.JadwalDokter{
		{Dokter: "dr. Sari", Hari: "Tuesday", JamMulai: "08:00", JamSelesai: "11:00"},
		{Dokter: "dr. Budi", Hari: "monday", JamMulai: "09:00", JamSelesai: "12:00"},
		{Dokter: "dr. Tini", Hari: "MONDAY", JamMulai: "13:00", JamSelesai: "16:00"},
	}

	got := ScheduleForToday(jadwal, mondayAt("10:00"))

	// Case-insensitive match, first row wins on duplicate days.
	require.NotNil(t, got)
	assert.Equal(t, "dr. Budi", got.Dokter)
}

func TestScheduleForToday_NoMatch(t *testing.T) {
	jadwal := []entity.JadwalDokter{
		{Dokter: "dr. Sari", Hari: "Friday", JamMulai: "08:00", JamSelesai: "11:00"},
	}

	assert.Nil(t, ScheduleForToday(jadwal, mondayAt("10:00")))
	assert.Nil(t, ScheduleForToday(nil, mondayAt("10:00")))
}
