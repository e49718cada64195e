package service

import (
	"fmt"
	"time"

	"puskesmas-frontdesk/internal/domain/entity"
)

// StatusSource tells where a poli's displayed doctor status came from.
type StatusSource string

const (
	SourceManual        StatusSource = "manual"
	SourceNoSchedule    StatusSource = "no-schedule"
	SourceWithinHours   StatusSource = "within-hours"
	SourceOutsideHours  StatusSource = "outside-hours"
	SourceBadTimeFormat StatusSource = "bad-time-format"
)

// Availability is the resolved doctor status for a poli. When the schedule's
// time strings cannot be parsed, Active is false, Source is
// SourceBadTimeFormat and Err carries the parse error.
type Availability struct {
	Active bool
	Source StatusSource
	Err    error
}

// ResolveAvailability derives a poli's doctor status.
//
// Order: an admin override always wins, regardless of schedule presence.
// Without a schedule row for today the doctor is inactive. Otherwise the
// HH:MM window is compared against now, inclusive at both ends.
// Never panics; deterministic for fixed inputs and a fixed now.
func ResolveAvailability(poli *entity.Poli, jadwal *entity.JadwalDokter, now time.Time) Availability {
	if poli.DokterOverride {
		return Availability{Active: poli.DokterAktifManual, Source: SourceManual}
	}

	if jadwal == nil {
		return Availability{Active: false, Source: SourceNoSchedule}
	}

	mulai, err := combineClock(now, jadwal.JamMulai)
	if err != nil {
		return Availability{Active: false, Source: SourceBadTimeFormat, Err: err}
	}
	selesai, err := combineClock(now, jadwal.JamSelesai)
	if err != nil {
		return Availability{Active: false, Source: SourceBadTimeFormat, Err: err}
	}

	if !now.Before(mulai) && !now.After(selesai) {
		return Availability{Active: true, Source: SourceWithinHours}
	}
	return Availability{Active: false, Source: SourceOutsideHours}
}

// ScheduleForToday picks the first schedule row whose day label matches
// now's weekday, case-insensitively. First match wins if duplicates exist.
func ScheduleForToday(jadwal []entity.JadwalDokter, now time.Time) *entity.JadwalDokter {
	weekday := now.Weekday().String()
	for i := range jadwal {
		if jadwal[i].MatchesDay(weekday) {
			return &jadwal[i]
		}
	}
	return nil
}

// combineClock parses a 24-hour "HH:MM" string and anchors it to now's date
// in now's location.
func combineClock(now time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
