package config

import (
	"testing"
	"time"
)

func TestCityCoordinates(t *testing.T) {
	tests := []struct {
		city    string
		wantLat float64
		wantOK  bool
	}{
		{"Austin", 30.2672, true},
		{"austin, tx", 30.2672, true},
		{"  Chicago  ", 41.8781, true},
		{"Nowhereville", 30.2672, false},
	}

	for _, tt := range tests {
		got, ok := CityCoordinates(tt.city)
		if ok != tt.wantOK {
			t.Errorf("CityCoordinates(%q) ok = %v, want %v", tt.city, ok, tt.wantOK)
		}
		if got.Lat != tt.wantLat {
			t.Errorf("CityCoordinates(%q) lat = %v, want %v", tt.city, got.Lat, tt.wantLat)
		}
	}
}

func TestNormalizeCity(t *testing.T) {
	if got := NormalizeCity("  New York "); got != "new york" {
		t.Errorf("NormalizeCity() = %q, want %q", got, "new york")
	}
}

func TestWeekendDates(t *testing.T) {
	// Tuesday morning.
	tuesday := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		weekend   string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"this", tuesday, "2026-09-03", "2026-09-05"},
		{"next", tuesday, "2026-09-10", "2026-09-12"},
		{"two-weeks", tuesday, "2026-09-17", "2026-09-19"},
		// Thursday afternoon rolls "this" to the following week.
		{"this", time.Date(2026, 9, 3, 13, 0, 0, 0, time.UTC), "2026-09-10", "2026-09-12"},
		// Thursday morning still counts as this weekend.
		{"this", time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC), "2026-09-03", "2026-09-05"},
	}

	for _, tt := range tests {
		start, end := WeekendDates(tt.weekend, tt.now)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("WeekendDates(%q, %s) = (%s, %s), want (%s, %s)",
				tt.weekend, tt.now.Format("2006-01-02"), start, end, tt.wantStart, tt.wantEnd)
		}
	}
}
