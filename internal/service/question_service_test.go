package service

import (
	"testing"
	"time"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestStreakFromDates(t *testing.T) {
	now := day(t, "2026-08-30 15:00")

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{
			name:  "no questions sent",
			dates: nil,
			want:  0,
		},
		{
			name:  "sent today only",
			dates: []string{"2026-08-30 09:00"},
			want:  1,
		},
		{
			name:  "three consecutive days ending today",
			dates: []string{"2026-08-30 09:00", "2026-08-29 14:00", "2026-08-28 19:00"},
			want:  3,
		},
		{
			name:  "streak survives when today is still pending",
			dates: []string{"2026-08-29 09:00", "2026-08-28 09:00"},
			want:  2,
		},
		{
			name:  "gap breaks the streak",
			dates: []string{"2026-08-30 09:00", "2026-08-28 09:00", "2026-08-27 09:00"},
			want:  1,
		},
		{
			name:  "old questions only",
			dates: []string{"2026-08-20 09:00", "2026-08-19 09:00"},
			want:  0,
		},
		{
			name:  "multiple sends on one day count once",
			dates: []string{"2026-08-30 09:00", "2026-08-30 19:00", "2026-08-29 09:00"},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dates []time.Time
			for _, d := range tt.dates {
				dates = append(dates, day(t, d))
			}
			if got := streakFromDates(dates, now); got != tt.want {
				t.Errorf("streakFromDates() = %d, want %d", got, tt.want)
			}
		})
	}
}
