package database_test

import (
	"testing"
	"time"

	"github.com/pandarinos/yve/internal/database"
)

func TestWindowStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		window  database.Window
		want    time.Time
		bounded bool
	}{
		{
			name:    "this month starts on the 1st",
			window:  database.WindowThisMonth,
			want:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			bounded: true,
		},
		{
			name:    "last 30 days starts at midnight 30 days back",
			window:  database.WindowLast30Days,
			want:    time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC),
			bounded: true,
		},
		{
			name:    "today starts at midnight",
			window:  database.WindowToday,
			want:    time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			bounded: true,
		},
		{
			name:    "all time has no bound",
			window:  database.WindowAllTime,
			bounded: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, bounded := tt.window.Start(now)
			if bounded != tt.bounded {
				t.Fatalf("bounded = %v, want %v", bounded, tt.bounded)
			}
			if bounded && !start.Equal(tt.want) {
				t.Errorf("start = %v, want %v", start, tt.want)
			}
		})
	}
}

func TestWindowEnd(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		window  database.Window
		want    time.Time
		bounded bool
	}{
		{
			name:    "this month ends at the next month",
			window:  database.WindowThisMonth,
			want:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			bounded: true,
		},
		{
			name:    "today ends at the next midnight",
			window:  database.WindowToday,
			want:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			bounded: true,
		},
		{
			name:    "last 30 days is open above",
			window:  database.WindowLast30Days,
			bounded: false,
		},
		{
			name:    "all time is open above",
			window:  database.WindowAllTime,
			bounded: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			end, bounded := tt.window.End(now)
			if bounded != tt.bounded {
				t.Fatalf("bounded = %v, want %v", bounded, tt.bounded)
			}
			if bounded && !end.Equal(tt.want) {
				t.Errorf("end = %v, want %v", end, tt.want)
			}
		})
	}
}

func TestWindowEndYearRollover(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)

	monthEnd, _ := database.WindowThisMonth.End(now)
	if want := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC); !monthEnd.Equal(want) {
		t.Errorf("month end = %v, want %v", monthEnd, want)
	}
	dayEnd, _ := database.WindowToday.End(now)
	if !dayEnd.Equal(monthEnd) {
		t.Errorf("on the last day of the year, day end %v should equal month end %v", dayEnd, monthEnd)
	}
}

func TestWindowStartMonthRollover(t *testing.T) {
	t.Parallel()

	// First of the month: this-month and today coincide.
	now := time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC)

	monthStart, _ := database.WindowThisMonth.Start(now)
	dayStart, _ := database.WindowToday.Start(now)
	if !monthStart.Equal(dayStart) {
		t.Errorf("on the 1st, month start %v should equal day start %v", monthStart, dayStart)
	}
}

func TestWindowValid(t *testing.T) {
	t.Parallel()

	for w := database.WindowThisMonth; w <= database.WindowAllTime; w++ {
		if !w.Valid() {
			t.Errorf("window %d should be valid", w)
		}
	}
	if database.Window(-1).Valid() {
		t.Error("window -1 should be invalid")
	}
	if database.Window(4).Valid() {
		t.Error("window 4 should be invalid")
	}
}

func TestWindowLabel(t *testing.T) {
	t.Parallel()

	want := map[database.Window]string{
		database.WindowThisMonth:  "Diesen Monat",
		database.WindowLast30Days: "Letzte 30 Tage",
		database.WindowToday:      "Heute",
		database.WindowAllTime:    "Gesamt",
	}
	for w, label := range want {
		if got := w.Label(); got != label {
			t.Errorf("Label(%d) = %q, want %q", w, got, label)
		}
	}
}
