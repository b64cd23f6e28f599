package pricing

import (
	"testing"
	"time"
)

func TestPickupDates(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC) // a Monday

	dates := PickupDates(now)
	if len(dates) != BookingWindowDays {
		t.Fatalf("PickupDates returned %d days, want %d", len(dates), BookingWindowDays)
	}
	if dates[0].FullDate != "2025-03-10" {
		t.Errorf("first day = %s, want 2025-03-10", dates[0].FullDate)
	}
	if dates[0].Day != "Mon" {
		t.Errorf("first weekday = %s, want Mon", dates[0].Day)
	}
	if dates[6].FullDate != "2025-03-16" {
		t.Errorf("last day = %s, want 2025-03-16", dates[6].FullDate)
	}
	if dates[3].Date != 13 {
		t.Errorf("fourth day of month = %d, want 13", dates[3].Date)
	}
}

func TestPickupDatesCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 29, 9, 0, 0, 0, time.UTC)

	dates := PickupDates(now)
	if dates[6].FullDate != "2025-02-04" {
		t.Errorf("last day = %s, want 2025-02-04", dates[6].FullDate)
	}
}

func TestValidPickupDate(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"today", "2025-03-10", true},
		{"last day of window", "2025-03-16", true},
		{"past window", "2025-03-17", false},
		{"yesterday", "2025-03-09", false},
		{"garbage", "not-a-date", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPickupDate(tt.date, now); got != tt.want {
				t.Errorf("ValidPickupDate(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}
