package pricing

import "time"

// BookingWindowDays is how far ahead a pickup can be scheduled,
// counting today.
const BookingWindowDays = 7

// PickupSlots is the fixed enumeration of pickup time windows.
var PickupSlots = []string{"7am-10am", "10am-1pm", "1pm-4pm", "4pm-7pm"}

// PickupDate is one selectable day in the booking window.
type PickupDate struct {
	Date     int    `json:"date"` // day of month
	Day      string `json:"day"`  // short weekday name
	FullDate string `json:"fullDate"`
}

// PickupDates returns the next BookingWindowDays calendar days starting
// at now, in the shape the booking form renders.
func PickupDates(now time.Time) []PickupDate {
	dates := make([]PickupDate, 0, BookingWindowDays)
	for i := 0; i < BookingWindowDays; i++ {
		d := now.AddDate(0, 0, i)
		dates = append(dates, PickupDate{
			Date:     d.Day(),
			Day:      d.Format("Mon"),
			FullDate: d.Format("2006-01-02"),
		})
	}
	return dates
}

// ValidPickupDate reports whether date (ISO form, 2006-01-02) falls
// inside the booking window relative to now.
func ValidPickupDate(date string, now time.Time) bool {
	for _, d := range PickupDates(now) {
		if d.FullDate == date {
			return true
		}
	}
	return false
}
