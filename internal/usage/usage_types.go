package usage

import "time"

// Persisted keys. The names match what the browser build of the tool kept in
// localStorage so exported state stays readable.
const (
	KeyCount = "scansToday"
	KeyDate  = "lastScanDate"
)

// DayLayout formats the calendar day stored next to the count.
const DayLayout = "2006-01-02"

// DailyCounter is the number of successful analyses on Date.
type DailyCounter struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// Day returns the calendar-day string for t in t's location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}
