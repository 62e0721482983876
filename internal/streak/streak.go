// Package streak implements the daily reading streak rule.
package streak

import "time"

// Data is a reading streak. LastDate is YYYY-MM-DD, empty before the
// first read.
type Data struct {
	Count    int    `json:"count"`
	LastDate string `json:"lastReadDate,omitempty"`
}

// Update records a read at now. A second read on the same calendar day
// changes nothing, a read on the day after LastDate extends the streak,
// and anything else starts a new streak of 1. Days are taken in now's
// location.
func Update(d Data, now time.Time) Data {
	today := now.Format(time.DateOnly)
	if d.LastDate == today {
		return d
	}
	if d.LastDate == yesterday(now) {
		return Data{Count: d.Count + 1, LastDate: today}
	}
	return Data{Count: 1, LastDate: today}
}

// Active reports whether the streak is still alive at now, meaning the last
// read was today or yesterday.
func Active(d Data, now time.Time) bool {
	if d.LastDate == "" || d.Count == 0 {
		return false
	}
	return d.LastDate == now.Format(time.DateOnly) || d.LastDate == yesterday(now)
}

func yesterday(now time.Time) string {
	y, m, day := now.Date()
	return time.Date(y, m, day-1, 12, 0, 0, 0, now.Location()).Format(time.DateOnly)
}
