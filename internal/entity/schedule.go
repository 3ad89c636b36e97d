package entity

import "fmt"

// Weekday numbering follows the BusinessHours table: Sunday=0 .. Saturday=6.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// TimeOfDay is a wall-clock time with second precision, the value stored in
// the OpenTime/CloseTime columns.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// String renders the 24-hour SQL TIME literal form, e.g. "09:00:00".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	if t.Minute != other.Minute {
		return t.Minute < other.Minute
	}
	return t.Second < other.Second
}

// DaySchedule is the normalized opening record for one calendar day.
// Invariant: Closed implies both times are nil; otherwise both are set and
// Open precedes Close (the open-24-hours case normalizes to 00:00:00-23:59:59).
type DaySchedule struct {
	Day    Weekday    `json:"day_of_week"`
	Open   *TimeOfDay `json:"open_time,omitempty"`
	Close  *TimeOfDay `json:"close_time,omitempty"`
	Closed bool       `json:"is_closed"`
}
