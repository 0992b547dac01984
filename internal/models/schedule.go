package models

import (
	"fmt"
	"strings"
)

// Weekday is a day of the week, Monday=0 through Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of the seven canonical weekdays.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ParseWeekday accepts full names ("tuesday") or three-letter
// abbreviations ("tue"), case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if in == name || (len(in) == 3 && in == name[:3]) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// RecurrenceSpec is one fully-resolved schedule instance: the Nth
// occurrence of a weekday in each month, at a fixed hour.
//
// Week is 1-based ("Nth weekday of the month", 1-5), not an ISO
// calendar week. Timezone is an IANA zone name; empty means the
// remote scheduler's default.
type RecurrenceSpec struct {
	Week     int     `json:"week"`
	Day      Weekday `json:"day"`
	Hour     int     `json:"hour"`
	Timezone string  `json:"timezone,omitempty"`
}
