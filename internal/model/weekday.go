package model

import "time"

// Weekday keys a caregiver's recurring availability template. Values double
// as the serialized map keys in availability snapshots.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Weekdays lists all seven days in display order (week starts on Monday).
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Numeric day-of-week convention is 0=Sunday..6=Saturday, matching
// time.Weekday. Both directions are spelled out so a misfiled conflict
// check cannot hide behind arithmetic.
var weekdayByNumber = map[int]Weekday{
	0: Sunday,
	1: Monday,
	2: Tuesday,
	3: Wednesday,
	4: Thursday,
	5: Friday,
	6: Saturday,
}

var numberByWeekday = map[Weekday]int{
	Sunday:    0,
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
}

var weekdayLabels = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// WeekdayOf returns the weekday key for a calendar date. Total over any
// valid time.Time.
func WeekdayOf(t time.Time) Weekday {
	return weekdayByNumber[int(t.Weekday())]
}

// WeekdayFromNumber maps 0=Sunday..6=Saturday to a weekday key.
func WeekdayFromNumber(n int) (Weekday, bool) {
	d, ok := weekdayByNumber[n]
	return d, ok
}

// Number returns the 0=Sunday..6=Saturday index for the weekday.
func (d Weekday) Number() int {
	return numberByWeekday[d]
}

// Label returns the human-readable day name, e.g. "Monday".
func (d Weekday) Label() string {
	if label, ok := weekdayLabels[d]; ok {
		return label
	}
	return string(d)
}

// Valid reports whether d is one of the seven known keys.
func (d Weekday) Valid() bool {
	_, ok := numberByWeekday[d]
	return ok
}
