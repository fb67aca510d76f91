package field

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hourPattern   = regexp.MustCompile(`^([1-9]|10|11|12) (AM|PM)$`)
	minutePattern = regexp.MustCompile(`^[0-5][05]$`)
	shortDate     = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{1,4})\s*$`)
	dateTimeText  = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{1,4})(?:\s+(\d{1,2}):(\d{2})\s*(AM|PM))?\s*$`)
)

// DateTimeValue is the value of a date/time field. The date parts are unset
// as a group; the time is optional and, when present, always carries both
// hour and minute.
type DateTimeValue struct {
	Year  int
	Month int
	Day   int

	// DateSet is false for an empty or unparseable date box.
	DateSet bool
	// TimeSet reports whether Hour and Minute are meaningful.
	TimeSet bool
	// Hour is 0-23.
	Hour int
	// Minute is one of "00", "05", ..., "55".
	Minute string
}

// NewDate builds a date without a time component.
func NewDate(year, month, day int) DateTimeValue {
	return DateTimeValue{Year: year, Month: month, Day: day, DateSet: true}
}

// NewDateTime builds a date with a time. hour must be 0-23 and minute one of
// the five minute steps.
func NewDateTime(year, month, day, hour int, minute string) (DateTimeValue, error) {
	v := NewDate(year, month, day)
	if hour < 0 || hour > 23 {
		return DateTimeValue{}, validationError("", "hour must be between 0 and 23", hour)
	}
	if !ValidMinute(minute) {
		return DateTimeValue{}, validationError("", `minute must be formatted like "00", "05" or "35"`, minute)
	}
	v.TimeSet = true
	v.Hour = hour
	v.Minute = minute
	return v, nil
}

// NewDateTimeHour is NewDateTime with the hour given as "1 AM" ... "12 PM".
func NewDateTimeHour(year, month, day int, hour, minute string) (DateTimeValue, error) {
	h, err := HourToInt(hour)
	if err != nil {
		return DateTimeValue{}, err
	}
	return NewDateTime(year, month, day, h, minute)
}

// Validate checks the time part of a value built without NewDateTime: hour
// must be 0-23 and minute one of the five minute steps. Values without a time
// are always valid.
func (v DateTimeValue) Validate() error {
	if !v.TimeSet {
		return nil
	}
	if v.Hour < 0 || v.Hour > 23 {
		return validationError("", "hour must be between 0 and 23", v.Hour)
	}
	if !ValidMinute(v.Minute) {
		return validationError("", `minute must be formatted like "00", "05" or "35"`, v.Minute)
	}
	return nil
}

// ValidHour reports whether s is an hour string such as "1 PM" or "12 AM".
func ValidHour(s string) bool {
	return hourPattern.MatchString(s)
}

// ValidMinute reports whether s is one of "00", "05", ..., "55".
func ValidMinute(s string) bool {
	return minutePattern.MatchString(s)
}

// HourToString renders a 0-23 hour the way the time dropdown labels it.
func HourToString(hour int) (string, error) {
	if hour < 0 || hour > 23 {
		return "", validationError("", "hour must be between 0 and 23", hour)
	}
	switch {
	case hour == 0:
		return "12 AM", nil
	case hour == 12:
		return "12 PM", nil
	case hour > 12:
		return strconv.Itoa(hour-12) + " PM", nil
	default:
		return strconv.Itoa(hour) + " AM", nil
	}
}

// HourToInt is the inverse of HourToString.
func HourToInt(s string) (int, error) {
	if !ValidHour(s) {
		return 0, validationError("", `hour must be formatted like "1 PM" or "12 AM"`, s)
	}
	parts := strings.SplitN(s, " ", 2)
	h, _ := strconv.Atoi(parts[0])
	if h == 12 {
		h = 0
	}
	if parts[1] == "PM" {
		h += 12
	}
	return h, nil
}

// HourString returns the hour in "H AM/PM" form, "12 AM" when no time is set.
func (v DateTimeValue) HourString() string {
	if !v.TimeSet {
		return "12 AM"
	}
	s, err := HourToString(v.Hour)
	if err != nil {
		return ""
	}
	return s
}

// ShortDateString renders MM/DD/YYYY, or "" when the date is unset.
func (v DateTimeValue) ShortDateString() string {
	if !v.DateSet {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%02d", v.Month, v.Day, v.Year)
}

// String renders the short date followed by the time, e.g.
// "04/02/2014 1:05PM".
func (v DateTimeValue) String() string {
	s := v.ShortDateString()
	if !v.TimeSet || !ValidMinute(v.Minute) {
		return s
	}
	hour := v.HourString()
	if hour == "" {
		return s
	}
	number, suffix, _ := strings.Cut(hour, " ")
	return s + " " + number + ":" + v.Minute + suffix
}

// IsZero reports whether neither date nor time is set.
func (v DateTimeValue) IsZero() bool {
	return !v.DateSet && !v.TimeSet
}

// ParseShortDate reads "M/D/YYYY". ok is false for anything else, including
// the empty string.
func ParseShortDate(s string) (DateTimeValue, bool) {
	m := shortDate.FindStringSubmatch(s)
	if m == nil {
		return DateTimeValue{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return NewDate(year, month, day), true
}

// ParseDateTimeValue reads the String form back: "MM/DD/YYYY" optionally
// followed by " H:MMAM".
func ParseDateTimeValue(s string) (DateTimeValue, error) {
	m := dateTimeText.FindStringSubmatch(s)
	if m == nil {
		return DateTimeValue{}, validationError("", "date must be formatted like 04/02/2014 or 04/02/2014 1:05PM", s)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if m[4] == "" {
		return NewDate(year, month, day), nil
	}
	hour, err := HourToInt(strings.TrimLeft(m[4], "0") + " " + m[6])
	if err != nil {
		return DateTimeValue{}, err
	}
	return NewDateTime(year, month, day, hour, m[5])
}
