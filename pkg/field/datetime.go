package field

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
)

// HourFormat is how the hour dropdown encodes its option values.
type HourFormat int

const (
	// HourNone means the field is date only.
	HourNone HourFormat = iota
	// HourNumber options carry 0-23.
	HourNumber
	// HourString options carry "12 AM" ... "11 PM".
	HourString
)

// DateTimeField wraps a date box and, when the field includes a time, the
// hour and minute dropdowns.
type DateTimeField struct {
	base
	DateTextbox    *goquery.Selection
	HourDropdown   *goquery.Selection
	MinuteDropdown *goquery.Selection
	HourFormat     HourFormat
}

func newDateTimeField(p Probe) (Field, error) {
	input, err := singleInput(p)
	if err != nil {
		return nil, err
	}
	f := &DateTimeField{
		base:        newBase(p.Desc, p.Env, VariantDateTime, p.Controls),
		DateTextbox: input,
	}
	selects := p.Controls.Find("select")
	if selects.Length() == 2 {
		f.HourDropdown = selects.Eq(0)
		f.MinuteDropdown = selects.Eq(1)
		f.HourFormat = HourNumber
		if strings.Contains(dom.Val(f.HourDropdown), " ") {
			f.HourFormat = HourString
		}
	}
	f.self = f
	return f, nil
}

// DateOnly reports whether the field has no time dropdowns.
func (f *DateTimeField) DateOnly() bool {
	return f.HourFormat == HourNone
}

func (f *DateTimeField) current() (DateTimeValue, error) {
	v, ok := ParseShortDate(dom.Val(f.DateTextbox))
	if !ok || f.DateOnly() {
		return v, nil
	}
	rawHour := dom.Val(f.HourDropdown)
	minute := dom.Val(f.MinuteDropdown)
	var hour int
	var err error
	if f.HourFormat == HourString {
		hour, err = HourToInt(rawHour)
	} else {
		hour, err = strconv.Atoi(rawHour)
		if err != nil {
			err = validationError(f.Name(), "hour dropdown holds a non numeric value", rawHour)
		}
	}
	if err != nil {
		return DateTimeValue{}, err
	}
	dt, err := NewDateTime(v.Year, v.Month, v.Day, hour, minute)
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			fe.Field = f.Name()
		}
		return DateTimeValue{}, err
	}
	return dt, nil
}

// Value returns a DateTimeValue. The date is unset when the box does not hold
// M/D/YYYY; the time is only read when the date is set.
func (f *DateTimeField) Value() (any, error) {
	v, err := f.current()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue accepts a DateTimeValue or its string form. A value without a time
// resets the dropdowns to midnight.
func (f *DateTimeField) SetValue(v any) error {
	dt, err := toDateTime(f.Name(), v)
	if err != nil {
		return err
	}
	if f.DateOnly() {
		dom.SetVal(f.DateTextbox, dt.ShortDateString())
		return f.sync()
	}

	hour := 0
	minute := "00"
	if dt.TimeSet {
		hour, minute = dt.Hour, dt.Minute
	}
	hourValue := strconv.Itoa(hour)
	if f.HourFormat == HourString {
		hourValue, _ = HourToString(hour)
	}
	// Both dropdowns are checked before anything changes.
	if !dom.HasOption(f.HourDropdown, hourValue) {
		return valueNotFound(f.Name(), hourValue)
	}
	if !dom.HasOption(f.MinuteDropdown, minute) {
		return valueNotFound(f.Name(), minute)
	}
	dom.SetVal(f.DateTextbox, dt.ShortDateString())
	dom.SetVal(f.HourDropdown, hourValue)
	dom.SetVal(f.MinuteDropdown, minute)
	return f.sync()
}

func (f *DateTimeField) overlayMarkup() (string, error) {
	v, err := f.current()
	if err != nil {
		return "", err
	}
	return renderText(v.String()), nil
}
