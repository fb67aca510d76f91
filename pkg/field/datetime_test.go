package field

import (
	"strconv"
	"testing"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/host"
)

func hourOptions(stringValues bool) string {
	out := ""
	for h := 0; h < 24; h++ {
		label, _ := HourToString(h)
		value := label
		if !stringValues {
			value = strconv.Itoa(h)
		}
		out += `<option value="` + value + `">` + label + `</option>`
	}
	return out
}

func minuteOptions() string {
	out := ""
	for m := 0; m < 60; m += 5 {
		v := strconv.Itoa(m)
		if m < 10 {
			v = "0" + v
		}
		out += `<option value="` + v + `">` + v + `</option>`
	}
	return out
}

func dateTimeRow(stringHours bool) string {
	return row("Due", "SPFieldDateTime", `<span><table><tr>
<td class="ms-dtinput"><input id="due_Date" type="text" value="" maxlength="45"/></td>
<td class="ms-dttimeinput"><select id="due_DateHours">`+hourOptions(stringHours)+`</select><select id="due_DateMinutes">`+minuteOptions()+`</select></td>
</tr></table></span>`)
}

func TestDateTimeFieldRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name        string
		stringHours bool
		wantHour    string
		wantFormat  HourFormat
	}{
		{name: "numeric hours", stringHours: false, wantHour: "13", wantFormat: HourNumber},
		{name: "string hours", stringHours: true, wantHour: "1 PM", wantFormat: HourString},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fx := build(t, dateTimeRow(tc.stringHours), host.Host{})
			dt := fx.field.(*DateTimeField)
			if dt.HourFormat != tc.wantFormat {
				t.Fatalf("expected hour format %v, got %v", tc.wantFormat, dt.HourFormat)
			}

			if got := mustValue(t, dt); got != (DateTimeValue{}) {
				t.Fatalf("expected unset date for an empty box, got %+v", got)
			}

			want, err := NewDateTime(2014, 4, 2, 13, "05")
			if err != nil {
				t.Fatalf("value: %v", err)
			}
			mustSet(t, dt, want)
			if got := dom.Val(dt.DateTextbox); got != "04/02/2014" {
				t.Fatalf("date box = %q", got)
			}
			if got := dom.Val(dt.HourDropdown); got != tc.wantHour {
				t.Fatalf("hour dropdown = %q, want %q", got, tc.wantHour)
			}
			if got := mustValue(t, dt); got != want {
				t.Fatalf("round trip failed: got %+v want %+v", got, want)
			}

			if err := dt.MakeReadOnly(); err != nil {
				t.Fatalf("read-only: %v", err)
			}
			if got := overlayHTML(t, dt); got != "04/02/2014 1:05PM" {
				t.Fatalf("overlay = %q", got)
			}
		})
	}
}

func TestDateTimeFieldDateOnly(t *testing.T) {
	fx := build(t, row("Born", "SPFieldDateTime", `<span><input type="text" value="12/31/1999"/></span>`), host.Host{})
	dt := fx.field.(*DateTimeField)

	if !dt.DateOnly() {
		t.Fatalf("expected date only field")
	}
	if got := mustValue(t, dt); got != NewDate(1999, 12, 31) {
		t.Fatalf("unexpected value %+v", got)
	}
	mustSet(t, dt, "1/2/2003")
	if got := mustValue(t, dt); got != NewDate(2003, 1, 2) {
		t.Fatalf("unexpected value %+v", got)
	}
	expectKind(t, dt.SetValue("yesterday"), ErrValidation)
	expectKind(t, dt.SetValue(3.5), ErrUnsupportedValue)
}

func TestDateTimeFieldRejectsInvalidLiteralValues(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value any
	}{
		{name: "minute off step", value: DateTimeValue{Year: 2015, Month: 5, Day: 6, DateSet: true, TimeSet: true, Hour: 13, Minute: "07"}},
		{name: "hour out of range", value: &DateTimeValue{Year: 2015, Month: 5, Day: 6, DateSet: true, TimeSet: true, Hour: 25, Minute: "00"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fx := build(t, dateTimeRow(false), host.Host{})
			dt := fx.field.(*DateTimeField)

			err := dt.SetValue(tc.value)
			expectKind(t, err, ErrValidation)
			if fe, ok := err.(*Error); !ok || fe.Field != "Due" {
				t.Fatalf("expected the field name on the error, got %#v", err)
			}
			if got := dom.Val(dt.DateTextbox); got != "" {
				t.Fatalf("date box changed to %q", got)
			}
			if got := dom.Val(dt.HourDropdown); got != "0" {
				t.Fatalf("hour dropdown changed to %q", got)
			}
		})
	}
}
