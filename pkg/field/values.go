package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// toString accepts the scalar shapes callers typically hold for a text value.
func toString(name string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return formatNumber(t), nil
	case float32:
		return formatNumber(float64(t)), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", nil
	default:
		return "", unsupportedValue(name, v, "string")
	}
}

func toStrings(name string, v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, err := toString(name, item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := toString(name, v)
		if err != nil {
			return nil, unsupportedValue(name, v, "string or []string")
		}
		return []string{s}, nil
	}
}

func toBool(name string, v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1", "on":
			return true, nil
		case "false", "no", "n", "0", "off", "":
			return false, nil
		}
		return false, validationError(name, "not a yes/no value", t)
	case int:
		return t != 0, nil
	default:
		return false, unsupportedValue(name, v, "bool")
	}
}

// lookupKey splits a lookup value into an item id or a display text.
func lookupKey(name string, v any) (id int, text string, byID bool, err error) {
	switch t := v.(type) {
	case int:
		return t, "", true, nil
	case int64:
		return int(t), "", true, nil
	case float64:
		if t == float64(int(t)) {
			return int(t), "", true, nil
		}
	case string:
		return 0, t, false, nil
	}
	return 0, "", false, unsupportedValue(name, v, "int or string")
}

func toURLValue(name string, v any) (URLValue, error) {
	switch t := v.(type) {
	case URLValue:
		return t, nil
	case *URLValue:
		if t != nil {
			return *t, nil
		}
	case string:
		return URLValue{URL: t, Description: t}, nil
	case []string:
		if len(t) == 2 {
			return URLValue{URL: t[0], Description: t[1]}, nil
		}
	case []any:
		if len(t) == 2 {
			url, err1 := toString(name, t[0])
			desc, err2 := toString(name, t[1])
			if err1 == nil && err2 == nil {
				return URLValue{URL: url, Description: desc}, nil
			}
		}
	case map[string]any:
		url, err1 := toString(name, t["url"])
		desc, err2 := toString(name, t["description"])
		if err1 == nil && err2 == nil {
			return URLValue{URL: url, Description: desc}, nil
		}
	}
	return URLValue{}, unsupportedValue(name, v, "URLValue or [url, description]")
}

func toDateTime(name string, v any) (DateTimeValue, error) {
	var (
		dt  DateTimeValue
		err error
	)
	switch t := v.(type) {
	case DateTimeValue:
		dt, err = t, t.Validate()
	case *DateTimeValue:
		if t == nil {
			return DateTimeValue{}, unsupportedValue(name, v, "DateTimeValue or date string")
		}
		dt, err = *t, t.Validate()
	case string:
		if strings.TrimSpace(t) == "" {
			return DateTimeValue{}, nil
		}
		dt, err = ParseDateTimeValue(t)
	default:
		return DateTimeValue{}, unsupportedValue(name, v, "DateTimeValue or date string")
	}
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			fe.Field = name
		}
		return DateTimeValue{}, err
	}
	return dt, nil
}
