// Package fill walks the fields of a form and asks for a value for each one
// through a prompt driver.
package fill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-spform/internal/prompt"
	"github.com/goliatone/go-spform/pkg/catalog"
	"github.com/goliatone/go-spform/pkg/field"
)

// OtherOption is appended to choice lists that accept a fill-in value.
const OtherOption = "Other..."

// Result lists what a fill run did, by field name.
type Result struct {
	Changed []string
	Skipped []string
}

// Option configures a Filler.
type Option func(*Filler)

// WithLogger routes progress messages to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithHidden includes hidden rows, which are skipped by default.
func WithHidden() Option {
	return func(f *Filler) {
		f.includeHidden = true
	}
}

// Filler prompts for field values.
type Filler struct {
	driver        prompt.Driver
	logger        *zap.Logger
	includeHidden bool
}

// New constructs a Filler around driver.
func New(driver prompt.Driver, options ...Option) *Filler {
	f := &Filler{driver: driver, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fill prompts for every editable field of cat in document order. A value the
// field rejects is reported and the run continues; the returned error joins
// those failures. Prompt errors, including an abort, stop the run.
func (f *Filler) Fill(ctx context.Context, cat *catalog.Catalog) (Result, error) {
	var res Result
	names, err := cat.Names()
	if err != nil {
		return res, err
	}

	var errs []error
	for _, name := range names {
		fld, skip, err := f.editable(cat, name)
		if err != nil {
			errs = append(errs, err)
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if skip {
			res.Skipped = append(res.Skipped, name)
			continue
		}

		changed, err := f.ask(ctx, fld)
		if err != nil {
			var fe *field.Error
			if !errors.As(err, &fe) {
				return res, err
			}
			f.logger.Warn("value rejected", zap.String("field", name), zap.Error(err))
			if infoErr := f.driver.Info(ctx, fmt.Sprintf("%s: %v", name, err)); infoErr != nil {
				return res, infoErr
			}
			errs = append(errs, err)
			continue
		}
		if changed {
			f.logger.Debug("field updated", zap.String("field", name))
			res.Changed = append(res.Changed, name)
		}
	}
	return res, errors.Join(errs...)
}

func (f *Filler) editable(cat *catalog.Catalog, name string) (field.Field, bool, error) {
	if !f.includeHidden {
		visible, err := cat.Visible(name)
		if err != nil {
			return nil, true, err
		}
		if !visible {
			return nil, true, nil
		}
	}
	fld, err := cat.Field(name)
	if err != nil {
		return nil, true, err
	}
	if _, ok := fld.(*field.UnsupportedField); ok {
		f.logger.Info("skipping unsupported field", zap.String("field", name), zap.String("marker", fld.Descriptor().Marker))
		return fld, true, nil
	}
	if ro, ok := fld.(interface{ ReadOnly() bool }); ok && ro.ReadOnly() {
		return fld, true, nil
	}
	return fld, false, nil
}

func message(fld field.Field) string {
	if fld.Descriptor().Required {
		return fld.Name() + " *"
	}
	return fld.Name()
}

func (f *Filler) ask(ctx context.Context, fld field.Field) (bool, error) {
	current, err := fld.Value()
	if err != nil {
		return false, err
	}
	help := fld.Kind().String()

	switch t := fld.(type) {
	case *field.BooleanField:
		was, _ := current.(bool)
		answer, err := f.driver.Confirm(ctx, prompt.ConfirmConfig{Message: message(fld), Default: was, Help: help})
		if err != nil || answer == was {
			return false, err
		}
		return true, t.SetValue(answer)

	case *field.CheckboxChoiceField:
		was, _ := current.([]string)
		return f.checkboxes(ctx, t, was)

	case *field.MultiLookupField:
		was, _ := current.([]string)
		picked, err := f.multi(ctx, fld, t.Options(), was)
		if err != nil || equalStrings(picked, was) {
			return false, err
		}
		if drop := missing(was, picked); len(drop) > 0 {
			if err := t.Remove(drop); err != nil {
				return true, err
			}
		}
		if add := missing(picked, was); len(add) > 0 {
			return true, t.SetValue(add)
		}
		return true, nil

	case *field.URLField:
		was, _ := current.(field.URLValue)
		url, err := f.driver.Input(ctx, prompt.InputConfig{Message: message(fld) + " (address)", Default: was.URL, Help: help})
		if err != nil {
			return false, err
		}
		desc, err := f.driver.Input(ctx, prompt.InputConfig{Message: message(fld) + " (description)", Default: was.Description, Help: help})
		if err != nil {
			return false, err
		}
		next := field.URLValue{URL: url, Description: desc}
		if next == was {
			return false, nil
		}
		return true, t.SetValue(next)

	case *field.DateTimeField:
		was, _ := current.(field.DateTimeValue)
		answer, err := f.driver.Input(ctx, prompt.InputConfig{
			Message:   message(fld),
			Default:   was.String(),
			Help:      "MM/DD/YYYY, optionally followed by H:MM AM/PM",
			Validator: validDateTime,
		})
		if err != nil || answer == was.String() {
			return false, err
		}
		return true, t.SetValue(answer)

	case *field.PlainNoteField, *field.RichNoteField, *field.EnhancedNoteField:
		was, _ := current.(string)
		answer, err := f.driver.TextArea(ctx, prompt.TextAreaConfig{Message: message(fld), Default: was, Help: help})
		if err != nil || answer == was {
			return false, err
		}
		return true, fld.SetValue(answer)

	case field.Optioner:
		return f.choose(ctx, fld, t, current)
	}

	was := stringValue(current)
	answer, err := f.driver.Input(ctx, prompt.InputConfig{Message: message(fld), Default: was, Help: help})
	if err != nil || answer == was {
		return false, err
	}
	return true, fld.SetValue(answer)
}

type fillInChecker interface {
	FillInAllowed() bool
}

func (f *Filler) choose(ctx context.Context, fld field.Field, opts field.Optioner, current any) (bool, error) {
	was := stringValue(current)
	options := opts.Options()
	fillIn := false
	if fc, ok := fld.(fillInChecker); ok && fc.FillInAllowed() {
		fillIn = true
		options = append(append([]string(nil), options...), OtherOption)
	}
	defaultIdx := indexOf(options, was)
	if defaultIdx < 0 && fillIn && was != "" {
		defaultIdx = len(options) - 1
	}

	idx, err := f.driver.Select(ctx, prompt.SelectConfig{
		Message:      message(fld),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         fld.Kind().String(),
	})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(options) {
		return false, nil
	}

	answer := options[idx]
	if fillIn && idx == len(options)-1 {
		answer, err = f.driver.Input(ctx, prompt.InputConfig{Message: message(fld) + " (other)", Default: was})
		if err != nil {
			return false, err
		}
	}
	if answer == was {
		return false, nil
	}
	return true, fld.SetValue(answer)
}

// checkboxes prompts for a checkbox choice. The active fill-in text is
// offered through OtherOption, preselected, so keeping the defaults keeps it.
func (f *Filler) checkboxes(ctx context.Context, fld *field.CheckboxChoiceField, was []string) (bool, error) {
	options := fld.Options()
	wasKnown, wasFillIn := splitFillIn(options, was)
	current := wasKnown
	if fld.FillInAllowed() {
		options = append(append([]string(nil), options...), OtherOption)
		if wasFillIn != "" {
			current = append(append([]string(nil), wasKnown...), OtherOption)
		}
	}

	picked, err := f.multi(ctx, fld, options, current)
	if err != nil {
		return false, err
	}
	pickedKnown := picked
	fillIn := ""
	if fld.FillInAllowed() {
		pickedKnown = missing(picked, []string{OtherOption})
		if len(pickedKnown) != len(picked) {
			fillIn, err = f.driver.Input(ctx, prompt.InputConfig{Message: message(fld) + " (other)", Default: wasFillIn})
			if err != nil {
				return false, err
			}
			fillIn = strings.TrimSpace(fillIn)
		}
	}
	if equalStrings(pickedKnown, wasKnown) && fillIn == wasFillIn {
		return false, nil
	}

	// SetValue only checks boxes, so unchecking happens one value at a time.
	for _, value := range missing(wasKnown, pickedKnown) {
		if err := fld.SetChecked(value, false); err != nil {
			return true, err
		}
	}
	if wasFillIn != "" && fillIn != wasFillIn {
		if err := fld.SetChecked(wasFillIn, false); err != nil {
			return true, err
		}
	}
	add := missing(pickedKnown, wasKnown)
	if fillIn != "" && fillIn != wasFillIn {
		add = append(add, fillIn)
	}
	if len(add) > 0 {
		return true, fld.SetValue(add)
	}
	return true, nil
}

// splitFillIn separates the values that match an option from the one that
// can only be fill-in text.
func splitFillIn(options, values []string) ([]string, string) {
	var known []string
	fillIn := ""
	for _, v := range values {
		if indexOf(options, v) >= 0 {
			known = append(known, v)
			continue
		}
		fillIn = v
	}
	return known, fillIn
}

func (f *Filler) multi(ctx context.Context, fld field.Field, options, current []string) ([]string, error) {
	var defaults []int
	for _, v := range current {
		if idx := indexOf(options, v); idx >= 0 {
			defaults = append(defaults, idx)
		}
	}
	picked, err := f.driver.MultiSelect(ctx, prompt.SelectConfig{
		Message:  message(fld),
		Options:  options,
		Defaults: defaults,
		Help:     fld.Kind().String(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out, nil
}

func validDateTime(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	_, err := field.ParseDateTimeValue(raw)
	return err
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		if seen[v] == 0 {
			return false
		}
		seen[v]--
	}
	return true
}

// missing returns the values of a that are not in b, in a's order.
func missing(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}
	var out []string
	for _, v := range a {
		if _, ok := in[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
