package spform

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-spform/pkg/field"
	"github.com/goliatone/go-spform/pkg/plan"
)

// Apply runs every plan entry against the form in plan order. For each entry
// the value is written first, then the read-only state, then visibility. A
// failing entry does not stop later ones; the returned error joins every
// failure.
func (f *Form) Apply(p plan.Plan) error {
	var errs []error
	for _, entry := range p.Entries {
		if err := f.applyEntry(entry); err != nil {
			errs = append(errs, fmt.Errorf("spform: apply %q: %w", entry.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ApplyFile loads a plan from a file or directory and applies it.
func (f *Form) ApplyFile(path string) error {
	p, err := plan.Load(path)
	if err != nil {
		return err
	}
	return f.Apply(p)
}

func (f *Form) applyEntry(entry plan.Entry) error {
	if entry.HasValue() || entry.ReadOnly != nil {
		fld, err := f.catalog.Field(entry.Name)
		if err != nil {
			return err
		}
		if entry.HasValue() {
			if err := fld.SetValue(entry.Value); err != nil {
				return err
			}
		}
		if entry.ReadOnly != nil {
			if *entry.ReadOnly {
				var opts []field.ReadOnlyOption
				if entry.TextOnly {
					opts = append(opts, field.WithTextOnly())
				}
				if err := fld.MakeReadOnly(opts...); err != nil {
					return err
				}
			} else {
				fld.MakeEditable()
			}
		}
	}
	if entry.Hidden != nil {
		if *entry.Hidden {
			return f.catalog.Hide(entry.Name)
		}
		return f.catalog.Show(entry.Name)
	}
	return nil
}
