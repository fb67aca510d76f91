// Package field wraps the widgets of a SharePoint style list form in typed
// fields. Each catalogued row is described by a Descriptor; the Registry picks
// the concrete variant for its detected kind by probing the control markup.
//
// Every variant implements Field:
//
//	f, err := field.New(desc, field.Env{Doc: doc})
//	if err != nil {
//		return err
//	}
//	if err := f.SetValue("Bravo"); err != nil {
//		return err
//	}
//	f.Hide()
//
// Values come back as string, float64, bool, []string, URLValue or
// DateTimeValue depending on the variant. Failures are *Error values whose
// Kind can be matched with errors.Is against the Err* sentinels.
package field
