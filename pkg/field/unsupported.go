package field

// UnsupportedField stands in for rows whose widget could not be classified.
// Visibility works; every value operation fails with NotImplemented.
type UnsupportedField struct {
	base
}

func newUnsupported(desc *Descriptor, env Env) *UnsupportedField {
	f := &UnsupportedField{base: newBase(desc, env, VariantUnsupported, desc.Controls())}
	f.self = f
	return f
}

func (f *UnsupportedField) fail(op string) error {
	err := &Error{Kind: KindNotImplemented, Field: f.Name(), Op: op, Actual: f.desc.Marker}
	if f.desc.Marker == "" {
		err.Err = &Error{Kind: KindUndetectedFieldType, Field: f.Name(), Message: "no field type marker in the control cell"}
	} else {
		err.Message = "unsupported field type " + f.desc.Marker
	}
	return err
}

func (f *UnsupportedField) Value() (any, error) {
	return nil, f.fail("get")
}

func (f *UnsupportedField) SetValue(any) error {
	return f.fail("set")
}

func (f *UnsupportedField) MakeReadOnly(...ReadOnlyOption) error {
	return f.fail("read-only")
}
