package view

// Equal reports whether both views resolve to the same text. Views built over
// different ropes or with different chains are equal when their text is.
func (v View) Equal(other View) (bool, error) {
	a, err := v.Resolve()
	if err != nil {
		return false, err
	}
	b, err := other.Resolve()
	if err != nil {
		return false, err
	}
	return a.Equals(b), nil
}

// EqualString reports whether the view resolves to exactly s.
func (v View) EqualString(s string) (bool, error) {
	a, err := v.Resolve()
	if err != nil {
		return false, err
	}
	return a.EqualString(s), nil
}

// Equal compares v against a view or a string by content. Any other target,
// or a chain that fails to resolve, is not equal.
func Equal(v View, other any) bool {
	var eq bool
	var err error

	switch o := other.(type) {
	case View:
		eq, err = v.Equal(o)
	case *View:
		if o == nil {
			return false
		}
		eq, err = v.Equal(*o)
	case string:
		eq, err = v.EqualString(o)
	default:
		return false
	}
	return err == nil && eq
}
