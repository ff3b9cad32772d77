package apperr

// FieldErrors collects every invalid field before failing, so callers see
// the whole list at once.
type FieldErrors []FieldError

func (f *FieldErrors) Add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

func (f FieldErrors) Has(field string) bool {
	for _, e := range f {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when nothing was collected.
func (f FieldErrors) Err(op string) error {
	if len(f) == 0 {
		return nil
	}
	return &Error{
		Kind:    KindValidation,
		Op:      op,
		Message: "validation failed",
		Fields:  append([]FieldError(nil), f...),
	}
}
