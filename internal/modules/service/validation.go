package service

// FieldDetail is one field-level validation failure.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail for rules the binding layer
// cannot express (cross-field constraints, enum checks on optional fields).
type ValidationError struct {
	Details []FieldDetail
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Details[0].Field + " " + e.Details[0].Message
}

func (e *ValidationError) add(field, message string) {
	e.Details = append(e.Details, FieldDetail{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Details) == 0 {
		return nil
	}
	return e
}
