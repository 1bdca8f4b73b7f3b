package models

// DraftInput holds the raw, unvalidated form values.
type DraftInput struct {
	Name       string `json:"name"`
	CardNumber string `json:"cardNumber"`
	Limit      string `json:"limit"`
}

// FieldError is the validation message of one input. An empty Message means valid.
type FieldError struct {
	Message string `json:"message"`
	Show    bool   `json:"show"`
}

// FieldErrors keeps one FieldError per form field.
type FieldErrors struct {
	Name       FieldError `json:"name"`
	CardNumber FieldError `json:"cardNumber"`
	Limit      FieldError `json:"limit"`
}

// Valid reports whether no field carries a message.
func (f FieldErrors) Valid() bool {
	return f.Name.Message == "" && f.CardNumber.Message == "" && f.Limit.Message == ""
}

// RequestError is the global, non-field error slot.
type RequestError struct {
	Message string `json:"message"`
}
