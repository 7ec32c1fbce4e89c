package types

// SuccessEnvelope is the body shape returned by every successful endpoint.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope is the body shape returned by every failed endpoint. Errors
// carries the ordered validation reasons when the failure has them.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// NewSuccess builds the standard success body.
func NewSuccess(message string, data any) SuccessEnvelope {
	return SuccessEnvelope{Success: true, Message: message, Data: data}
}

// NewError builds the standard failure body.
func NewError(message string, reasons []string) ErrorEnvelope {
	return ErrorEnvelope{Success: false, Message: message, Errors: reasons}
}
