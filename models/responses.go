package models

// ErrorEnvelope is the JSON body the server writes when it ends a request on
// its own: unknown paths, failed guards and relay errors.
//
//	{"error":404,"message":"Path not found."}
type ErrorEnvelope struct {
	// Error repeats the HTTP status code.
	Error int `json:"error"`

	// Message is a short human-readable reason.
	Message string `json:"message"`
}

// NewErrorEnvelope builds an [ErrorEnvelope].
func NewErrorEnvelope(code int, message string) ErrorEnvelope {
	return ErrorEnvelope{Error: code, Message: message}
}
