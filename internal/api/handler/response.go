package handler

// Envelope is the canonical response shape shared by every endpoint,
// success and error alike.
type Envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success builds a success envelope.
func Success(code int, message string, data any) Envelope {
	return Envelope{Status: "success", Code: code, Message: message, Data: data}
}

// Failure builds an error envelope.
func Failure(code int, message string) Envelope {
	return Envelope{Status: "error", Code: code, Message: message, Data: nil}
}
