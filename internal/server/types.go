package server

// Response is the JSON body of an evaluation request. Evaluation failures
// (syntax, arithmetic, timeout) use the same shape, with Error and ErrorKind
// set and Result empty.
type Response struct {
	Expression string `json:"expression"`
	Engine     string `json:"engine"`
	// Result is the canonical "<num/den>" form, or "true"/"false".
	Result   string `json:"result,omitempty"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
	// ErrorKind is the machine-readable category, e.g. "zero_division".
	ErrorKind string `json:"error_kind,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// EvaluateParseError represents a parameter parsing error with HTTP status.
type EvaluateParseError struct {
	Message    string
	StatusCode int
}

func (e EvaluateParseError) Error() string {
	return e.Message
}
