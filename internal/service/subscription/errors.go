package subscription

// ValidationError is a client input defect. Message is safe to return to
// callers verbatim.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation errors, one per distinct input defect.
var (
	ErrMalformedBody  = &ValidationError{Code: "malformed_body", Message: "Invalid JSON format"}
	ErrNotObject      = &ValidationError{Code: "not_an_object", Message: "Request body must be a JSON object"}
	ErrMissingEmail   = &ValidationError{Code: "missing_field", Message: "Missing required field: email"}
	ErrEmailNotString = &ValidationError{Code: "wrong_type", Message: "Email must be a string"}
	ErrInvalidFormat  = &ValidationError{Code: "invalid_format", Message: "Invalid email format"}
	ErrBodyRequired   = &ValidationError{Code: "body_required", Message: "Request body is required"}
)
