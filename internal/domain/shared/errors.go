package shared

// Error codes shared by the domain and the HTTP error mapping.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidState       = "INVALID_STATE"
	CodeAuthentication     = "AUTHENTICATION_FAILED"
	CodeChannelNotFound    = "CHANNEL_NOT_FOUND"
	CodePreviewUnavailable = "PREVIEW_UNAVAILABLE"
	CodeRemoteFault        = "REMOTE_FAULT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so a
// specific error such as NewDomainError(CodeNotFound, "customer 7 not found")
// matches the ErrNotFound sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput       = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState       = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrAuthentication     = NewDomainError(CodeAuthentication, "Authentication against the ERP service failed")
	ErrChannelNotFound    = NewDomainError(CodeChannelNotFound, "No support channel available")
	ErrPreviewUnavailable = NewDomainError(CodePreviewUnavailable, "Invoice preview is not available")
	ErrRemoteFault        = NewDomainError(CodeRemoteFault, "The ERP service rejected the request")
)

// DetailedError is implemented by errors that carry structured context
// (partial saga progress, fault category) for the error envelope.
type DetailedError interface {
	error
	ErrorDetail() map[string]any
}
