package integration

import (
	"fmt"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

// FaultKind classifies a remote fault into the facade's error taxonomy.
type FaultKind string

const (
	FaultKindAuthentication FaultKind = "authentication"
	FaultKindNotFound       FaultKind = "not_found"
	FaultKindValidation     FaultKind = "validation"
	FaultKindAccess         FaultKind = "access"
	FaultKindRemote         FaultKind = "remote"
)

// RemoteFault is a sanitized fault raised by the remote service. It never
// carries the raw traceback: Message is the human-readable part only.
type RemoteFault struct {
	Kind     FaultKind
	Category string // remote exception class, e.g. UserError, MissingError
	Code     int    // XML-RPC fault code
	Message  string
	Model    string
	Method   string
}

func (f *RemoteFault) Error() string {
	if f.Model == "" {
		return fmt.Sprintf("remote %s: %s: %s", f.Method, f.Category, f.Message)
	}
	return fmt.Sprintf("remote %s.%s: %s: %s", f.Model, f.Method, f.Category, f.Message)
}

// Unwrap exposes the fault as a DomainError of the matching code, so callers
// can test it with errors.Is(err, shared.ErrNotFound) and friends.
func (f *RemoteFault) Unwrap() error {
	return shared.NewDomainError(f.Kind.ErrorCode(), f.Message)
}

// ErrorDetail implements shared.DetailedError.
func (f *RemoteFault) ErrorDetail() map[string]any {
	detail := map[string]any{
		"category": f.Category,
		"kind":     string(f.Kind),
	}
	if f.Model != "" {
		detail["model"] = f.Model
	}
	if f.Method != "" {
		detail["method"] = f.Method
	}
	return detail
}

// ErrorCode maps the kind to a shared domain error code.
func (k FaultKind) ErrorCode() string {
	switch k {
	case FaultKindAuthentication:
		return shared.CodeAuthentication
	case FaultKindNotFound:
		return shared.CodeNotFound
	case FaultKindValidation:
		return shared.CodeInvalidState
	default:
		return shared.CodeRemoteFault
	}
}
