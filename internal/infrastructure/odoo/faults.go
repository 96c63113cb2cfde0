package odoo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kolo/xmlrpc"

	"github.com/erp/odoo-facade/internal/domain/integration"
)

// XML-RPC fault codes emitted by /xmlrpc/2/.
const (
	FaultCodeApplicationError = 1
	FaultCodeWarning          = 2
	FaultCodeAccessDenied     = 3
	FaultCodeAccessError      = 4
)

const missingRecordText = "does not exist or has been deleted"

var (
	faultTextPattern  = regexp.MustCompile(`(?s)^Fault\((-?\d+)\): (.*)$`)
	exceptionLinePatt = regexp.MustCompile(`^([\w.]+): (.*)$`)
)

// Fault is an XML-RPC fault returned by the remote service.
type Fault struct {
	Code   int
	String string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("Fault(%d): %s", f.Code, f.String)
}

// parseFault extracts an XML-RPC fault from err. Faults arrive as
// xmlrpc.FaultError values, or as their text once something has flattened
// the error.
func parseFault(err error) (*Fault, bool) {
	if err == nil {
		return nil, false
	}

	var fe xmlrpc.FaultError
	if errors.As(err, &fe) {
		return &Fault{Code: fe.Code, String: fe.String}, true
	}
	var fp *xmlrpc.FaultError
	if errors.As(err, &fp) && fp != nil {
		return &Fault{Code: fp.Code, String: fp.String}, true
	}
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}

	m := faultTextPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return nil, false
	}
	code, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return nil, false
	}
	return &Fault{Code: code, String: m[2]}, true
}

// translateFault maps a remote fault onto the facade's fault taxonomy.
// Tracebacks are reduced to their final exception line.
func translateFault(f *Fault, model, method string) *integration.RemoteFault {
	rf := &integration.RemoteFault{
		Code:   f.Code,
		Model:  model,
		Method: method,
	}

	switch f.Code {
	case FaultCodeAccessDenied:
		rf.Category = "AccessDenied"
		rf.Message = firstLine(f.String, "Access Denied")
	case FaultCodeAccessError:
		rf.Category = "AccessError"
		rf.Message = firstLine(f.String, "Access Error")
	case FaultCodeWarning:
		rf.Category = "UserError"
		rf.Message = strings.TrimSpace(f.String)
		if strings.Contains(rf.Message, missingRecordText) {
			rf.Category = "MissingError"
		}
	default:
		rf.Category, rf.Message = parseTraceback(f.String)
	}

	rf.Kind = kindOf(rf.Category, rf.Message)
	return rf
}

// parseTraceback returns the exception class and message of the last
// exception line of a formatted Python traceback.
func parseTraceback(text string) (category, message string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if last == "" {
			last = line
		}
		if m := exceptionLinePatt.FindStringSubmatch(line); m != nil {
			name := m[1]
			if dot := strings.LastIndex(name, "."); dot >= 0 {
				name = name[dot+1:]
			}
			return name, strings.TrimSpace(m[2])
		}
	}
	if last == "" {
		last = "remote application error"
	}
	return "ApplicationError", last
}

func kindOf(category, message string) integration.FaultKind {
	switch category {
	case "AccessDenied":
		return integration.FaultKindAuthentication
	case "MissingError":
		return integration.FaultKindNotFound
	case "UserError", "ValidationError", "RedirectWarning", "Warning":
		if strings.Contains(message, missingRecordText) {
			return integration.FaultKindNotFound
		}
		return integration.FaultKindValidation
	case "AccessError":
		return integration.FaultKindAccess
	}
	if strings.Contains(message, "AccessDenied") {
		return integration.FaultKindAuthentication
	}
	if strings.Contains(message, missingRecordText) {
		return integration.FaultKindNotFound
	}
	return integration.FaultKindRemote
}

func firstLine(s, fallback string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return fallback
	}
	return s
}
