package odoo

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"github.com/kolo/xmlrpc"
)

// Caller performs one XML-RPC method call against a service endpoint.
// Implementations return *Fault for XML-RPC faults and *TransportError for
// everything else.
type Caller interface {
	Call(ctx context.Context, service, method string, args ...any) (any, error)
}

// TransportError is a failure to obtain an XML-RPC response at all:
// connection refused, TLS, HTTP status, malformed body or timeout.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("odoo transport %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// XMLRPCCaller is the Caller speaking XML-RPC over HTTP.
type XMLRPCCaller struct {
	config *Config
	client *http.Client
}

// NewXMLRPCCaller creates a caller for the configured instance.
func NewXMLRPCCaller(config *Config) (*XMLRPCCaller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = config.Timeout()
	if config.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed test instances
	}

	return &XMLRPCCaller{
		config: config,
		client: &http.Client{Transport: transport},
	}, nil
}

// Call invokes method on service. args are sent as the positional params of
// the call. The request is bound to ctx and to the configured timeout.
func (c *XMLRPCCaller) Call(ctx context.Context, service, method string, args ...any) (any, error) {
	endpoint := c.config.Endpoint(service)

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout())
	defer cancel()

	payload, err := xmlrpc.EncodeMethodCall(method, args...)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	result := xmlrpc.Response(body)
	if err := result.Err(); err != nil {
		if fault, ok := parseFault(err); ok {
			return nil, fault
		}
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	var reply any
	if err := result.Unmarshal(&reply); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	return reply, nil
}
