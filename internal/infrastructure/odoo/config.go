package odoo

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// XML-RPC services exposed under /xmlrpc/2/.
const (
	ServiceCommon = "common"
	ServiceObject = "object"
)

// DefaultTimeoutSeconds bounds a single remote call when no timeout is configured.
const DefaultTimeoutSeconds = 30

// Config holds the connection settings of the remote Odoo instance.
type Config struct {
	// URL is the base URL of the instance, e.g. https://erp.example.com
	URL      string
	Database string
	Username string
	// Password is the user password or an API key.
	Password string
	// TimeoutSeconds bounds each remote call, including authentication.
	TimeoutSeconds     int
	InsecureSkipVerify bool
	// PaymentJournalID is the journal used to register invoice payments.
	// Zero disables payment registration.
	PaymentJournalID int64
}

// Errors for Odoo configuration
var (
	ErrConfigMissingURL      = errors.New("odoo: url is required")
	ErrConfigInvalidURL      = errors.New("odoo: url must be an absolute http(s) URL")
	ErrConfigMissingDatabase = errors.New("odoo: database is required")
	ErrConfigMissingUsername = errors.New("odoo: username is required")
)

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return ErrConfigMissingURL
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrConfigInvalidURL
	}
	if c.Database == "" {
		return ErrConfigMissingDatabase
	}
	if c.Username == "" {
		return ErrConfigMissingUsername
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return nil
}

// Endpoint returns the XML-RPC endpoint of service.
func (c *Config) Endpoint(service string) string {
	return strings.TrimRight(c.URL, "/") + "/xmlrpc/2/" + service
}

// Timeout returns the per-call timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveURL resolves a path returned by the remote service against the
// configured base URL.
func (c *Config) ResolveURL(ref string) (string, error) {
	base, err := url.Parse(c.URL + "/")
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(r).String(), nil
}
