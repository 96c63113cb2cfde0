package integration

import (
	"context"
	"time"
)

// ServerStatus reports whether the facade can reach and authenticate against
// the remote service. It is a report, never an error.
type ServerStatus struct {
	Connected     bool      `json:"connected"`
	UID           int64     `json:"uid,omitempty"`
	ServerVersion string    `json:"server_version,omitempty"`
	Database      string    `json:"database"`
	Endpoint      string    `json:"endpoint"`
	Message       string    `json:"message,omitempty"`
	Error         string    `json:"error,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}

// StatusProvider probes the remote service.
type StatusProvider interface {
	Status(ctx context.Context) ServerStatus
}
