package odoo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/integration"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
	"github.com/erp/odoo-facade/internal/infrastructure/telemetry"
)

// Session is an authenticated identity on the remote service.
type Session struct {
	UID             int64
	AuthenticatedAt time.Time
}

// SessionManager owns the cached session. Concurrent requests share the
// cached value read-only; (re-)authentication is serialized.
type SessionManager struct {
	caller  Caller
	config  *Config
	metrics *telemetry.RemoteCallMetrics
	now     func() time.Time

	mu      sync.RWMutex
	session *Session
}

// NewSessionManager creates a session manager. metrics may be nil.
func NewSessionManager(caller Caller, config *Config, metrics *telemetry.RemoteCallMetrics) *SessionManager {
	return &SessionManager{
		caller:  caller,
		config:  config,
		metrics: metrics,
		now:     time.Now,
	}
}

// Acquire authenticates and replaces the cached session.
func (m *SessionManager) Acquire(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticateLocked(ctx)
}

// Current returns the cached session, authenticating when there is none.
func (m *SessionManager) Current(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	s := m.session
	m.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return m.session, nil
	}
	return m.authenticateLocked(ctx)
}

// Invalidate drops the cached session if it still belongs to uid. A session
// re-acquired by a concurrent request is kept.
func (m *SessionManager) Invalidate(ctx context.Context, uid int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.UID != uid {
		return
	}
	m.session = nil
	m.metrics.RecordInvalidation(ctx)
	logger.L(ctx).Info("Remote session invalidated", zap.Int64("uid", uid))
}

func (m *SessionManager) authenticateLocked(ctx context.Context) (*Session, error) {
	log := logger.L(ctx)

	reply, err := m.caller.Call(ctx, ServiceCommon, "authenticate",
		m.config.Database, m.config.Username, m.config.Password, map[string]any{})
	if err != nil {
		m.session = nil
		var fault *Fault
		if errors.As(err, &fault) {
			rf := translateFault(fault, "", "authenticate")
			m.metrics.RecordAuthentication(ctx, telemetry.OutcomeFault)
			log.Warn("Authentication fault", zap.String("category", rf.Category), zap.String("message", rf.Message))
			return nil, fmt.Errorf("%w: %w",
				shared.NewDomainError(shared.CodeAuthentication, "authentication failed: "+rf.Message), rf)
		}
		m.metrics.RecordAuthentication(ctx, telemetry.OutcomeAuth)
		log.Warn("Remote service unreachable", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errUnreachable(), err)
	}

	uid, ok := asInt64(reply)
	if !ok || uid <= 0 {
		m.session = nil
		m.metrics.RecordAuthentication(ctx, telemetry.OutcomeAuth)
		log.Warn("Authentication rejected",
			zap.String("database", m.config.Database),
			zap.String("username", m.config.Username),
		)
		return nil, shared.NewDomainError(shared.CodeAuthentication,
			fmt.Sprintf("authentication rejected for user %q on database %q", m.config.Username, m.config.Database))
	}

	m.session = &Session{UID: uid, AuthenticatedAt: m.now()}
	m.metrics.RecordAuthentication(ctx, telemetry.OutcomeSuccess)
	log.Info("Authenticated against remote service", zap.Int64("uid", uid), zap.String("database", m.config.Database))
	return m.session, nil
}

// Status re-authenticates and asks the remote service for its version. It
// never fails; problems are reported through Connected and Error.
func (m *SessionManager) Status(ctx context.Context) integration.ServerStatus {
	status := integration.ServerStatus{
		Database:  m.config.Database,
		Endpoint:  m.config.URL,
		CheckedAt: m.now(),
	}

	session, err := m.Acquire(ctx)
	if err != nil {
		status.Error = publicMessage(err)
		return status
	}
	status.UID = session.UID

	reply, err := m.caller.Call(ctx, ServiceCommon, "version")
	if err != nil {
		if fault, ok := parseFault(err); ok {
			status.Error = translateFault(fault, "", "version").Message
		} else {
			status.Error = errUnreachable().Message
		}
		return status
	}

	status.ServerVersion = serverVersion(reply)
	status.Connected = true
	status.Message = fmt.Sprintf("user %d connected: Odoo version %s is waiting for requests on %s.",
		session.UID, status.ServerVersion, m.config.Database)
	return status
}

func serverVersion(reply any) string {
	info, ok := reply.(map[string]any)
	if !ok {
		return "unknown"
	}
	if v, ok := info["server_version"].(string); ok && v != "" {
		return v
	}
	return "unknown"
}

func errUnreachable() *shared.DomainError {
	return shared.NewDomainError(shared.CodeAuthentication, "remote service unreachable")
}

// publicMessage returns the message of the outermost domain error in err,
// never the raw transport or fault text.
func publicMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return errUnreachable().Message
}
