package odoo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/integration"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
	"github.com/erp/odoo-facade/internal/infrastructure/telemetry"
)

// Gateway is the single path through which repositories reach the remote
// ORM. It attaches the session, translates faults and instruments calls.
type Gateway struct {
	caller   Caller
	sessions *SessionManager
	config   *Config
	metrics  *telemetry.RemoteCallMetrics
}

// NewGateway creates a gateway. metrics may be nil.
func NewGateway(caller Caller, sessions *SessionManager, config *Config, metrics *telemetry.RemoteCallMetrics) *Gateway {
	return &Gateway{
		caller:   caller,
		sessions: sessions,
		config:   config,
		metrics:  metrics,
	}
}

// Config returns the connection configuration.
func (g *Gateway) Config() *Config {
	return g.config
}

// Execute builds req and invokes it.
func (g *Gateway) Execute(ctx context.Context, req Request) (any, error) {
	call, err := req.Build()
	if err != nil {
		return nil, err
	}
	return g.Invoke(ctx, call)
}

// Invoke sends call through execute_kw under the current session.
//
// Faults come back as *integration.RemoteFault. An authentication fault or a
// transport failure drops the session so that the next call re-authenticates;
// the failed call itself is not retried.
func (g *Gateway) Invoke(ctx context.Context, call Call) (any, error) {
	if err := call.Validate(); err != nil {
		g.metrics.RecordCall(ctx, call.Model, call.Method, telemetry.OutcomeInvalid, 0)
		return nil, err
	}

	session, err := g.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "odoo."+call.Model+"."+call.Method,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrRemoteModel, call.Model),
		telemetry.WithAttribute(telemetry.SpanAttrRemoteCall, call.Method),
		telemetry.WithAttribute(telemetry.SpanAttrRemoteUID, session.UID),
	)
	defer span.End()

	log := logger.L(ctx).With(
		zap.String("model", call.Model),
		zap.String("method", call.Method),
	)

	kwargs := call.Kwargs
	if kwargs == nil {
		kwargs = map[string]any{}
	}

	start := time.Now()
	reply, err := g.caller.Call(ctx, ServiceObject, "execute_kw",
		g.config.Database, session.UID, g.config.Password,
		call.Model, call.Method, call.Args, kwargs)
	elapsed := time.Since(start)

	if err == nil {
		g.metrics.RecordCall(ctx, call.Model, call.Method, telemetry.OutcomeSuccess, elapsed)
		telemetry.SetOK(span)
		log.Debug("Remote call completed", zap.Duration("duration", elapsed))
		return reply, nil
	}

	var fault *Fault
	if errors.As(err, &fault) {
		rf := translateFault(fault, call.Model, call.Method)
		telemetry.RecordError(span, rf)

		outcome := telemetry.OutcomeFault
		if rf.Kind == integration.FaultKindAuthentication {
			outcome = telemetry.OutcomeAuth
			g.sessions.Invalidate(ctx, session.UID)
		}
		g.metrics.RecordCall(ctx, call.Model, call.Method, outcome, elapsed)
		log.Debug("Remote call faulted",
			zap.Int("fault_code", rf.Code),
			zap.String("category", rf.Category),
			zap.String("kind", string(rf.Kind)),
			zap.Duration("duration", elapsed),
		)
		return nil, rf
	}

	telemetry.RecordError(span, err)
	g.sessions.Invalidate(ctx, session.UID)
	g.metrics.RecordCall(ctx, call.Model, call.Method, telemetry.OutcomeAuth, elapsed)
	log.Warn("Remote call failed in transport", zap.Error(err), zap.Duration("duration", elapsed))
	return nil, fmt.Errorf("%w: %w", errUnreachable(), err)
}

// SessionUID returns the uid of the current session, authenticating if needed.
func (g *Gateway) SessionUID(ctx context.Context) (int64, error) {
	session, err := g.sessions.Current(ctx)
	if err != nil {
		return 0, err
	}
	return session.UID, nil
}
