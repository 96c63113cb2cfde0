package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Outcome labels for remote calls and lifecycle operations.
const (
	OutcomeSuccess = "success"
	OutcomeFault   = "fault"
	OutcomeAuth    = "auth_error"
	OutcomeInvalid = "invalid"
	OutcomePartial = "partial"
	OutcomeNoop    = "noop"
)

// RemoteCallMetrics instruments calls made to the remote ERP service.
type RemoteCallMetrics struct {
	callsTotal     *Counter
	callDuration   *Histogram
	authTotal      *Counter
	sessionPresent *Gauge
}

// NewRemoteCallMetrics registers the remote call instruments on meter.
func NewRemoteCallMetrics(meter metric.Meter) (*RemoteCallMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &RemoteCallMetrics{}
	var err error

	if m.callsTotal, err = NewCounter(meter,
		"odoo_remote_calls_total",
		"Total number of execute_kw calls made to the ERP service",
		"{calls}",
	); err != nil {
		return nil, err
	}

	if m.callDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "odoo_remote_call_duration_seconds",
		Description: "Duration of execute_kw calls made to the ERP service",
		Unit:        "s",
		Boundaries:  RemoteCallDurationBuckets,
	}); err != nil {
		return nil, err
	}

	if m.authTotal, err = NewCounter(meter,
		"odoo_authentications_total",
		"Total number of authentication attempts against the ERP service",
		"{attempts}",
	); err != nil {
		return nil, err
	}

	if m.sessionPresent, err = NewGauge(meter,
		"odoo_session_active",
		"1 while an authenticated session is cached, 0 otherwise",
		"{session}",
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCall records one remote call. A nil receiver is a no-op.
func (m *RemoteCallMetrics) RecordCall(ctx context.Context, model, method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrRemoteModel.String(model),
		AttrRemoteMethod.String(method),
		AttrOutcome.String(outcome),
	}
	m.callsTotal.Inc(ctx, attrs...)
	m.callDuration.RecordDuration(ctx, d, attrs...)
}

// RecordAuthentication records one authentication attempt and the
// resulting session presence. A nil receiver is a no-op.
func (m *RemoteCallMetrics) RecordAuthentication(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.authTotal.Inc(ctx, AttrOutcome.String(outcome))
	if outcome == OutcomeSuccess {
		m.sessionPresent.Record(ctx, 1)
	} else {
		m.sessionPresent.Record(ctx, 0)
	}
}

// RecordInvalidation records that the cached session was dropped.
func (m *RemoteCallMetrics) RecordInvalidation(ctx context.Context) {
	if m == nil {
		return
	}
	m.sessionPresent.Record(ctx, 0)
}

// LifecycleMetrics instruments the order lifecycle operations.
type LifecycleMetrics struct {
	operationsTotal *Counter
	deliveryStatus  *Counter
	picksValidated  *Counter
}

// NewLifecycleMetrics registers the lifecycle instruments on meter.
func NewLifecycleMetrics(meter metric.Meter) (*LifecycleMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &LifecycleMetrics{}
	var err error

	if m.operationsTotal, err = NewCounter(meter,
		"facade_lifecycle_operations_total",
		"Total number of order lifecycle operations by outcome",
		"{operations}",
	); err != nil {
		return nil, err
	}

	if m.deliveryStatus, err = NewCounter(meter,
		"facade_delivery_status_total",
		"Aggregate delivery statuses reported, by status",
		"{orders}",
	); err != nil {
		return nil, err
	}

	if m.picksValidated, err = NewCounter(meter,
		"facade_pickings_validated_total",
		"Total number of pickings validated",
		"{pickings}",
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOperation records one lifecycle operation. A nil receiver is a no-op.
func (m *LifecycleMetrics) RecordOperation(ctx context.Context, operation, outcome string) {
	if m == nil {
		return
	}
	m.operationsTotal.Inc(ctx, AttrOperation.String(operation), AttrOutcome.String(outcome))
}

// RecordDeliveryStatus records one reported aggregate status.
func (m *LifecycleMetrics) RecordDeliveryStatus(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.deliveryStatus.Inc(ctx, AttrDeliveryState.String(status))
}

// RecordPickingsValidated adds n validated pickings.
func (m *LifecycleMetrics) RecordPickingsValidated(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.picksValidated.Add(ctx, int64(n))
}
