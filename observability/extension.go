// Package observability provides a hook extension that records engine
// metrics through OpenTelemetry.
package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/fanout"
	"github.com/xraph/fanout/hook"
)

// meterName is the instrumentation scope name for fanout metrics.
const meterName = "github.com/xraph/fanout"

// Compile-time interface checks.
var (
	_ hook.Extension            = (*MetricsExtension)(nil)
	_ hook.RecordProduced       = (*MetricsExtension)(nil)
	_ hook.ProduceRejected      = (*MetricsExtension)(nil)
	_ hook.RecordConsumed       = (*MetricsExtension)(nil)
	_ hook.ConsumerRegistered   = (*MetricsExtension)(nil)
	_ hook.ConsumerUnregistered = (*MetricsExtension)(nil)
)

// MetricsExtension records engine lifecycle metrics. Register it as a
// hook extension to track produce/consume rates, rejection causes,
// consume wait times and the number of live consumers.
//
// Instruments:
//   - fanout.records.produced (Int64Counter): appended records,
//     with attributes: queue_id, type
//   - fanout.produce.rejected (Int64Counter): rejected produce calls,
//     with attributes: queue_id, reason
//   - fanout.records.consumed (Int64Counter): successful reads,
//     with attribute: queue_id
//   - fanout.consume.wait (Float64Histogram): time spent inside a
//     consume call in seconds, with attribute: queue_id
//   - fanout.consumers.active (Int64UpDownCounter): live consumers
type MetricsExtension struct {
	produced  metric.Int64Counter
	rejected  metric.Int64Counter
	consumed  metric.Int64Counter
	wait      metric.Float64Histogram
	consumers metric.Int64UpDownCounter
}

// NewMetricsExtension creates a MetricsExtension using the global OTel
// MeterProvider. If no provider is configured, noop instruments are used
// and the extension becomes a pass-through.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithMeter(otel.Meter(meterName))
}

// NewMetricsExtensionWithMeter creates a MetricsExtension with the
// provided meter. This variant allows injecting a specific MeterProvider
// for testing.
func NewMetricsExtensionWithMeter(meter metric.Meter) *MetricsExtension {
	// Instruments are created once here. On error the OTel API returns
	// noop instruments, so the extension degrades gracefully.
	produced, _ := meter.Int64Counter(
		"fanout.records.produced",
		metric.WithDescription("Records appended to queues"),
		metric.WithUnit("{record}"),
	)
	rejected, _ := meter.Int64Counter(
		"fanout.produce.rejected",
		metric.WithDescription("Rejected produce calls"),
		metric.WithUnit("{call}"),
	)
	consumed, _ := meter.Int64Counter(
		"fanout.records.consumed",
		metric.WithDescription("Records read by consumers"),
		metric.WithUnit("{record}"),
	)
	wait, _ := meter.Float64Histogram(
		"fanout.consume.wait",
		metric.WithDescription("Time spent inside a consume call"),
		metric.WithUnit("s"),
	)
	consumers, _ := meter.Int64UpDownCounter(
		"fanout.consumers.active",
		metric.WithDescription("Currently registered consumers"),
		metric.WithUnit("{consumer}"),
	)

	return &MetricsExtension{
		produced:  produced,
		rejected:  rejected,
		consumed:  consumed,
		wait:      wait,
		consumers: consumers,
	}
}

// Name implements hook.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnRecordProduced implements hook.RecordProduced.
func (m *MetricsExtension) OnRecordProduced(queueID int64, typeName string) error {
	m.produced.Add(context.Background(), 1, metric.WithAttributes(
		attribute.Int64("queue_id", queueID),
		attribute.String("type", typeName),
	))
	return nil
}

// OnProduceRejected implements hook.ProduceRejected.
func (m *MetricsExtension) OnProduceRejected(queueID int64, cause error) error {
	m.rejected.Add(context.Background(), 1, metric.WithAttributes(
		attribute.Int64("queue_id", queueID),
		attribute.String("reason", rejectionReason(cause)),
	))
	return nil
}

// OnRecordConsumed implements hook.RecordConsumed.
func (m *MetricsExtension) OnRecordConsumed(queueID int64, _ uint32, waited time.Duration) error {
	attrs := metric.WithAttributes(attribute.Int64("queue_id", queueID))
	m.consumed.Add(context.Background(), 1, attrs)
	m.wait.Record(context.Background(), waited.Seconds(), attrs)
	return nil
}

// OnConsumerRegistered implements hook.ConsumerRegistered.
func (m *MetricsExtension) OnConsumerRegistered(_ int64, _ uint32) error {
	m.consumers.Add(context.Background(), 1)
	return nil
}

// OnConsumerUnregistered implements hook.ConsumerUnregistered.
func (m *MetricsExtension) OnConsumerUnregistered(_ uint32) error {
	m.consumers.Add(context.Background(), -1)
	return nil
}

// rejectionReason maps a produce error to a low-cardinality attribute value.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, fanout.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, fanout.ErrQueueFull):
		return "queue_full"
	case errors.Is(err, fanout.ErrRateLimited):
		return "rate_limited"
	default:
		return "other"
	}
}
