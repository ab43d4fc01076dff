// Package engine wires the fanout subsystems together: the queue and
// consumer registries, the hook registry and the built-in metrics
// extension. It provides the produce/consume façade of the broadcast
// log.
//
// This package sits above the subsystem packages so that queue and
// consumer can share the root package's error taxonomy without import
// cycles (the root package never imports subpackages).
package engine

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/fanout"
	"github.com/xraph/fanout/consumer"
	"github.com/xraph/fanout/hook"
	"github.com/xraph/fanout/id"
	"github.com/xraph/fanout/idpool"
	"github.com/xraph/fanout/observability"
	"github.com/xraph/fanout/queue"
)

// meterName is the instrumentation scope name for the built-in metrics
// extension when a custom MeterProvider is supplied.
const meterName = "github.com/xraph/fanout"

// Engine is the in-process broadcast log façade. Producers append typed
// records to integer-keyed queues; registered consumers independently
// replay every record through private cursors. All methods are safe for
// concurrent use.
//
// Create one with New. An Engine is an owned instance, not a process
// singleton: independent engines share nothing.
type Engine struct {
	config   fanout.Config
	logger   *slog.Logger
	engineID id.ID

	hooks     *hook.Registry
	queues    *queue.Registry
	consumers *consumer.Registry

	// Captured by options, consumed by New.
	queueConfigs  []queue.Config
	extensions    []hook.Extension
	meterProvider metric.MeterProvider
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) error {
		e.logger = l
		return nil
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg fanout.Config) Option {
	return func(e *Engine) error {
		e.config = cfg
		return nil
	}
}

// WithDefaultQueueCapacity overrides the record capacity assigned to
// queues created without an explicit queue.Config.
func WithDefaultQueueCapacity(n int) Option {
	return func(e *Engine) error {
		e.config.DefaultQueueCapacity = n
		return nil
	}
}

// WithConsumerLimit caps the consumer id space at limit. Mainly useful
// in tests exercising allocator exhaustion.
func WithConsumerLimit(limit uint32) Option {
	return func(e *Engine) error {
		e.config.ConsumerLimit = limit
		return nil
	}
}

// WithQueueConfig registers per-queue capacity and rate-limit
// configurations, applied when the queue entry is created. Queues not
// listed use the engine defaults.
func WithQueueConfig(configs ...queue.Config) Option {
	return func(e *Engine) error {
		e.queueConfigs = append(e.queueConfigs, configs...)
		return nil
	}
}

// WithExtension registers a lifecycle hook extension.
func WithExtension(ext hook.Extension) Option {
	return func(e *Engine) error {
		e.extensions = append(e.extensions, ext)
		return nil
	}
}

// WithMeterProvider sets a custom OTel MeterProvider for the built-in
// metrics extension. If not set, the global otel.GetMeterProvider() is
// used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) error {
		e.meterProvider = mp
		return nil
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		config:   fanout.DefaultConfig(),
		logger:   slog.Default(),
		engineID: id.NewEngineID(),
	}
	for _, opt := range opts {
		if err := opt(eng); err != nil {
			return nil, err
		}
	}

	eng.hooks = hook.NewRegistry(eng.logger)

	// Built-in metrics extension (custom provider or global).
	var metricsExt *observability.MetricsExtension
	if eng.meterProvider != nil {
		metricsExt = observability.NewMetricsExtensionWithMeter(eng.meterProvider.Meter(meterName))
	} else {
		metricsExt = observability.NewMetricsExtension()
	}
	eng.hooks.Register(metricsExt)
	for _, ext := range eng.extensions {
		eng.hooks.Register(ext)
	}

	eng.queues = queue.NewRegistry(eng.config.DefaultQueueCapacity, eng.queueConfigs...)
	eng.consumers = consumer.NewRegistry(eng.config.ConsumerLimit)

	eng.logger.Debug("engine created",
		slog.String("engine_id", eng.engineID.String()),
		slog.Int("default_queue_capacity", eng.config.DefaultQueueCapacity),
	)
	return eng, nil
}

// ID returns the engine's instance identifier.
func (e *Engine) ID() id.ID { return e.engineID }

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Hooks returns the hook registry.
func (e *Engine) Hooks() *hook.Registry { return e.hooks }

// ──────────────────────────────────────────────────
// Consumer lifecycle
// ──────────────────────────────────────────────────

// RegisterConsumer allocates a consumer id bound to queueID with its
// cursor at the start of the queue. It returns 0 when the id space is
// exhausted; 0 is never a valid consumer id. The queue binding is fixed
// for the life of the consumer.
func (e *Engine) RegisterConsumer(queueID int64) uint32 {
	cid := e.consumers.Register(queueID)
	if cid == idpool.Sentinel {
		e.logger.Warn("consumer id space exhausted",
			slog.String("engine_id", e.engineID.String()),
			slog.Int64("queue_id", queueID),
		)
		return idpool.Sentinel
	}

	e.hooks.EmitConsumerRegistered(queueID, cid)
	e.logger.Debug("consumer registered",
		slog.Int64("queue_id", queueID),
		slog.Uint64("consumer_id", uint64(cid)),
	)
	return cid
}

// UnregisterConsumer erases the consumer and recycles its id for future
// registrations. Unknown ids are a no-op.
func (e *Engine) UnregisterConsumer(consumerID uint32) {
	if !e.consumers.Unregister(consumerID) {
		return
	}
	e.hooks.EmitConsumerUnregistered(consumerID)
	e.logger.Debug("consumer unregistered", slog.Uint64("consumer_id", uint64(consumerID)))
}

// ResetConsumer rewinds the consumer's cursor to the start of its queue,
// so the next consume replays the first record again. Unknown ids are a
// no-op.
func (e *Engine) ResetConsumer(consumerID uint32) {
	e.consumers.Reset(consumerID)
}

// LastError returns the error latched by the consumer's most recent
// consume call, nil meaning success, or ErrConsumerNotFound for an
// unknown id.
func (e *Engine) LastError(consumerID uint32) error {
	return e.consumers.LastError(consumerID)
}

// ──────────────────────────────────────────────────
// Queue management
// ──────────────────────────────────────────────────

// SetQueueCapacity creates the queue if absent and resets it to the
// given capacity. This is a destructive reset: existing records and the
// type binding are dropped. Call it before producing.
func (e *Engine) SetQueueCapacity(queueID int64, capacity int) {
	e.queues.SetCapacity(queueID, capacity)
	e.logger.Debug("queue capacity set",
		slog.Int64("queue_id", queueID),
		slog.Int("capacity", capacity),
	)
}

// ClearQueue removes all records and the type binding from the queue.
// Registered consumers keep their cursors; reads report ErrNoData until
// new records arrive.
func (e *Engine) ClearQueue(queueID int64) {
	e.queues.Clear(queueID)
	e.hooks.EmitQueueCleared(queueID)
	e.logger.Debug("queue cleared", slog.Int64("queue_id", queueID))
}

// ClearAllQueues removes every queue entry, including capacities and
// type bindings.
func (e *Engine) ClearAllQueues() {
	e.queues.ClearAll()
	e.hooks.EmitAllQueuesCleared()
	e.logger.Debug("all queues cleared")
}

// QueueLen returns the number of records currently held by the queue, or
// 0 if it does not exist.
func (e *Engine) QueueLen(queueID int64) int {
	return e.queues.Len(queueID)
}
