// Package fanout provides an in-process, multi-queue broadcast log.
//
// Multiple producers append typed records to integer-keyed queues and any
// number of consumers independently replay every record through private,
// monotonically advancing cursors. Reading never removes a record: a queue
// only shrinks when it is explicitly cleared.
//
// # Quick Start
//
//	eng, err := engine.New(
//	    engine.WithDefaultQueueCapacity(4096),
//	)
//	if err != nil { ... }
//
//	cid := eng.RegisterConsumer(telemetryQueue)
//	if err := engine.Produce(eng, telemetryQueue, Sample{Value: 42}); err != nil { ... }
//	s, err := engine.ConsumeWait[Sample](eng, cid, time.Second)
//
// # Architecture
//
// The root package holds shared configuration and the error taxonomy.
// Subsystems live in their own packages: queue (the per-queue record logs
// with capacity and type binding), consumer (private cursors and latched
// errors), idpool (consumer id recycling), hook (lifecycle extensions),
// observability (OTel metrics) and engine (the façade gluing them
// together).
//
// A queue binds to the type of its first record; later produce or consume
// calls with a different type are rejected without touching the log.
// Consumption is broadcast, not competing: every registered consumer may
// read every record, and a consumer can rewind to the start at any time.
package fanout
