package constraint

import (
	"time"

	"github.com/odrlcore/odrlengine/pkg/odrl/value"
)

// World is the subset of the state world (spec.md §3, component G) the
// constraint engine needs: resolution of left operands and references, the
// clocks the five special left operands read from, the per-constraint
// sliding-window counters, and the deferred callback queues committed at
// decision time. pkg/odrl/world.World implements this; it is expressed as
// an interface here so the constraint engine does not import the world
// package (avoiding the cycle world -> evaluator -> constraint -> world).
type World interface {
	// Resolve looks up a non-special left operand directly in the state
	// world's state map.
	Resolve(left LeftOperand) (value.Value, bool)

	// ResolveReference dereferences a right-operand reference IRI against
	// the referredOperand map.
	ResolveReference(iri string) (value.Value, bool)

	// NowMillis is the current wall-clock time, epoch milliseconds.
	NowMillis() int64
	// WorldInitialTimeMillis is when this StateWorld was created.
	WorldInitialTimeMillis() int64
	// LastExecuteTimeMillis is the timestamp of the previous commit.
	LastExecuteTimeMillis() int64
	// MeteredTimeMillis is the cumulative metered-time counter.
	MeteredTimeMillis() int64

	// WindowRemaining evicts stale entries from the named sliding window
	// and returns threshold - len(remaining queue) without appending to it.
	WindowRemaining(uid string, window time.Duration, threshold int, now int64) int

	// OnSuccess registers a callback run only if the outer evaluation
	// (the rule/policy decision this constraint contributed to) commits as
	// a permit; used by timeWindow to append its event only on success.
	OnSuccess(func())
	// OnFailure registers a callback run only if the outer evaluation
	// commits as a deny.
	OnFailure(func())
}

// RecordWindowEvent is called by the world implementation's OnSuccess
// callback (registered by Constraint.Evaluate for timeWindow constraints)
// to append the current timestamp to the named window's counter_sequence.
// Declared here, alongside World, purely as documentation of the contract
// between this package and pkg/odrl/world; the world package provides the
// concrete method.
type WindowRecorder interface {
	RecordWindowEvent(uid string, now int64)
}
