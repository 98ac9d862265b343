// Package world implements the ODRL state world: a per-evaluation context
// owning runtime key-value state, clocks, the sliding-window counters, a
// reference-resolution map, the party/asset/policy registry, and the
// deferred success/failure callback queues (spec.md §3, §5, component G).
package world

import (
	"sync"
	"time"

	"github.com/odrlcore/odrlengine/pkg/odrl/constraint"
	"github.com/odrlcore/odrlengine/pkg/odrl/value"
)

// World is a single evaluation transaction's state. Its lifetime equals
// the evaluation: callers acquire one, evaluate a request against it, and
// commit (discarding or running queued callbacks) before releasing it
// (spec.md §5 "Resources").
type World struct {
	mu sync.RWMutex

	clock func() time.Time

	state            map[string]string
	referredOperand  map[string]constraint.RightOperand
	worldInitialTime int64
	lastExecuteTime  int64
	meteredTime      int64

	windows map[string]*slidingWindow

	successCallbacks []func()
	failureCallbacks []func()

	registry *Registry
}

// slidingWindow is the mutable counter_sequence behind a single timeWindow
// constraint instance, guarded by its own mutex since spec.md §5 allows
// concurrent evaluations of the same constraint to race on evict/append.
type slidingWindow struct {
	mu    sync.Mutex
	queue []int64
}

// New constructs a State World. now defaults to time.Now when nil, and can
// be overridden for deterministic testing (spec.md §9: "the engine itself
// must be usable with a caller-owned world to support deterministic
// testing").
func New(now func() time.Time) *World {
	if now == nil {
		now = time.Now
	}
	initial := now().UnixMilli()
	return &World{
		clock:            now,
		state:            make(map[string]string),
		referredOperand:  make(map[string]constraint.RightOperand),
		worldInitialTime: initial,
		lastExecuteTime:  initial,
		windows:          make(map[string]*slidingWindow),
		registry:         NewRegistry(),
	}
}

// Registry returns the world's party/asset/policy registry.
func (w *World) Registry() *Registry { return w.registry }

// SetState sets a key in the runtime key-value state map, the source for
// every non-special left operand resolution.
func (w *World) SetState(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state[key] = value
}

// SetReferredOperand registers a right-operand definition under an IRI, so
// constraints whose right operand is a Reference to that IRI can resolve
// it (spec.md §3: "referredOperand map (IRI -> right-operand definition)").
func (w *World) SetReferredOperand(iri string, r constraint.RightOperand) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.referredOperand[iri] = r
}

// AddMeteredTime accumulates d into the cumulative meteredTime counter.
func (w *World) AddMeteredTime(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.meteredTime += d.Milliseconds()
}

// Resolve implements constraint.World: non-special left operands resolve
// directly from the state map.
func (w *World) Resolve(left constraint.LeftOperand) (value.Value, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.state[string(left)]
	if !ok {
		return value.Value{}, false
	}
	return value.Scalar(s), true
}

// ResolveReference implements constraint.World: dereferences iri against
// the referredOperand map. A stored reference-to-reference is treated as
// unresolved, since the ownership model (spec.md §9) never chains
// references — each entry is a terminal literal or literal set.
func (w *World) ResolveReference(iri string) (value.Value, bool) {
	w.mu.RLock()
	r, ok := w.referredOperand[iri]
	w.mu.RUnlock()
	if !ok {
		return value.Value{}, false
	}
	switch r.Kind {
	case constraint.RightOperandLiteralSet:
		return value.Set(r.LiteralSet), true
	case constraint.RightOperandLiteral:
		return value.Scalar(r.Literal), true
	default:
		return value.Value{}, false
	}
}

// NowMillis implements constraint.World.
func (w *World) NowMillis() int64 { return w.clock().UnixMilli() }

// WorldInitialTimeMillis implements constraint.World.
func (w *World) WorldInitialTimeMillis() int64 { return w.worldInitialTime }

// LastExecuteTimeMillis implements constraint.World.
func (w *World) LastExecuteTimeMillis() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastExecuteTime
}

// MeteredTimeMillis implements constraint.World.
func (w *World) MeteredTimeMillis() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.meteredTime
}

// WindowRemaining implements constraint.World: calc_slide_window
// (spec.md §4.3). It evicts queue entries older than now-window from the
// head and returns threshold - len(remaining queue), without appending.
func (w *World) WindowRemaining(uid string, window time.Duration, threshold int, now int64) int {
	sw := w.windowFor(uid)
	sw.mu.Lock()
	defer sw.mu.Unlock()

	cutoff := now - window.Milliseconds()
	i := 0
	for i < len(sw.queue) && sw.queue[i] < cutoff {
		i++
	}
	sw.queue = sw.queue[i:]

	return threshold - len(sw.queue)
}

// RecordWindowEvent implements constraint.WindowRecorder: appends now to
// the named window's counter_sequence. Called only from a constraint's
// OnSuccess callback, at decision-commit time.
func (w *World) RecordWindowEvent(uid string, now int64) {
	sw := w.windowFor(uid)
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.queue = append(sw.queue, now)
}

func (w *World) windowFor(uid string) *slidingWindow {
	w.mu.Lock()
	defer w.mu.Unlock()
	sw, ok := w.windows[uid]
	if !ok {
		sw = &slidingWindow{}
		w.windows[uid] = sw
	}
	return sw
}

// OnSuccess implements constraint.World: queues a callback run only if the
// outer evaluation commits as a permit.
func (w *World) OnSuccess(f func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.successCallbacks = append(w.successCallbacks, f)
}

// OnFailure implements constraint.World: queues a callback run only if the
// outer evaluation commits as a deny.
func (w *World) OnFailure(f func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failureCallbacks = append(w.failureCallbacks, f)
}

// Commit runs the queued callbacks for the outcome that actually occurred,
// clears both queues, and advances lastExecuteTime to now (spec.md §4.5
// step 6). permit selects the success queue; !permit selects the failure
// queue.
func (w *World) Commit(permit bool) {
	w.mu.Lock()
	success := w.successCallbacks
	failure := w.failureCallbacks
	w.successCallbacks = nil
	w.failureCallbacks = nil
	w.lastExecuteTime = w.clock().UnixMilli()
	w.mu.Unlock()

	if permit {
		for _, cb := range success {
			cb()
		}
	} else {
		for _, cb := range failure {
			cb()
		}
	}
}
