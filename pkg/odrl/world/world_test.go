package world

import (
	"testing"
	"time"

	"github.com/odrlcore/odrlengine/pkg/odrl/constraint"
)

func TestWorld_SetStateAndResolve(t *testing.T) {
	w := New(nil)
	w.SetState("count", "7")

	v, ok := w.Resolve("count")
	if !ok {
		t.Fatalf("Resolve(count) ok = false, want true")
	}
	if v.AsScalar() != "7" {
		t.Fatalf("Resolve(count) = %q, want 7", v.AsScalar())
	}

	if _, ok := w.Resolve("nonexistent"); ok {
		t.Fatalf("Resolve(nonexistent) ok = true, want false")
	}
}

func TestWorld_ReferredOperand(t *testing.T) {
	w := New(nil)
	w.SetReferredOperand("http://example.com/limit", constraint.Lit("10"))

	v, ok := w.ResolveReference("http://example.com/limit")
	if !ok {
		t.Fatalf("ResolveReference() ok = false, want true")
	}
	if v.AsScalar() != "10" {
		t.Fatalf("ResolveReference() = %q, want 10", v.AsScalar())
	}

	if _, ok := w.ResolveReference("http://example.com/unregistered"); ok {
		t.Fatalf("ResolveReference(unregistered) ok = true, want false")
	}
}

func TestWorld_ReferredOperandSet(t *testing.T) {
	w := New(nil)
	w.SetReferredOperand("http://example.com/set", constraint.LitSet([]string{"a", "b"}))

	v, ok := w.ResolveReference("http://example.com/set")
	if !ok {
		t.Fatalf("ResolveReference() ok = false, want true")
	}
	if !v.IsSet() {
		t.Fatalf("ResolveReference() IsSet() = false, want true")
	}
}

func TestWorld_Clocks(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := New(func() time.Time { return base })

	if w.NowMillis() != base.UnixMilli() {
		t.Errorf("NowMillis() = %d, want %d", w.NowMillis(), base.UnixMilli())
	}
	if w.WorldInitialTimeMillis() != base.UnixMilli() {
		t.Errorf("WorldInitialTimeMillis() = %d, want %d", w.WorldInitialTimeMillis(), base.UnixMilli())
	}
	if w.LastExecuteTimeMillis() != base.UnixMilli() {
		t.Errorf("LastExecuteTimeMillis() = %d, want %d", w.LastExecuteTimeMillis(), base.UnixMilli())
	}
}

func TestWorld_AddMeteredTime(t *testing.T) {
	w := New(nil)
	w.AddMeteredTime(500 * time.Millisecond)
	w.AddMeteredTime(250 * time.Millisecond)
	if w.MeteredTimeMillis() != 750 {
		t.Fatalf("MeteredTimeMillis() = %d, want 750", w.MeteredTimeMillis())
	}
}

func TestWorld_WindowRemaining_EvictsStaleEntries(t *testing.T) {
	w := New(nil)
	now := int64(10_000)
	w.RecordWindowEvent("w1", now-2000)
	w.RecordWindowEvent("w1", now-500)

	// Window of 1 second: only the second event (500ms old) is still live.
	remaining := w.WindowRemaining("w1", time.Second, 2, now)
	if remaining != 1 {
		t.Fatalf("WindowRemaining() = %d, want 1 (one stale entry evicted)", remaining)
	}
}

func TestWorld_CommitRunsOnlyTheMatchingQueue(t *testing.T) {
	w := New(nil)
	var successRan, failureRan bool
	w.OnSuccess(func() { successRan = true })
	w.OnFailure(func() { failureRan = true })

	w.Commit(true)

	if !successRan {
		t.Errorf("success callback did not run on Commit(true)")
	}
	if failureRan {
		t.Errorf("failure callback ran on Commit(true)")
	}
}

func TestWorld_CommitClearsQueuesAfterRunning(t *testing.T) {
	w := New(nil)
	calls := 0
	w.OnSuccess(func() { calls++ })

	w.Commit(true)
	w.Commit(true)

	if calls != 1 {
		t.Fatalf("success callback ran %d times across two commits, want 1 (queue cleared)", calls)
	}
}

func TestWorld_CommitAdvancesLastExecuteTime(t *testing.T) {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := New(func() time.Time { return current })

	current = current.Add(5 * time.Second)
	w.Commit(true)

	if w.LastExecuteTimeMillis() != current.UnixMilli() {
		t.Fatalf("LastExecuteTimeMillis() = %d, want %d after commit", w.LastExecuteTimeMillis(), current.UnixMilli())
	}
}
