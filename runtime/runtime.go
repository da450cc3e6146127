// Package runtime implements the co-operative scheduling budget a
// compilation threads through its recursive phases (spec §4.15): rather
// than a thread-local cancel flag, Go's per-call `context.Context` is the
// cancellation vehicle (grounded on
// `internal/provisioners/core.go`'s context-threaded `Provision` calls).
package runtime

import "context"

// Budget bounds how many units of work a compilation performs between
// cooperative yields back to the caller's scheduler. A unit is charged
// per loop iteration of a recursive walk (spec §4.15 "default unit = 1
// per loop iteration; WASM multiplies by 4").
type Budget struct {
	limit int
	used  int
	unit  int
}

// NewBudget returns a Budget that yields every limit units, charging
// unit per call to YieldBudget (unit defaults to 1 when 0).
func NewBudget(limit, unit int) *Budget {
	if unit == 0 {
		unit = 1
	}
	return &Budget{limit: limit, unit: unit}
}

// YieldBudget charges one unit and, once limit units have accumulated,
// checks ctx for cancellation and resets the counter — the Go analogue
// of the original's cooperative `yield_budget` hand-back to the host
// scheduler (spec §4.15).
func (b *Budget) YieldBudget(ctx context.Context) error {
	if b.limit <= 0 {
		return ctx.Err()
	}
	b.used += b.unit
	if b.used < b.limit {
		return nil
	}
	b.used = 0
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
