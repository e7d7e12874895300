package core

import (
	"github.com/go-drift/pocketdash/pkg/errors"
	"github.com/go-drift/pocketdash/pkg/metrics"
)

// requestReconcile re-renders the component after a state change.
//
// At most one pass runs per component. A request that finds a pass in flight
// only raises the pending flag; the running pass loops until the flag stays
// clear. Because each pass reads state live, the final pass always reflects
// the latest mutation, and a burst of mutations produces one notification.
func (b *Base) requestReconcile() {
	if !b.mounted.Load() || b.destroyed.Load() {
		return
	}
	b.pending.Store(true)
	for b.pending.Load() {
		if !b.reconcileMu.TryLock() {
			metrics.Reconciliations.WithLabelValues(metrics.ResultCoalesced).Inc()
			return
		}
		for b.pending.Swap(false) {
			b.reconcileOnce()
		}
		b.reconcileMu.Unlock()
	}
}

// reconcileOnce renders against the last input and notifies the parent if the
// output differs from the cached one. A failed render drops the cache and
// still notifies, so the next render from the driver surfaces the error.
func (b *Base) reconcileOnce() {
	if b.destroyed.Load() {
		return
	}

	b.renderMu.Lock()
	input := b.lastInput
	if input == nil {
		b.renderMu.Unlock()
		return
	}
	out, err := b.paint(input)
	changed := false
	if err != nil {
		b.cache.Clear()
	} else if !b.cache.OutputEquals(out) {
		b.cache.Store(input, out)
		changed = true
	}
	b.renderMu.Unlock()

	switch {
	case err != nil:
		metrics.Reconciliations.WithLabelValues(metrics.ResultFailed).Inc()
		errors.Report(&errors.FrameworkError{
			Op:        "core.Reconcile",
			Kind:      errors.KindRender,
			Component: b.name,
			Err:       err,
		})
		b.notifyParent()
	case changed:
		metrics.Reconciliations.WithLabelValues(metrics.ResultChanged).Inc()
		b.notifyParent()
	default:
		metrics.Reconciliations.WithLabelValues(metrics.ResultUnchanged).Inc()
	}
}
