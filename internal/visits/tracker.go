package visits

import (
	"context"

	"go.uber.org/zap"
)

// SessionMarker is the session-scoped key whose presence means the visit
// was already counted in this browser session.
const SessionMarker = "portfolio_visit_counted"

// Session is the browser-session storage the tracker consults.
type Session interface {
	Counted() bool
	// MarkCounted must be safe to call when the marker is already set.
	MarkCounted()
}

// Counter is the remote counting service.
type Counter interface {
	Hit(ctx context.Context) (int64, error)
	Get(ctx context.Context) (int64, error)
}

// Outcome is the result of one mount.
type Outcome struct {
	Count Count
	// Incremented is true when this mount bumped the remote counter.
	Incremented bool
}

// Tracker increments the remote counter at most once per session.
type Tracker struct {
	counter Counter
	log     *zap.Logger
}

func NewTracker(counter Counter, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{counter: counter, log: log}
}

// Mount performs the single counter request for a page load. Failures
// degrade to the error display state and leave the session marker alone.
func (t *Tracker) Mount(ctx context.Context, sess Session) Outcome {
	if sess.Counted() {
		n, err := t.counter.Get(ctx)
		if err != nil {
			t.log.Warn("visit counter read failed", zap.Error(err))
			return Outcome{Count: Failed()}
		}
		return Outcome{Count: Known(n)}
	}

	n, err := t.counter.Hit(ctx)
	if err != nil {
		t.log.Warn("visit counter increment failed", zap.Error(err))
		return Outcome{Count: Failed()}
	}
	sess.MarkCounted()
	return Outcome{Count: Known(n), Incremented: true}
}
