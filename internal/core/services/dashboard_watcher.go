package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
)

// dashboardWatcher implements the WatcherSvc interface. It turns record-store
// change notifications into freshly recomputed dashboard summaries and fans
// them out to per-user subscribers.
//
// Events are handled sequentially on the listener goroutine, so a burst of
// changes produces a series of full rebuilds rather than concurrent ones.
// Duplicate notifications are harmless: the rebuild is idempotent.
type dashboardWatcher struct {
	BaseService
	listener  portsrepo.ChangeListener
	summaries portssvc.SummarySvc

	mu   sync.Mutex
	subs map[string]map[chan domain.DashboardSummary]struct{}
}

// NewDashboardWatcher creates a new dashboard watcher.
func NewDashboardWatcher(listener portsrepo.ChangeListener, summaries portssvc.SummarySvc) portssvc.WatcherSvc {
	return &dashboardWatcher{
		listener:  listener,
		summaries: summaries,
		subs:      make(map[string]map[chan domain.DashboardSummary]struct{}),
	}
}

var _ portssvc.WatcherSvc = (*dashboardWatcher)(nil)

func (w *dashboardWatcher) Run(ctx context.Context) error {
	return w.listener.Listen(ctx, func(ev portsrepo.ChangeEvent) {
		w.handleEvent(ctx, ev)
	})
}

func (w *dashboardWatcher) handleEvent(ctx context.Context, ev portsrepo.ChangeEvent) {
	if ev.UserID == "" {
		return
	}
	if !w.hasSubscribers(ev.UserID) {
		// Nobody is watching this user's dashboard; skip the rebuild.
		return
	}

	summary, err := w.summaries.Summary(ctx, ev.UserID, time.Now())
	if err != nil {
		w.LogError(ctx, err, "Failed to rebuild summary after change event",
			slog.String("table", ev.Table),
			slog.String("op", ev.Operation))
		return
	}
	w.broadcast(ev.UserID, *summary)
}

func (w *dashboardWatcher) hasSubscribers(userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs[userID]) > 0
}

// broadcast delivers without blocking: a subscriber that is not draining its
// channel misses intermediate snapshots, never stalls the listener.
func (w *dashboardWatcher) broadcast(userID string, summary domain.DashboardSummary) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs[userID] {
		select {
		case ch <- summary:
		default:
		}
	}
}

func (w *dashboardWatcher) Subscribe(userID string) (<-chan domain.DashboardSummary, func()) {
	ch := make(chan domain.DashboardSummary, 4)

	w.mu.Lock()
	if w.subs[userID] == nil {
		w.subs[userID] = make(map[chan domain.DashboardSummary]struct{})
	}
	w.subs[userID][ch] = struct{}{}
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if set, ok := w.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(w.subs, userID)
			}
		}
	}
	return ch, cancel
}
