package workers

import (
	"context"
	"sync"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/logger"
)

const directorySyncWorkerName = "directory_sync"

// Refresher reloads a cached view of the store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// DirectorySyncWorker refreshes the directory after business changes.
//
// It subscribes with a buffer of one, so bursts of changes collapse into
// a single pending refresh. Every change published after Start is followed
// by at least one refresh that starts after it.
type DirectorySyncWorker struct {
	bus       *events.Bus
	directory Refresher

	sub  *events.Subscription
	done chan struct{}
	once sync.Once

	// refreshed is signalled after each refresh; tests use it to wait.
	refreshed chan struct{}
}

func NewDirectorySyncWorker(bus *events.Bus, directory Refresher) *DirectorySyncWorker {
	return &DirectorySyncWorker{
		bus:       bus,
		directory: directory,
		done:      make(chan struct{}),
		refreshed: make(chan struct{}, 1),
	}
}

// Start subscribes synchronously, then consumes in the background until
// ctx ends or Stop is called.
func (w *DirectorySyncWorker) Start(ctx context.Context) {
	w.sub = w.bus.Subscribe(directorySyncWorkerName, 1, events.EntityBusiness)
	go w.run(ctx)
}

func (w *DirectorySyncWorker) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.sub.Close()
			logger.Info("Directory sync worker stopped")
			return
		case _, ok := <-w.sub.C:
			if !ok {
				logger.Info("Directory sync worker stopped")
				return
			}
			err := w.directory.Refresh(ctx)
			logger.WorkerLog(directorySyncWorkerName, "refresh", err)
			select {
			case w.refreshed <- struct{}{}:
			default:
			}
		}
	}
}

// Stop ends the subscription and waits for the loop to exit.
func (w *DirectorySyncWorker) Stop() {
	w.once.Do(func() {
		if w.sub != nil {
			w.sub.Close()
		}
	})
	if w.sub != nil {
		<-w.done
	}
}

// Refreshed is signalled (coalesced) after every refresh.
func (w *DirectorySyncWorker) Refreshed() <-chan struct{} {
	return w.refreshed
}
