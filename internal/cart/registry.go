// internal/cart/registry.go
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/storage"
)

// Registry owns one Engine per browsing session. Engines are created and
// rehydrated on first use and evicted after going idle; an evicted cart is
// rebuilt from its snapshot on the next request.
type Registry struct {
	mu      sync.Mutex
	engines map[string]*Engine
	store   storage.SnapshotStore
	log     logrus.FieldLogger
	opts    []Option
}

func NewRegistry(store storage.SnapshotStore, log logrus.FieldLogger, opts ...Option) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		engines: make(map[string]*Engine),
		store:   store,
		log:     log,
		opts:    append([]Option{WithLogger(log)}, opts...),
	}
}

// Get returns the session's engine. Rehydration happens under the registry
// lock so two concurrent first requests cannot load the snapshot twice.
func (r *Registry) Get(ctx context.Context, sessionID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[sessionID]; ok {
		return e
	}

	e := NewEngine(r.store, KeyFor(sessionID), r.opts...)
	e.Rehydrate(ctx)
	r.engines[sessionID] = e
	return e
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}

// Sweep evicts engines idle for longer than maxIdle and reports how many went.
// An engine with a snapshot still being written stays until the next sweep so
// its replacement cannot rehydrate stale data.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.engines {
		if time.Since(e.idleSince()) > maxIdle && !e.writePending() {
			delete(r.engines, id)
			evicted++
		}
	}
	return evicted
}

// Flush waits for every live engine's pending snapshot, for graceful shutdown.
func (r *Registry) Flush(ctx context.Context) error {
	r.mu.Lock()
	engines := make([]*Engine, 0, len(r.engines))
	for _, e := range r.engines {
		engines = append(engines, e)
	}
	r.mu.Unlock()

	for _, e := range engines {
		if err := e.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunJanitor sweeps every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				r.log.WithField("evicted", n).Debug("Evicted idle carts")
			}
		}
	}
}
