// internal/cart/engine.go
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/storage"
)

const defaultWriteTimeout = 5 * time.Second

// Engine owns one cart. Every mutation goes through Dispatch, which applies the
// reducer and then hands the new line sequence to a background writer. The
// writer keeps only the latest snapshot and saves them in transition order.
type Engine struct {
	mu       sync.Mutex
	state    State
	key      string
	store    storage.SnapshotStore
	log      logrus.FieldLogger
	timeout  time.Duration
	lastSeen time.Time

	wmu     sync.Mutex
	next    []byte
	dirty   bool
	writing bool
	drained chan struct{}
}

type Option func(*Engine)

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

func NewEngine(store storage.SnapshotStore, key string, opts ...Option) *Engine {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	e := &Engine{
		state:    emptyState(),
		key:      key,
		store:    store,
		log:      logrus.StandardLogger(),
		timeout:  defaultWriteTimeout,
		lastSeen: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithField("cart_key", key)
	return e
}

// Rehydrate seeds the engine from its snapshot. Missing or malformed data
// leaves the cart empty; the failure is logged, never returned.
func (e *Engine) Rehydrate(ctx context.Context) {
	data, err := e.store.Load(ctx, e.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		e.log.WithError(err).Warn("Failed to read cart snapshot, starting empty")
		return
	}

	lines, dropped, err := Decode(data)
	if err != nil {
		e.log.WithError(err).Error("Failed to parse cart snapshot, starting empty")
		return
	}
	if dropped > 0 {
		e.log.WithField("dropped", dropped).Warn("Discarded invalid cart snapshot lines")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Reduce(e.state, Load(lines))
}

func (e *Engine) Dispatch(action Action) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Reduce(e.state, action)
	e.lastSeen = time.Now()
	e.persist()
	return e.snapshot()
}

func (e *Engine) Add(p models.Product) State { return e.Dispatch(Add(p)) }

func (e *Engine) AddN(p models.Product, n int) State { return e.Dispatch(AddN(p, n)) }

func (e *Engine) Remove(id string) State { return e.Dispatch(Remove(id)) }

func (e *Engine) SetQuantity(id string, quantity int) State {
	return e.Dispatch(SetQuantity(id, quantity))
}

func (e *Engine) Clear() State { return e.Dispatch(Clear()) }

func (e *Engine) Load(lines []Line) State { return e.Dispatch(Load(lines)) }

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = time.Now()
	return e.snapshot()
}

func (e *Engine) IsInCart(id string) bool {
	_, ok := e.State().Find(id)
	return ok
}

func (e *Engine) QuantityOf(id string) int {
	l, _ := e.State().Find(id)
	return l.Quantity
}

func (e *Engine) Key() string {
	return e.key
}

func (e *Engine) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

// persist encodes the current lines and queues them for the writer. The
// in-memory state stays authoritative, so a failed write is only logged.
// Caller holds e.mu, which fixes the queue order to the transition order.
func (e *Engine) persist() {
	data, err := Encode(e.state.Lines)
	if err != nil {
		e.log.WithError(err).Error("Failed to encode cart snapshot")
		return
	}

	e.wmu.Lock()
	defer e.wmu.Unlock()

	e.next = data
	e.dirty = true
	if !e.writing {
		e.writing = true
		e.drained = make(chan struct{})
		go e.writeLoop(e.drained)
	}
}

// writeLoop saves queued snapshots until none is left. A snapshot queued while
// a save is running replaces any older one still waiting.
func (e *Engine) writeLoop(drained chan struct{}) {
	defer close(drained)

	for {
		e.wmu.Lock()
		if !e.dirty {
			e.writing = false
			e.wmu.Unlock()
			return
		}
		data := e.next
		e.next, e.dirty = nil, false
		e.wmu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		err := e.store.Save(ctx, e.key, data)
		cancel()
		if err != nil {
			e.log.WithError(err).Warn("Failed to write cart snapshot")
		}
	}
}

// Flush waits until every snapshot queued before the call has been written.
func (e *Engine) Flush(ctx context.Context) error {
	e.wmu.Lock()
	if !e.writing {
		e.wmu.Unlock()
		return nil
	}
	drained := e.drained
	e.wmu.Unlock()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) writePending() bool {
	e.wmu.Lock()
	defer e.wmu.Unlock()
	return e.writing
}

func (e *Engine) snapshot() State {
	return State{
		Lines:     copyLines(e.state.Lines),
		Total:     e.state.Total,
		ItemCount: e.state.ItemCount,
	}
}
