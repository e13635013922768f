// internal/cart/engine_test.go
package cart

import (
	"context"
	"errors"
	"testing"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/storage"
)

var (
	guitar = models.Product{ID: "A", Name: "Guitar Strap", Price: decimal.NewFromInt(20), Category: models.CategoryAccessories, Images: []string{"a"}, InStock: true}
	synth  = models.Product{ID: "B", Name: "Synth Pad", Price: decimal.NewFromInt(90), Category: models.CategoryInstruments, Images: []string{"b"}, InStock: true}
	record = models.Product{ID: "C", Name: "Record", Price: decimal.RequireFromString("34.99"), Category: models.CategoryVinyl, Images: []string{"c"}, InStock: true}
)

type failingStore struct {
	mu      sync.Mutex
	loadErr error
	saveErr error
	saves   int
}

func (f *failingStore) Load(context.Context, string) ([]byte, error) { return nil, f.loadErr }

func (f *failingStore) Save(context.Context, string, []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	return f.saveErr
}

// slowStore blocks its first Save until release is closed.
type slowStore struct {
	*storage.MemoryStore
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	saves int
}

func newSlowStore() *slowStore {
	return &slowStore{
		MemoryStore: storage.NewMemoryStore(),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (s *slowStore) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	s.saves++
	first := s.saves == 1
	s.mu.Unlock()

	if first {
		close(s.started)
		<-s.release
	}
	return s.MemoryStore.Save(ctx, key, data)
}

func assertTotal(t *testing.T, want string, state State) {
	t.Helper()
	assert.Equal(t, want, state.Total.StringFixed(2))
}

func flush(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Flush(ctx))
}

func newTestEngine(t *testing.T) (*Engine, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	logger, _ := test.NewNullLogger()
	return NewEngine(store, KeyFor("test"), WithLogger(logger)), store
}

func TestAddToEmptyCart(t *testing.T) {
	e, _ := newTestEngine(t)

	state := e.Add(guitar)

	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.Lines[0].Quantity)
	assertTotal(t, "20.00", state)
	assert.Equal(t, 1, state.ItemCount)
}

func TestRepeatedAddAccumulatesQuantity(t *testing.T) {
	e, _ := newTestEngine(t)

	for i := 0; i < 5; i++ {
		e.Add(guitar)
	}
	state := e.State()

	require.Len(t, state.Lines, 1)
	assert.Equal(t, 5, state.Lines[0].Quantity)
	assertTotal(t, "100.00", state)
	assert.Equal(t, 5, e.QuantityOf("A"))
}

func TestAddNMatchesRepeatedAdd(t *testing.T) {
	e1, _ := newTestEngine(t)
	e2, _ := newTestEngine(t)

	e1.AddN(record, 3)
	for i := 0; i < 3; i++ {
		e2.Add(record)
	}

	assert.Equal(t, e2.State(), e1.State())
	assertTotal(t, "104.97", e1.State())
}

func TestInsertionOrderPreserved(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Add(synth)
	e.Add(guitar)
	e.Add(synth)

	state := e.State()
	require.Len(t, state.Lines, 2)
	assert.Equal(t, "B", state.Lines[0].Product.ID)
	assert.Equal(t, "A", state.Lines[1].Product.ID)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	e1, _ := newTestEngine(t)
	e2, _ := newTestEngine(t)
	for _, e := range []*Engine{e1, e2} {
		e.Add(guitar)
		e.Add(synth)
	}

	assert.Equal(t, e2.Remove("A"), e1.SetQuantity("A", 0))
	assert.Equal(t, e2.Remove("B"), e1.SetQuantity("B", -3))
}

func TestSetQuantity(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Add(guitar)

	state := e.SetQuantity("A", 4)
	assert.Equal(t, 4, state.ItemCount)
	assertTotal(t, "80.00", state)

	t.Run("absent line is a no-op", func(t *testing.T) {
		before := e.State()
		after := e.SetQuantity("missing", 3)
		assert.Equal(t, before, after)
		assert.False(t, e.IsInCart("missing"))
	})
}

func TestRemoveNonMemberIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Add(guitar)
	e.Add(synth)

	before := e.State()
	after := e.Remove("nope")

	assert.Equal(t, before, after)
	assertTotal(t, "110.00", after)
	assert.Equal(t, 2, after.ItemCount)
}

func TestClear(t *testing.T) {
	e, store := newTestEngine(t)
	e.Add(guitar)

	state := e.Clear()
	assert.True(t, state.IsEmpty())
	assertTotal(t, "0.00", state)
	assert.Equal(t, 0, state.ItemCount)

	flush(t, e)
	data, err := store.Load(context.Background(), KeyFor("test"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestLoadReplacesWholesale(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Add(guitar)

	state := e.Load([]Line{{Product: synth, Quantity: 2}})

	require.Len(t, state.Lines, 1)
	assert.Equal(t, "B", state.Lines[0].Product.ID)
	assertTotal(t, "180.00", state)
	assert.False(t, e.IsInCart("A"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Add(guitar)
	e.AddN(record, 2)
	e.Add(synth)
	e.SetQuantity("A", 3)
	original := e.State()

	data, err := Encode(original.Lines)
	require.NoError(t, err)
	lines, dropped, err := Decode(data)
	require.NoError(t, err)
	assert.Zero(t, dropped)

	restored := Reduce(State{}, Load(lines))
	assert.Equal(t, original, restored)
}

func TestEverySuccessfulTransitionPersists(t *testing.T) {
	store := storage.NewMemoryStore()
	e := NewEngine(store, "k")

	e.Add(guitar)
	e.Add(synth)
	e.Remove("A")
	e.SetQuantity("B", 2)
	flush(t, e)

	data, err := store.Load(context.Background(), "k")
	require.NoError(t, err)
	lines, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, e.State().Lines, lines)
}

func TestSlowStoreDoesNotBlockTransitions(t *testing.T) {
	store := newSlowStore()
	e := NewEngine(store, "k")

	e.Add(guitar)
	select {
	case <-store.started:
	case <-time.After(time.Second):
		t.Fatal("snapshot write never started")
	}

	done := make(chan State)
	go func() {
		e.Add(synth)
		e.AddN(record, 2)
		done <- e.Remove("A")
	}()

	var state State
	select {
	case state = <-done:
	case <-time.After(time.Second):
		t.Fatal("transitions blocked behind the snapshot write")
	}
	assert.Equal(t, 3, state.ItemCount)
	assert.True(t, e.IsInCart("B"))

	close(store.release)
	flush(t, e)

	store.mu.Lock()
	saves := store.saves
	store.mu.Unlock()
	assert.Equal(t, 2, saves, "queued snapshots collapse to the latest")

	data, err := store.Load(context.Background(), "k")
	require.NoError(t, err)
	lines, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, state.Lines, lines)
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	store := &failingStore{saveErr: errors.New("disk full")}
	logger, hook := test.NewNullLogger()
	e := NewEngine(store, "k", WithLogger(logger))

	state := e.Add(guitar)
	flush(t, e)

	assert.Equal(t, 1, state.ItemCount)
	assert.Equal(t, 1, e.QuantityOf("A"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestQuantityLimit(t *testing.T) {
	e, _ := newTestEngine(t)

	t.Run("oversized add is rejected", func(t *testing.T) {
		state := e.AddN(record, 1<<50)
		assert.True(t, state.IsEmpty())
		assertTotal(t, "0.00", state)
	})

	t.Run("add up to the cap then stop", func(t *testing.T) {
		e.AddN(guitar, MaxLineQuantity)
		state := e.Add(guitar)
		assert.Equal(t, MaxLineQuantity, e.QuantityOf("A"))
		assertTotal(t, "1980.00", state)
		assert.False(t, state.CanAdd("A", 1))
		assert.True(t, state.CanAdd("B", MaxLineQuantity))
	})

	t.Run("set quantity above the cap is a no-op", func(t *testing.T) {
		e.SetQuantity("A", 5)
		e.SetQuantity("A", MaxLineQuantity+1)
		assert.Equal(t, 5, e.QuantityOf("A"))
	})

	t.Run("load drops out of range lines", func(t *testing.T) {
		state := e.Load([]Line{{Product: guitar, Quantity: 1000}, {Product: synth, Quantity: 2}})
		require.Len(t, state.Lines, 1)
		assert.Equal(t, "B", state.Lines[0].Product.ID)
	})
}

func TestRehydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("restores saved lines", func(t *testing.T) {
		store := storage.NewMemoryStore()
		first := NewEngine(store, "k")
		first.Add(guitar)
		first.AddN(synth, 2)
		flush(t, first)

		second := NewEngine(store, "k")
		second.Rehydrate(ctx)
		assert.Equal(t, first.State(), second.State())
	})

	t.Run("missing snapshot starts empty", func(t *testing.T) {
		e := NewEngine(storage.NewMemoryStore(), "k")
		e.Rehydrate(ctx)
		assert.True(t, e.State().IsEmpty())
	})

	t.Run("malformed snapshot starts empty and logs", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Save(ctx, "k", []byte("{not json")))
		logger, hook := test.NewNullLogger()

		e := NewEngine(store, "k", WithLogger(logger))
		e.Rehydrate(ctx)

		assert.True(t, e.State().IsEmpty())
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})

	t.Run("read failure starts empty", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		e := NewEngine(&failingStore{loadErr: errors.New("timeout")}, "k", WithLogger(logger))
		e.Rehydrate(ctx)
		assert.True(t, e.State().IsEmpty())
	})

	t.Run("invalid lines are dropped and duplicates merged", func(t *testing.T) {
		store := storage.NewMemoryStore()
		payload := `[
			{"product":{"id":"A","price":20},"quantity":1},
			{"product":{"id":"B","price":90},"quantity":0},
			{"product":{"id":"A","price":20},"quantity":2},
			{"product":{"id":"B","price":90},"quantity":500},
			{"product":{"id":""},"quantity":1}
		]`
		require.NoError(t, store.Save(ctx, "k", []byte(payload)))
		logger, _ := test.NewNullLogger()

		e := NewEngine(store, "k", WithLogger(logger))
		e.Rehydrate(ctx)

		state := e.State()
		require.Len(t, state.Lines, 1)
		assert.Equal(t, 3, state.Lines[0].Quantity)
		assertTotal(t, "60.00", state)
	})
}

func TestStateIsACopy(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Add(guitar)

	state := e.State()
	state.Lines[0].Quantity = 99

	assert.Equal(t, 1, e.QuantityOf("A"))
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	logger, _ := test.NewNullLogger()
	reg := NewRegistry(store, logger)

	a := reg.Get(ctx, "session-a")
	b := reg.Get(ctx, "session-b")
	assert.Same(t, a, reg.Get(ctx, "session-a"))
	assert.NotSame(t, a, b)

	a.Add(guitar)
	assert.True(t, b.State().IsEmpty())
	require.NoError(t, reg.Flush(ctx))

	t.Run("sweep evicts idle engines and rebuilds from snapshot", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		assert.Equal(t, 2, reg.Sweep(time.Millisecond))
		assert.Zero(t, reg.Len())

		rebuilt := reg.Get(ctx, "session-a")
		assert.NotSame(t, a, rebuilt)
		assert.Equal(t, 1, rebuilt.QuantityOf("A"))
	})
}

func TestReduceIgnoresUnknownAction(t *testing.T) {
	state := Reduce(emptyState(), Add(guitar))
	assert.Equal(t, state, Reduce(state, Action{Type: "BOGUS"}))
}
