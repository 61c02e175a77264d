package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"testing"

	"event-counter-service/internal/counter/adapters/memory"
	"event-counter-service/internal/counter/core/domain"
	"event-counter-service/internal/counter/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore wraps a memory store and lets tests fail individual calls.
type fakeStore struct {
	mem *memory.Store

	GetFn func(ctx context.Context, key string) (int64, error)
	HasFn func(ctx context.Context, key string) (bool, error)
	SetFn func(ctx context.Context, key string, value int64) error

	sets []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{mem: memory.NewStore()}
}

func (f *fakeStore) GetInteger(ctx context.Context, key string) (int64, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	return f.mem.GetInteger(ctx, key)
}

func (f *fakeStore) HasValue(ctx context.Context, key string) (bool, error) {
	if f.HasFn != nil {
		return f.HasFn(ctx, key)
	}
	return f.mem.HasValue(ctx, key)
}

func (f *fakeStore) SetInteger(ctx context.Context, key string, value int64) error {
	f.sets = append(f.sets, key)
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value)
	}
	return f.mem.SetInteger(ctx, key, value)
}

func newService(t *testing.T) (*usecase.EventCounterService, *fakeStore, *bytes.Buffer) {
	t.Helper()
	store := newFakeStore()
	var buf bytes.Buffer
	return usecase.NewEventCounterService(store, log.New(&buf, "", 0)), store, &buf
}

func snapshot(t *testing.T, svc *usecase.EventCounterService, id string) domain.Counter {
	t.Helper()
	c, err := svc.Snapshot(context.Background(), id)
	require.NoError(t, err)
	return c
}

// ------------------------------------------------------------
// FRESH IDENTIFIERS
// ------------------------------------------------------------

func TestFreshIdentifier_ReadsZero(t *testing.T) {
	svc, store, _ := newService(t)

	c := snapshot(t, svc, "never-used")

	assert.Equal(t, domain.Counter{Identifier: "never-used"}, c)
	assert.Empty(t, store.sets, "reads must not write")
}

func TestCount_FreshIdentifier_AppliesDefaultThreshold(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Count(ctx, "launch", func() {}))

	c := snapshot(t, svc, "launch")
	assert.Equal(t, domain.DefaultResetAtCount, c.ResetAtCount)
	assert.Equal(t, uint64(1), c.Counted)
}

// ------------------------------------------------------------
// THRESHOLD CROSSING
// ------------------------------------------------------------

func TestCount_ReachingThreshold_RunsTaskOnce(t *testing.T) {
	for _, threshold := range []uint64{1, 2, 5, 7} {
		svc, _, _ := newService(t)
		ctx := context.Background()
		require.NoError(t, svc.Count(ctx, "evt", nil))
		require.NoError(t, svc.SetResetAtCount(ctx, threshold, "evt"))
		if threshold == domain.DefaultResetAtCount {
			// unchanged threshold keeps the first count
			require.NoError(t, svc.SetCounted(ctx, 0, "evt"))
		}

		calls := 0
		for i := uint64(1); i <= threshold; i++ {
			require.NoError(t, svc.Count(ctx, "evt", func() { calls++ }))
			if i < threshold {
				assert.Equal(t, 0, calls, "threshold %d: task ran early at call %d", threshold, i)
			}
		}

		assert.Equal(t, 1, calls, "threshold %d", threshold)
		assert.Equal(t, uint64(0), snapshot(t, svc, "evt").Counted)
	}
}

func TestCount_CheckinScenario(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	calls := 0
	f := func() { calls++ }

	require.NoError(t, svc.SetResetAtCount(ctx, 3, "checkin"))
	require.NoError(t, svc.Count(ctx, "checkin", f))
	require.NoError(t, svc.Count(ctx, "checkin", f))

	assert.Equal(t, uint64(2), snapshot(t, svc, "checkin").Counted)
	assert.Equal(t, 0, calls)

	require.NoError(t, svc.Count(ctx, "checkin", f))

	assert.Equal(t, uint64(0), snapshot(t, svc, "checkin").Counted)
	assert.Equal(t, 1, calls)
}

func TestCount_LastRegisteredTaskWins(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	var ran []string

	require.NoError(t, svc.SetResetAtCount(ctx, 2, "evt"))
	require.NoError(t, svc.Count(ctx, "evt", func() { ran = append(ran, "first") }))
	require.NoError(t, svc.Count(ctx, "evt", func() { ran = append(ran, "second") }))

	assert.Equal(t, []string{"second"}, ran)
}

func TestCount_WithoutTask_ResetsAndLogs(t *testing.T) {
	svc, _, logs := newService(t)
	ctx := context.Background()

	for i := 0; i < int(domain.DefaultResetAtCount)-1; i++ {
		require.NoError(t, svc.Count(ctx, "x", nil))
	}
	assert.Empty(t, logs.String())

	require.NoError(t, svc.Count(ctx, "x", nil))

	assert.Equal(t, uint64(0), snapshot(t, svc, "x").Counted)
	assert.Contains(t, logs.String(), "No task to run at reset")
	assert.Contains(t, logs.String(), "identifier x.")
}

func TestCount_NilTaskReplacesEarlierTask(t *testing.T) {
	svc, _, logs := newService(t)
	ctx := context.Background()
	called := false

	require.NoError(t, svc.SetResetAtCount(ctx, 2, "evt"))
	require.NoError(t, svc.Count(ctx, "evt", func() { called = true }))
	require.NoError(t, svc.Count(ctx, "evt", nil))

	assert.False(t, called)
	assert.NotEmpty(t, logs.String())
}

func TestCount_ThresholdZero_NeverResets(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	calls := 0

	require.NoError(t, svc.Count(ctx, "evt", nil))
	require.NoError(t, svc.SetResetAtCount(ctx, 0, "evt"))

	for i := 0; i < 50; i++ {
		require.NoError(t, svc.Count(ctx, "evt", func() { calls++ }))
	}

	c := snapshot(t, svc, "evt")
	assert.Equal(t, 0, calls)
	assert.Equal(t, uint64(50), c.Counted)
	assert.Equal(t, uint64(0), c.ResetAtCount)
}

func TestSetResetAtCount_ZeroOnFreshIdentifier_IsNoop(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetResetAtCount(ctx, 0, "evt"))
	assert.Empty(t, store.sets)

	// still unconfigured, so the first count applies the default
	require.NoError(t, svc.Count(ctx, "evt", nil))
	assert.Equal(t, domain.DefaultResetAtCount, snapshot(t, svc, "evt").ResetAtCount)
}

// ------------------------------------------------------------
// THRESHOLD CHANGES
// ------------------------------------------------------------

func TestSetResetAtCount_SameValue_KeepsCount(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetResetAtCount(ctx, 10, "evt"))
	for i := 0; i < 4; i++ {
		require.NoError(t, svc.Count(ctx, "evt", nil))
	}
	writes := len(store.sets)

	require.NoError(t, svc.SetResetAtCount(ctx, 10, "evt"))

	assert.Equal(t, uint64(4), snapshot(t, svc, "evt").Counted)
	assert.Len(t, store.sets, writes)
}

func TestSetResetAtCount_NewValue_ZeroesCount(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	calls := 0

	require.NoError(t, svc.SetResetAtCount(ctx, 10, "evt"))
	for i := 0; i < 4; i++ {
		require.NoError(t, svc.Count(ctx, "evt", func() { calls++ }))
	}

	// lowering below the current count zeroes it instead of firing
	require.NoError(t, svc.SetResetAtCount(ctx, 3, "evt"))

	c := snapshot(t, svc, "evt")
	assert.Equal(t, uint64(0), c.Counted)
	assert.Equal(t, uint64(3), c.ResetAtCount)
	assert.Equal(t, 0, calls)
}

// ------------------------------------------------------------
// DIRECT WRITES
// ------------------------------------------------------------

func TestSetCounted_AtThreshold_ResetsAndRunsTask(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	calls := 0

	require.NoError(t, svc.Count(ctx, "evt", func() { calls++ }))
	require.NoError(t, svc.SetCounted(ctx, 99, "evt"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(0), snapshot(t, svc, "evt").Counted)
}

func TestSetCounted_Unconfigured_Stores(t *testing.T) {
	svc, _, logs := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCounted(ctx, 42, "evt"))

	assert.Equal(t, uint64(42), snapshot(t, svc, "evt").Counted)
	assert.Empty(t, logs.String())
}

func TestSetCounted_OutOfRange(t *testing.T) {
	svc, store, _ := newService(t)

	err := svc.SetCounted(context.Background(), math.MaxUint64, "evt")

	assert.ErrorIs(t, err, usecase.ErrValueOutOfRange)
	assert.Empty(t, store.sets)
}

// ------------------------------------------------------------
// RESET
// ------------------------------------------------------------

func TestReset_WithoutRegisteredTask(t *testing.T) {
	svc, _, logs := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCounted(ctx, 3, "evt"))
	require.NoError(t, svc.Reset(ctx, "evt", true))

	assert.Equal(t, uint64(0), snapshot(t, svc, "evt").Counted)
	assert.Contains(t, logs.String(), "identifier evt")
}

func TestReset_SkipTask(t *testing.T) {
	svc, _, logs := newService(t)
	ctx := context.Background()
	called := false

	require.NoError(t, svc.Count(ctx, "evt", func() { called = true }))
	require.NoError(t, svc.Reset(ctx, "evt", false))

	assert.False(t, called)
	assert.Empty(t, logs.String())
	assert.Equal(t, uint64(0), snapshot(t, svc, "evt").Counted)
}

func TestReset_RunsRegisteredTask(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	calls := 0

	require.NoError(t, svc.Count(ctx, "evt", func() { calls++ }))
	require.NoError(t, svc.Reset(ctx, "evt", true))
	require.NoError(t, svc.Reset(ctx, "evt", true))

	assert.Equal(t, 2, calls)
}

func TestRestart_KeepsCountsButForgetsTasks(t *testing.T) {
	store := newFakeStore()
	var logs bytes.Buffer
	ctx := context.Background()
	called := false

	first := usecase.NewEventCounterService(store, log.New(&logs, "", 0))
	for i := 0; i < 4; i++ {
		require.NoError(t, first.Count(ctx, "evt", func() { called = true }))
	}

	second := usecase.NewEventCounterService(store, log.New(&logs, "", 0))
	c, err := second.Snapshot(ctx, "evt")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), c.Counted)

	require.NoError(t, second.Reset(ctx, "evt", true))
	assert.False(t, called)
	assert.Contains(t, logs.String(), "No task to run at reset")
}

// ------------------------------------------------------------
// STORE ERROR PROPAGATION
// ------------------------------------------------------------

func TestCount_StoreErrors(t *testing.T) {
	storeErr := errors.New("store down")

	tests := []struct {
		name  string
		setup func(f *fakeStore)
	}{
		{"has_value", func(f *fakeStore) {
			f.HasFn = func(ctx context.Context, key string) (bool, error) { return false, storeErr }
		}},
		{"get", func(f *fakeStore) {
			f.GetFn = func(ctx context.Context, key string) (int64, error) { return 0, storeErr }
		}},
		{"set", func(f *fakeStore) {
			f.SetFn = func(ctx context.Context, key string, value int64) error { return storeErr }
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newService(t)
			tt.setup(store)

			err := svc.Count(context.Background(), "evt", nil)

			assert.ErrorIs(t, err, storeErr)
		})
	}
}

func TestGetters_NegativeStoredValueReadsAsZero(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	require.NoError(t, store.mem.SetInteger(ctx, domain.CountedKey("evt"), -3))

	counted, err := svc.Counted(ctx, "evt")

	require.NoError(t, err)
	assert.Equal(t, uint64(0), counted)
}
