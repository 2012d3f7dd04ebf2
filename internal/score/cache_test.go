package score

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestCache_UnknownEnv(t *testing.T) {
	c := NewCache("ClassicControl2-v0")

	_, ok := c.MinScore("CartPole-v0")
	assert.False(t, ok)
	_, ok = c.MaxScore("CartPole-v0")
	assert.False(t, ok)
	_, ok = c.Normalize("CartPole-v0", 1)
	assert.False(t, ok)
	assert.Empty(t, c.Snapshot())
}

func TestCache_FirstScoreSetsBothBounds(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := NewCache("ClassicControl2-v0", WithClock(fixedClock(now)))

	c.Record("run-a", "CartPole-v0", uuid.New(), 42.5)

	lo, ok := c.Min("CartPole-v0")
	require.True(t, ok)
	hi, ok := c.Max("CartPole-v0")
	require.True(t, ok)

	assert.Equal(t, Bound{RunName: "run-a", Score: 42.5, CachedAt: now}, lo)
	assert.Equal(t, lo, hi)
}

func TestCache_TracksExtremaWithOwningRun(t *testing.T) {
	c := NewCache("ClassicControl2-v0")

	runs := []struct {
		name  string
		score float64
	}{
		{"run-5", 5},
		{"run-1", 1},
		{"run-9", 9},
		{"run-3", 3},
	}
	for _, r := range runs {
		c.Record(r.name, "CartPole-v0", uuid.New(), r.score)
	}

	lo, ok := c.MinScore("CartPole-v0")
	require.True(t, ok)
	hi, ok := c.MaxScore("CartPole-v0")
	require.True(t, ok)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 9.0, hi)

	minBound, _ := c.Min("CartPole-v0")
	maxBound, _ := c.Max("CartPole-v0")
	assert.Equal(t, "run-1", minBound.RunName)
	assert.Equal(t, "run-9", maxBound.RunName)
}

func TestCache_TiesKeepFirstOwner(t *testing.T) {
	c := NewCache("b")
	c.Record("first", "env", uuid.New(), 2)
	c.Record("second", "env", uuid.New(), 2)

	lo, _ := c.Min("env")
	hi, _ := c.Max("env")
	assert.Equal(t, "first", lo.RunName)
	assert.Equal(t, "first", hi.RunName)
}

func TestCache_EvaluationEntryAlwaysRefreshed(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := t0
	c := NewCache("b", WithClock(func() time.Time { return clock }))
	id := uuid.New()

	c.Record("run", "env", id, 10)
	clock = t0.Add(time.Minute)
	c.Record("run", "env", id, 5)

	got, ok := c.Evaluation("run", id)
	require.True(t, ok)
	assert.Equal(t, 5.0, got.Score)
	assert.Equal(t, "env", got.EnvID)
	assert.Equal(t, t0.Add(time.Minute), got.CachedAt)

	hi, _ := c.Max("env")
	assert.Equal(t, 10.0, hi.Score)
	assert.Equal(t, t0, hi.CachedAt)

	_, ok = c.Evaluation("other-run", id)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Normalize(t *testing.T) {
	c := NewCache("b")
	c.Record("a", "env", uuid.New(), 10)

	got, ok := c.Normalize("env", 10)
	require.True(t, ok)
	assert.Equal(t, 1.0, got)

	c.Record("b", "env", uuid.New(), 20)
	got, _ = c.Normalize("env", 15)
	assert.InDelta(t, 0.5, got, 1e-9)
	got, _ = c.Normalize("env", 100)
	assert.Equal(t, 1.0, got)
	got, _ = c.Normalize("env", -100)
	assert.Equal(t, 0.0, got)
}

func TestCache_SnapshotSorted(t *testing.T) {
	c := NewCache("b")
	c.Record("r", "Pendulum-v0", uuid.New(), -150)
	c.Record("r", "CartPole-v0", uuid.New(), 190)

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "CartPole-v0", snap[0].EnvID)
	assert.Equal(t, "Pendulum-v0", snap[1].EnvID)
	assert.Equal(t, -150.0, snap[1].Min.Score)
}

func TestCache_ConcurrentRecord(t *testing.T) {
	c := NewCache("b")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(score float64) {
			defer wg.Done()
			c.Record("run", "env", uuid.New(), score)
		}(float64(i))
	}
	wg.Wait()

	lo, _ := c.MinScore("env")
	hi, _ := c.MaxScore("env")
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 99.0, hi)
	assert.Equal(t, 100, c.Len())
}
