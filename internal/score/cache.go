package score

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Bound is the best or worst score seen for an environment and the run that produced it.
type Bound struct {
	RunName  string    `json:"run_name"`
	Score    float64   `json:"score"`
	CachedAt time.Time `json:"cached_at"`
}

// EvaluationScore is the last score recorded for a single evaluation.
type EvaluationScore struct {
	EnvID    string    `json:"env_id"`
	Score    float64   `json:"score"`
	CachedAt time.Time `json:"cached_at"`
}

type evaluationKey struct {
	runName string
	id      uuid.UUID
}

// EnvScores is a point-in-time copy of the extrema for one environment.
type EnvScores struct {
	EnvID string `json:"env_id"`
	Min   Bound  `json:"min"`
	Max   Bound  `json:"max"`
}

// Cache keeps the worst and best scoring run per environment for the lifetime of the
// process. It is safe for concurrent use.
type Cache struct {
	BenchmarkID string

	mu          sync.RWMutex
	minByEnv    map[string]Bound
	maxByEnv    map[string]Bound
	evaluations map[evaluationKey]EvaluationScore

	now func() time.Time
}

type CacheOption func(*Cache)

// WithClock overrides the time source used to stamp cache entries.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

func NewCache(benchmarkID string, opts ...CacheOption) *Cache {
	c := &Cache{
		BenchmarkID: benchmarkID,
		minByEnv:    make(map[string]Bound),
		maxByEnv:    make(map[string]Bound),
		evaluations: make(map[evaluationKey]EvaluationScore),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Record folds score into the extrema for envID. The first score for an environment
// becomes both bounds; later scores replace a bound only when strictly better or worse.
// The per-evaluation entry is refreshed on every call.
func (c *Cache) Record(runName, envID string, evaluationID uuid.UUID, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cachedAt := c.now()
	bound := Bound{RunName: runName, Score: score, CachedAt: cachedAt}

	if cur, ok := c.minByEnv[envID]; !ok || score < cur.Score {
		c.minByEnv[envID] = bound
	}
	if cur, ok := c.maxByEnv[envID]; !ok || score > cur.Score {
		c.maxByEnv[envID] = bound
	}

	c.evaluations[evaluationKey{runName: runName, id: evaluationID}] = EvaluationScore{
		EnvID:    envID,
		Score:    score,
		CachedAt: cachedAt,
	}
}

// MinScore is the worst evaluation score seen on envID. ok is false until a score is recorded.
func (c *Cache) MinScore(envID string) (score float64, ok bool) {
	b, ok := c.Min(envID)
	return b.Score, ok
}

// MaxScore is the best evaluation score seen on envID. ok is false until a score is recorded.
func (c *Cache) MaxScore(envID string) (score float64, ok bool) {
	b, ok := c.Max(envID)
	return b.Score, ok
}

func (c *Cache) Min(envID string) (Bound, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.minByEnv[envID]
	return b, ok
}

func (c *Cache) Max(envID string) (Bound, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.maxByEnv[envID]
	return b, ok
}

// Evaluation returns the last score recorded for the evaluation of the named run.
func (c *Cache) Evaluation(runName string, evaluationID uuid.UUID) (EvaluationScore, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.evaluations[evaluationKey{runName: runName, id: evaluationID}]
	return s, ok
}

// Normalize places score between the worst (0) and best (1) score seen for envID.
// When both bounds are equal every score maps to 1.
func (c *Cache) Normalize(envID string, score float64) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lo, ok := c.minByEnv[envID]
	if !ok {
		return 0, false
	}
	hi := c.maxByEnv[envID]

	span := hi.Score - lo.Score
	if span <= 0 {
		return 1, true
	}
	return min(max((score-lo.Score)/span, 0), 1), true
}

// Snapshot copies the extrema of every environment seen so far, sorted by env id.
func (c *Cache) Snapshot() []EnvScores {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]EnvScores, 0, len(c.minByEnv))
	for envID, lo := range c.minByEnv {
		out = append(out, EnvScores{EnvID: envID, Min: lo, Max: c.maxByEnv[envID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnvID < out[j].EnvID })
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.evaluations)
}
