package benchmark

import (
	"fmt"
	"log/slog"
)

// Episodes are the raw per-episode vectors of one evaluation, ordered by timestamp.
// DataSources indexes InitialResetTimestamps for each episode.
type Episodes struct {
	DataSources            []int
	InitialResetTimestamps []float64
	Lengths                []int
	Rewards                []float64
	Types                  []string
	Timestamps             []float64
}

// Result holds one entry per task spec of the scored environment.
type Result struct {
	Rewards               [][]float64
	Lengths               [][]int
	Scores                []float64
	Solves                [][]bool
	Timestamps            []float64
	ElapsedTimes          []float64
	InitialResetTimestamp float64
}

type Scorer interface {
	ScoreEvaluation(envID string, tasks []Task, episodes Episodes) *Result
}

func NewScorer(cfg ScorerConfig) (Scorer, error) {
	switch cfg.Type {
	case ScorerClipTo01ThenAverage:
		return &ClipTo01ThenAverage{NumEpisodes: cfg.NumEpisodes}, nil
	case ScorerTotalReward:
		return &TotalReward{}, nil
	default:
		return nil, fmt.Errorf("unknown scorer type %q", cfg.Type)
	}
}

// ClipTo01ThenAverage scores each task by the last NumEpisodes evaluation episodes
// finished before the training budget ran out. Rewards are rescaled so the floor maps
// to 0 and the ceiling to 1, clipped, and averaged. Missing episodes count as the floor.
type ClipTo01ThenAverage struct {
	NumEpisodes int
}

func (s *ClipTo01ThenAverage) ScoreEvaluation(envID string, tasks []Task, episodes Episodes) *Result {
	p := prepare(episodes)
	r := &Result{InitialResetTimestamp: p.initialReset}

	for _, task := range tasks {
		allowed, cutoff := p.allowed(task)

		reward := make([]float64, 0, s.NumEpisodes)
		length := make([]int, 0, s.NumEpisodes)
		for _, i := range lastN(allowed, s.NumEpisodes) {
			reward = append(reward, episodes.Rewards[i])
			length = append(length, episodes.Lengths[i])
		}
		if extra := s.NumEpisodes - len(reward); extra > 0 {
			slog.Info("Padding missing evaluation episodes with the reward floor",
				"env_id", envID, "rewards", len(reward), "extra", extra)
			for j := 0; j < extra; j++ {
				reward = append(reward, task.RewardFloor)
				length = append(length, 0)
			}
		}

		solved := make([]bool, len(reward))
		var sum float64
		for i, rw := range reward {
			solved[i] = rw >= task.RewardCeiling
			sum += clip01((rw - task.RewardFloor) / (task.RewardCeiling - task.RewardFloor))
		}

		var score float64
		if len(reward) > 0 {
			score = sum / float64(len(reward))
		}

		ts, elapsed := p.timing(len(allowed), cutoff)
		r.Scores = append(r.Scores, score)
		r.Solves = append(r.Solves, solved)
		r.Rewards = append(r.Rewards, reward)
		r.Lengths = append(r.Lengths, length)
		r.Timestamps = append(r.Timestamps, ts)
		r.ElapsedTimes = append(r.ElapsedTimes, elapsed)
	}

	return r
}

// TotalReward scores each task by the sum of every evaluation reward collected before
// the training budget ran out.
type TotalReward struct{}

func (s *TotalReward) ScoreEvaluation(_ string, tasks []Task, episodes Episodes) *Result {
	p := prepare(episodes)
	r := &Result{InitialResetTimestamp: p.initialReset}

	for _, task := range tasks {
		allowed, cutoff := p.allowed(task)

		reward := make([]float64, len(allowed))
		length := make([]int, len(allowed))
		solved := make([]bool, len(allowed))
		var total float64
		for j, i := range allowed {
			reward[j] = episodes.Rewards[i]
			length[j] = episodes.Lengths[i]
			solved[j] = reward[j] >= task.RewardCeiling
			total += reward[j]
		}

		ts, elapsed := p.timing(len(allowed), cutoff)
		r.Scores = append(r.Scores, total)
		r.Solves = append(r.Solves, solved)
		r.Rewards = append(r.Rewards, reward)
		r.Lengths = append(r.Lengths, length)
		r.Timestamps = append(r.Timestamps, ts)
		r.ElapsedTimes = append(r.ElapsedTimes, elapsed)
	}

	return r
}

type prepared struct {
	timestamps       []float64
	trainIdx         []int
	evalIdx          []int
	elapsedTimesteps []int
	elapsedSeconds   []float64
	initialReset     float64
}

// prepare splits episodes into training and evaluation indexes and accumulates how much
// training experience, in timesteps and worker seconds, had elapsed after each training
// episode. Without any episode tagged "e" every episode counts as both.
func prepare(ep Episodes) *prepared {
	n := min(len(ep.Rewards), len(ep.Lengths), len(ep.Timestamps))
	p := &prepared{timestamps: ep.Timestamps}

	if len(ep.InitialResetTimestamps) > 0 {
		p.initialReset = ep.InitialResetTimestamps[0]
		for _, ts := range ep.InitialResetTimestamps[1:] {
			p.initialReset = min(p.initialReset, ts)
		}
	}

	// Each worker's first episode runs from its reset, later ones from the previous
	// episode of the same worker.
	durations := make([]float64, n)
	last := make(map[int]float64, len(ep.InitialResetTimestamps))
	for i := 0; i < n; i++ {
		src := 0
		if i < len(ep.DataSources) {
			src = ep.DataSources[i]
		}
		prev, ok := last[src]
		if !ok {
			if src < len(ep.InitialResetTimestamps) {
				prev = ep.InitialResetTimestamps[src]
			} else {
				prev = p.initialReset
			}
		}
		durations[i] = ep.Timestamps[i] - prev
		last[src] = ep.Timestamps[i]
	}

	if len(ep.Types) == n {
		for i, kind := range ep.Types {
			switch kind {
			case "t":
				p.trainIdx = append(p.trainIdx, i)
			case "e":
				p.evalIdx = append(p.evalIdx, i)
			}
		}
	}
	if len(p.evalIdx) == 0 {
		p.trainIdx = make([]int, n)
		p.evalIdx = make([]int, n)
		for i := 0; i < n; i++ {
			p.trainIdx[i] = i
			p.evalIdx[i] = i
		}
	}

	var steps int
	var seconds float64
	for _, i := range p.trainIdx {
		steps += ep.Lengths[i]
		seconds += durations[i]
		p.elapsedTimesteps = append(p.elapsedTimesteps, steps)
		p.elapsedSeconds = append(p.elapsedSeconds, seconds)
	}

	return p
}

// allowed returns the evaluation episodes that finished before the first training
// episode exceeding the task's budget. cutoff indexes trainIdx, or is -1 when the budget
// was never exceeded.
func (p *prepared) allowed(task Task) (allowed []int, cutoff int) {
	cutoff = -1
	if task.MaxTimesteps > 0 {
		for i, steps := range p.elapsedTimesteps {
			if steps > task.MaxTimesteps {
				cutoff = i
				break
			}
		}
	}
	if task.MaxSeconds > 0 {
		for i, secs := range p.elapsedSeconds {
			if secs > task.MaxSeconds {
				if cutoff < 0 || i < cutoff {
					cutoff = i
				}
				break
			}
		}
	}

	if cutoff < 0 {
		return p.evalIdx, cutoff
	}

	origCutoff := p.trainIdx[cutoff]
	for _, i := range p.evalIdx {
		if i < origCutoff {
			allowed = append(allowed, i)
		}
	}
	return allowed, cutoff
}

// timing reports the timestamp of the last training episode counted and the training
// seconds elapsed by then.
func (p *prepared) timing(allowedCount, cutoff int) (timestamp, elapsed float64) {
	if allowedCount == 0 || len(p.trainIdx) == 0 {
		return p.initialReset, 0
	}
	if cutoff < 0 {
		cutoff = len(p.elapsedSeconds) - 1
	}
	return p.timestamps[p.trainIdx[cutoff]], p.elapsedSeconds[cutoff]
}

func lastN(idx []int, n int) []int {
	if n <= 0 {
		return nil
	}
	if len(idx) <= n {
		return idx
	}
	return idx[len(idx)-n:]
}

func clip01(v float64) float64 {
	return min(max(v, 0), 1)
}
