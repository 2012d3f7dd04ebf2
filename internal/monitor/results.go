// Package monitor reads the training directories written by the gym monitor: manifest
// files pointing at per-worker episode stats files.
package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ManifestPrefix = "openaigym.manifest."

var ErrNoManifests = errors.New("no monitor manifests found")

type EnvInfo struct {
	EnvID      string `json:"env_id"`
	GymVersion string `json:"gym_version"`
}

type Manifest struct {
	Stats   string      `json:"stats"`
	Videos  [][2]string `json:"videos"`
	EnvInfo *EnvInfo    `json:"env_info"`
}

type statsFile struct {
	InitialResetTimestamp *float64  `json:"initial_reset_timestamp"`
	Timestamps            []float64 `json:"timestamps"`
	EpisodeLengths        []int     `json:"episode_lengths"`
	EpisodeRewards        []float64 `json:"episode_rewards"`
	EpisodeTypes          []string  `json:"episode_types"`
}

// Video pairs a recorded video with its metadata file, both as absolute paths.
type Video struct {
	Path     string
	Metadata string
}

// Results are the merged episodes of every stats file in a training directory, sorted
// by episode timestamp. Empty stats files are dropped; InitialResetTimestamps holds one
// entry per remaining file and DataSources indexes into it for every episode.
type Results struct {
	Manifests              []string
	EnvInfo                EnvInfo
	DataSources            []int
	Timestamps             []float64
	EpisodeLengths         []int
	EpisodeRewards         []float64
	EpisodeTypes           []string
	InitialResetTimestamps []float64
	InitialResetTimestamp  float64
	Videos                 []Video
}

// DetectManifests lists the manifest files directly inside dir.
func DetectManifests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read training dir: %w", err)
	}

	var manifests []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), ManifestPrefix) {
			continue
		}
		manifests = append(manifests, filepath.Join(dir, e.Name()))
	}
	return manifests, nil
}

// LoadResults reads every manifest in dir and merges the stats files they reference.
func LoadResults(dir string) (*Results, error) {
	manifestPaths, err := DetectManifests(dir)
	if err != nil {
		return nil, err
	}
	if len(manifestPaths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoManifests)
	}

	var (
		envInfos   []*EnvInfo
		statsPaths []string
		videos     []Video
	)
	for _, path := range manifestPaths {
		m, err := readManifest(path)
		if err != nil {
			return nil, err
		}
		envInfos = append(envInfos, m.EnvInfo)
		statsPaths = append(statsPaths, filepath.Join(dir, m.Stats))
		for _, v := range m.Videos {
			videos = append(videos, Video{
				Path:     filepath.Join(dir, v[0]),
				Metadata: filepath.Join(dir, v[1]),
			})
		}
	}

	envInfo, err := collapseEnvInfos(envInfos, dir)
	if err != nil {
		return nil, err
	}

	r, err := mergeStatsFiles(statsPaths)
	if err != nil {
		return nil, err
	}
	r.Manifests = manifestPaths
	r.EnvInfo = envInfo
	r.Videos = videos
	return r, nil
}

func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Stats == "" {
		return nil, fmt.Errorf("manifest %s has no stats file", path)
	}
	return &m, nil
}

func collapseEnvInfos(infos []*EnvInfo, dir string) (EnvInfo, error) {
	first := infos[0]
	if first == nil {
		return EnvInfo{}, fmt.Errorf("manifest in %s has no env_info", dir)
	}
	for _, other := range infos[1:] {
		if other == nil || *other != *first {
			return EnvInfo{}, fmt.Errorf("found unequal env_infos %+v and %+v in %s: results from multiple runs are commingled", *first, other, dir)
		}
	}
	if first.EnvID == "" {
		return EnvInfo{}, fmt.Errorf("env_info in %s is missing env_id", dir)
	}
	if first.GymVersion == "" {
		return EnvInfo{}, fmt.Errorf("env_info in %s is missing gym_version", dir)
	}
	return *first, nil
}

type episode struct {
	source    int
	timestamp float64
	length    int
	reward    float64
	kind      string
}

func mergeStatsFiles(paths []string) (*Results, error) {
	var (
		episodes      []episode
		resets        []float64
		episodesTyped = true
	)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stats file: %w", err)
		}
		var s statsFile
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse stats file %s: %w", path, err)
		}

		// An empty file has a null initial reset timestamp.
		if len(s.Timestamps) == 0 {
			continue
		}

		n := len(s.Timestamps)
		if len(s.EpisodeLengths) != n || len(s.EpisodeRewards) != n {
			return nil, fmt.Errorf("stats file %s has %d timestamps, %d lengths and %d rewards",
				path, n, len(s.EpisodeLengths), len(s.EpisodeRewards))
		}
		if len(s.EpisodeTypes) != n {
			episodesTyped = false
		}

		source := len(resets)
		reset := s.Timestamps[0]
		if s.InitialResetTimestamp != nil {
			reset = *s.InitialResetTimestamp
		}
		resets = append(resets, reset)

		for j := 0; j < n; j++ {
			ep := episode{
				source:    source,
				timestamp: s.Timestamps[j],
				length:    s.EpisodeLengths[j],
				reward:    s.EpisodeRewards[j],
			}
			if j < len(s.EpisodeTypes) {
				ep.kind = s.EpisodeTypes[j]
			}
			episodes = append(episodes, ep)
		}
	}

	sort.SliceStable(episodes, func(a, b int) bool {
		return episodes[a].timestamp < episodes[b].timestamp
	})

	r := &Results{
		DataSources:            make([]int, len(episodes)),
		Timestamps:             make([]float64, len(episodes)),
		EpisodeLengths:         make([]int, len(episodes)),
		EpisodeRewards:         make([]float64, len(episodes)),
		InitialResetTimestamps: resets,
	}
	if episodesTyped && len(episodes) > 0 {
		r.EpisodeTypes = make([]string, len(episodes))
	}
	for i, ep := range episodes {
		r.DataSources[i] = ep.source
		r.Timestamps[i] = ep.timestamp
		r.EpisodeLengths[i] = ep.length
		r.EpisodeRewards[i] = ep.reward
		if r.EpisodeTypes != nil {
			r.EpisodeTypes[i] = ep.kind
		}
	}

	if len(resets) > 0 {
		r.InitialResetTimestamp = resets[0]
		for _, ts := range resets[1:] {
			r.InitialResetTimestamp = min(r.InitialResetTimestamp, ts)
		}
	}

	return r, nil
}
