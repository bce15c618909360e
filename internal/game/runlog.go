package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// RunLog records one finished run. LevelSeeds lets a run's mazes be
// regenerated exactly for inspection.
type RunLog struct {
	FinishedAt    time.Time `json:"finished_at"`
	DeepestDepth  int       `json:"deepest_depth"`
	Falls         int       `json:"falls"`
	Steps         int       `json:"steps"`
	PlayedSeconds int       `json:"played_seconds"`
	Victory       bool      `json:"victory"`
	LevelSeeds    []int64   `json:"level_seeds"`
}

// saveRunLog appends the run as a single JSON line to runs.jsonl. Errors
// are silently discarded so a disk problem never crashes the game.
func saveRunLog(log RunLog) {
	dir, err := runLogDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return
	}
	f.Write(data)         //nolint:errcheck
	f.Write([]byte("\n")) //nolint:errcheck
}

// runLogDir returns the directory where run logs are stored. Follows the
// XDG Base Directory spec: $XDG_DATA_HOME/dreadmaze, defaulting to
// ~/.local/share/dreadmaze.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "dreadmaze"), nil
}
