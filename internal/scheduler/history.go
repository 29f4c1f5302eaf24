package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"
)

// History tracks the outcomes of a scheduled job across restarts.
type History struct {
	LastRun      time.Time `json:"last_run"`
	LastStatus   string    `json:"last_status"` // "success", "failure", "timeout"
	LastDuration int64     `json:"last_duration_ms"`
	LastError    string    `json:"last_error,omitempty"`
	RunCount     int       `json:"run_count"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
}

// LoadHistory loads run history from a JSON file. A missing file yields an
// empty history.
func LoadHistory(path string) (History, error) {
	var h History
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: run history file not found at %s, starting with empty history", path)
			return h, nil
		}
		return h, err
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return h, err
	}
	log.Printf("INFO: loaded run history from %s (%d runs)", path, h.RunCount)
	return h, nil
}

// SaveHistory saves run history to a JSON file.
func SaveHistory(path string, h History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Printf("DEBUG: saved run history to %s", path)
	return nil
}

// Record folds one run into the history.
func (h *History) Record(res RunResult) {
	h.LastRun = res.Started.Add(res.Duration)
	h.LastDuration = res.Duration.Milliseconds()
	h.RunCount++
	h.LastError = ""

	switch {
	case res.Err == nil:
		h.LastStatus = "success"
		h.SuccessCount++
	case errors.Is(res.Err, context.DeadlineExceeded):
		h.LastStatus = "timeout"
		h.LastError = res.Err.Error()
		h.FailureCount++
	default:
		h.LastStatus = "failure"
		h.LastError = res.Err.Error()
		h.FailureCount++
	}
}

// UseHistory loads the history stored at path and keeps it updated after
// every run.
func (s *Scheduler) UseHistory(path string) error {
	h, err := LoadHistory(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.historyPath = path
	s.history = h
	s.mu.Unlock()
	return nil
}

// History returns a copy of the run history.
func (s *Scheduler) History() History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// updateHistory records res and persists it when a history file is set.
// Callers hold s.mu.
func (s *Scheduler) updateHistory(res RunResult) {
	s.history.Record(res)
	if s.historyPath == "" {
		return
	}
	if err := SaveHistory(s.historyPath, s.history); err != nil {
		log.Printf("WARN: saving run history: %v", err)
	}
}
