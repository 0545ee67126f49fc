package alert

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/epidemicwatch/risk-service/internal/domain"
)

const (
	// MaxAlerts bounds the stored list; older entries are dropped.
	MaxAlerts = 50

	// DedupeWindow suppresses a second alert for the same disease and region
	// arriving within this interval of an existing one.
	DedupeWindow = 60 * time.Second
)

// Filter selects alerts by exact field match. Zero fields match everything.
type Filter struct {
	Severity domain.Severity
	Region   string
}

// Stats summarizes the stored list for the dashboard counters.
type Stats struct {
	Total    int `json:"total"`
	High     int `json:"high"`
	Moderate int `json:"moderate"`
	Low      int `json:"low"`
}

// Store is a mutex-guarded, file-backed alert list, newest first, capped at
// MaxAlerts. The backing file holds the JSON-encoded list; a corrupt or
// missing file loads as an empty list.
type Store struct {
	mu     sync.Mutex
	path   string
	alerts []Alert
	logger *slog.Logger
}

// NewStore opens the store at path, loading any previously persisted list.
func NewStore(path string, logger *slog.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.alerts = s.load()
	return s
}

func (s *Store) load() []Alert {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("alert store read failed, starting empty", "path", s.path, "error", err)
		}
		return []Alert{}
	}

	var alerts []Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		s.logger.Warn("alert store corrupt, starting empty", "path", s.path, "error", err)
		return []Alert{}
	}
	return alerts
}

// persist writes the list back to disk. Failures are logged and swallowed;
// the in-memory list remains authoritative for the process lifetime.
func (s *Store) persist() {
	data, err := json.MarshalIndent(s.alerts, "", "  ")
	if err != nil {
		s.logger.Warn("alert store encode failed", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn("alert store write failed", "path", s.path, "error", err)
	}
}

// Add inserts an alert at the head unless a duplicate for the same disease
// and region exists within DedupeWindow, then truncates to MaxAlerts and
// persists. Returns true when the alert was inserted.
func (s *Store) Add(a Alert) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.alerts {
		if existing.Disease == a.Disease && existing.Region == a.Region &&
			absDuration(existing.Timestamp.Sub(a.Timestamp)) < DedupeWindow {
			return false
		}
	}

	s.alerts = append([]Alert{a}, s.alerts...)
	if len(s.alerts) > MaxAlerts {
		s.alerts = s.alerts[:MaxAlerts]
	}
	s.persist()
	return true
}

// AddAll inserts each alert in order and returns how many were accepted.
func (s *Store) AddAll(alerts []Alert) int {
	added := 0
	for _, a := range alerts {
		if s.Add(a) {
			added++
		}
	}
	return added
}

// List returns the alerts matching the filter, newest first.
func (s *Store) List(f Filter) []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if f.Severity != "" && a.Severity != f.Severity {
			continue
		}
		if f.Region != "" && a.Region != f.Region {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Regions returns the distinct regions present in the list, in list order.
func (s *Store) Regions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.alerts))
	regions := make([]string, 0, len(s.alerts))
	for _, a := range s.alerts {
		if !seen[a.Region] {
			seen[a.Region] = true
			regions = append(regions, a.Region)
		}
	}
	return regions
}

// Stats returns severity counts for the stored list.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.alerts)}
	for _, a := range s.alerts {
		switch a.Severity {
		case domain.SeverityHigh:
			st.High++
		case domain.SeverityModerate:
			st.Moderate++
		case domain.SeverityLow:
			st.Low++
		}
	}
	return st
}

// Len returns the number of stored alerts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

// ClearAll wipes the list and persists the empty state. Confirmation is the
// caller's responsibility.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = []Alert{}
	s.persist()
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
