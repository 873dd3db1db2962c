// Package config defines the settings record driving an analysis run and
// loads it from a JSON settings file. The record is resolved once at the
// boundary; the engine only ever sees the finished value and never reads
// from disk itself.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"dnascan/internal/alphabet"
)

// Settings holds every adjustable threshold for an analysis run.
type Settings struct {
	ValidBases         []string          `json:"valid_nucleobases"`
	ComplementMap      map[string]string `json:"complement_map"`
	KValues            []int             `json:"k_values"`
	PerSequenceKmers   bool              `json:"per_sequence_k_mers"`
	MinPalindromeLen   int               `json:"min_basepair_len"`
	MinPalindromeBases int               `json:"min_bases"`
	TopN               int               `json:"top_n"`

	InputPath string `json:"input_path"`
	OutDir    string `json:"out_dir"`
	LogFile   string `json:"log_file"`
	LogLevel  string `json:"log_level"`
}

// Default returns the settings used when no file overrides them.
func Default() *Settings {
	return &Settings{
		ValidBases:         []string{"A", "C", "G", "T"},
		ComplementMap:      map[string]string{"A": "T", "T": "A", "C": "G", "G": "C"},
		KValues:            []int{3, 4},
		PerSequenceKmers:   false,
		MinPalindromeLen:   20,
		MinPalindromeBases: 2,
		TopN:               10,
		OutDir:             "./results",
		LogLevel:           "info",
	}
}

// Load reads a JSON settings file from the given path. If path is empty,
// looks for ./settings.json. A missing file is not fatal: defaults are
// returned. Fields absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		path = "settings.json"
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, nil
	}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	// decoding merges entries into the default complement map; a file that
	// sets complement_map must replace it wholesale
	var overlay struct {
		ComplementMap map[string]string `json:"complement_map"`
	}
	if err := json.Unmarshal(b, &overlay); err == nil && overlay.ComplementMap != nil {
		s.ComplementMap = overlay.ComplementMap
	}
	return s, nil
}

// ValidationError reports a rejected configuration value. It is the fatal
// error class: callers must surface it and stop before touching any
// sequence.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Validate checks every threshold and returns a *ValidationError for the
// first violation found.
func (s *Settings) Validate() error {
	if len(s.ValidBases) == 0 {
		return &ValidationError{Field: "valid_nucleobases", Reason: "must not be empty"}
	}
	valid := map[string]bool{}
	for _, b := range s.ValidBases {
		if len(b) != 1 {
			return &ValidationError{Field: "valid_nucleobases", Reason: fmt.Sprintf("%q is not a single character", b)}
		}
		valid[b] = true
	}
	for from, to := range s.ComplementMap {
		if len(from) != 1 || len(to) != 1 {
			return &ValidationError{Field: "complement_map", Reason: fmt.Sprintf("%q->%q is not a single-character pairing", from, to)}
		}
		if !valid[from] || !valid[to] {
			return &ValidationError{Field: "complement_map", Reason: fmt.Sprintf("%q->%q uses bases outside the valid set", from, to)}
		}
	}
	for _, k := range s.KValues {
		if k <= 0 {
			return &ValidationError{Field: "k_values", Reason: fmt.Sprintf("k must be positive, got %d", k)}
		}
	}
	if s.MinPalindromeLen < 1 {
		return &ValidationError{Field: "min_basepair_len", Reason: fmt.Sprintf("must be at least 1, got %d", s.MinPalindromeLen)}
	}
	if s.MinPalindromeBases < 1 {
		return &ValidationError{Field: "min_bases", Reason: fmt.Sprintf("must be at least 1, got %d", s.MinPalindromeBases)}
	}
	if s.TopN < 0 {
		return &ValidationError{Field: "top_n", Reason: fmt.Sprintf("must not be negative, got %d", s.TopN)}
	}
	return nil
}

// Alphabet builds the engine alphabet from the valid-base set and the
// complement map. Call Validate first; Alphabet assumes well-formed
// entries and only fails on an empty base set.
func (s *Settings) Alphabet() (*alphabet.Alphabet, error) {
	bases := make([]byte, 0, len(s.ValidBases))
	for _, b := range s.ValidBases {
		if len(b) == 1 {
			bases = append(bases, b[0])
		}
	}
	pairs := make(map[byte]byte, len(s.ComplementMap))
	for from, to := range s.ComplementMap {
		if len(from) == 1 && len(to) == 1 {
			pairs[from[0]] = to[0]
		}
	}
	return alphabet.New(bases, pairs)
}
