package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("expected default settings to validate, got %v", err)
	}
	if len(s.ValidBases) != 4 {
		t.Fatalf("expected 4 default bases, got %d", len(s.ValidBases))
	}
	if s.TopN != 10 {
		t.Fatalf("expected default top_n 10, got %d", s.TopN)
	}
	if s.MinPalindromeLen != 20 {
		t.Fatalf("expected default min_basepair_len 20, got %d", s.MinPalindromeLen)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "no-such-settings.json"))
	if err != nil {
		t.Fatalf("expected missing file to fall back to defaults, got %v", err)
	}
	if s.TopN != Default().TopN {
		t.Fatalf("expected default top_n, got %d", s.TopN)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"k_values": [2], "top_n": 3, "valid_nucleobases": ["A", "B", "C"]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if len(s.KValues) != 1 || s.KValues[0] != 2 {
		t.Fatalf("expected k_values [2], got %v", s.KValues)
	}
	if s.TopN != 3 {
		t.Fatalf("expected top_n 3, got %d", s.TopN)
	}
	if len(s.ValidBases) != 3 {
		t.Fatalf("expected 3 bases, got %v", s.ValidBases)
	}
	// untouched fields keep their defaults
	if s.MinPalindromeLen != 20 {
		t.Fatalf("expected default min_basepair_len to survive, got %d", s.MinPalindromeLen)
	}
	if s.OutDir != "./results" {
		t.Fatalf("expected default out_dir to survive, got %q", s.OutDir)
	}
}

func TestLoadReplacesComplementMapWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{
		"valid_nucleobases": ["A", "B", "C"],
		"complement_map": {"A": "A", "B": "B", "C": "C"}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if len(s.ComplementMap) != 3 {
		t.Fatalf("expected default pairings to be dropped, got %v", s.ComplementMap)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected custom alphabet to validate, got %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"top_n": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected malformed settings file to fail")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Settings)
		field string
	}{
		{"empty bases", func(s *Settings) { s.ValidBases = nil }, "valid_nucleobases"},
		{"multichar base", func(s *Settings) { s.ValidBases = []string{"A", "CG"} }, "valid_nucleobases"},
		{"multichar pairing", func(s *Settings) { s.ComplementMap = map[string]string{"A": "TT"} }, "complement_map"},
		{"pairing outside set", func(s *Settings) { s.ComplementMap = map[string]string{"N": "N"} }, "complement_map"},
		{"zero k", func(s *Settings) { s.KValues = []int{3, 0} }, "k_values"},
		{"negative k", func(s *Settings) { s.KValues = []int{-1} }, "k_values"},
		{"zero palindrome length", func(s *Settings) { s.MinPalindromeLen = 0 }, "min_basepair_len"},
		{"zero diversity", func(s *Settings) { s.MinPalindromeBases = 0 }, "min_bases"},
		{"negative top_n", func(s *Settings) { s.TopN = -1 }, "top_n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mut(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation to fail")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestValidateAcceptsEmptyKValues(t *testing.T) {
	s := Default()
	s.KValues = nil
	if err := s.Validate(); err != nil {
		t.Fatalf("expected empty k_values to be allowed, got %v", err)
	}
}

func TestAlphabetFromSettings(t *testing.T) {
	ab, err := Default().Alphabet()
	if err != nil {
		t.Fatalf("expected alphabet from defaults, got %v", err)
	}
	if !ab.Valid('A') || !ab.Valid('T') || ab.Valid('N') {
		t.Fatal("expected default alphabet to accept ACGT only")
	}
	c, ok := ab.Complement('G')
	if !ok || c != 'C' {
		t.Fatalf("expected complement of G to be C, got %q (%v)", c, ok)
	}
}
