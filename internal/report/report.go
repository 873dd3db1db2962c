// Package report serializes a result record to JSON files under the
// configured output directory, one file per statistic family plus a
// combined results.json for the browser. The shape on disk is exactly the
// result record; nothing is transformed beyond encoding.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dnascan/internal/analysis"
)

// File names written under the output directory.
const (
	GCFile            = "gc_stats.json"
	DinucleotideFile  = "dnt_stats.json"
	KmerFile          = "k_mer_stats.json"
	KmerAggregateFile = "k_mer_stats_aggregate.json"
	PalindromeFile    = "palindrome_stats.json"
	InvalidFile       = "invalid_stats.json"
	ResultsFile       = "results.json"
)

// Write stores res under dir, creating the directory if absent. The k-mer
// file name records the reduction mode: per-sequence rankings go to
// k_mer_stats.json, the merged dataset ranking to
// k_mer_stats_aggregate.json. Returns the paths written.
func Write(dir string, res *analysis.Result, perSequenceKmers bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create %s: %w", dir, err)
	}
	kmerFile := KmerAggregateFile
	if perSequenceKmers {
		kmerFile = KmerFile
	}
	parts := []struct {
		name string
		v    any
	}{
		{GCFile, res.GC},
		{DinucleotideFile, res.Dinucleotides},
		{kmerFile, res.Kmers},
		{PalindromeFile, res.Palindromes},
		{InvalidFile, res.Invalid},
		{ResultsFile, res},
	}
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		path := filepath.Join(dir, p.name)
		if err := writeJSON(path, p.v); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Load reads a combined results.json written by Write.
func Load(path string) (*analysis.Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: read %s: %w", path, err)
	}
	var res analysis.Result
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("report: parse %s: %w", path, err)
	}
	return &res, nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encode %s: %w", filepath.Base(path), err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
