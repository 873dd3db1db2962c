// Package kmer counts fixed-length substrings over the valid-base runs of
// a sequence and ranks the most frequent ones. Counting windows never span
// an invalid base: a run is counted on its own, so a k-mer touching an
// excluded position simply does not exist.
package kmer

import (
	"sort"

	"dnascan/internal/alphabet"
)

// Table maps a k-length substring to its occurrence count.
type Table map[string]int

// Count slides a window of width k across every valid-base run of seq and
// tallies the windows. k values that fit no run (including k <= 0) yield an
// empty table rather than an error. Counting is a pure function of its
// inputs: repeated calls return identical tables.
func Count(seq string, k int, ab *alphabet.Alphabet) Table {
	t := make(Table)
	if k <= 0 {
		return t
	}
	for _, run := range ab.ValidRuns(seq) {
		for i := 0; i+k <= len(run.Text); i++ {
			t[run.Text[i:i+k]]++
		}
	}
	return t
}

// Merge adds the counts of src into dst.
func Merge(dst, src Table) {
	for kmer, n := range src {
		dst[kmer] += n
	}
}

// Entry is one ranked k-mer with its count.
type Entry struct {
	Kmer  string `json:"kmer"`
	Count int    `json:"count"`
}

// Ranked is an ordered ranking, most frequent first.
type Ranked []Entry

// TopN ranks the table and keeps at most n entries. Order is descending by
// count; equal counts are broken by ascending lexicographic order of the
// k-mer so the ranking is deterministic.
func TopN(t Table, n int) Ranked {
	ranked := make(Ranked, 0, len(t))
	if n <= 0 {
		return ranked
	}
	for kmer, count := range t {
		ranked = append(ranked, Entry{Kmer: kmer, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Kmer < ranked[j].Kmer
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Ranker folds the per-sequence tables for one k value into ranked lists.
// The strategy is chosen once, from configuration, instead of branching at
// every call site. Observe must be called once per sequence in dataset
// order; Rankings returns the fold.
type Ranker interface {
	Observe(t Table)
	Rankings() []Ranked
}

// NewRanker returns the per-sequence strategy when perSequence is true and
// the merged global strategy otherwise.
func NewRanker(perSequence bool, n int) Ranker {
	if perSequence {
		return &perSequenceRanker{n: n, lists: []Ranked{}}
	}
	return &globalRanker{n: n, acc: make(Table)}
}

// globalRanker merges every observed table and reports a single ranking.
type globalRanker struct {
	n   int
	acc Table
}

func (r *globalRanker) Observe(t Table) { Merge(r.acc, t) }

// Rankings returns a one-element slice holding the merged ranking.
func (r *globalRanker) Rankings() []Ranked { return []Ranked{TopN(r.acc, r.n)} }

// perSequenceRanker ranks each observed table on its own, preserving
// dataset order so list positions line up with sequence indices.
type perSequenceRanker struct {
	n     int
	lists []Ranked
}

func (r *perSequenceRanker) Observe(t Table) { r.lists = append(r.lists, TopN(t, r.n)) }

func (r *perSequenceRanker) Rankings() []Ranked { return r.lists }
