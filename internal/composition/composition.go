// Package composition computes per-sequence base-composition statistics:
// the GC distribution and skew, and the dinucleotide frequency matrix.
// Only positions holding valid bases contribute; everything else is
// skipped, never guessed at.
package composition

import "dnascan/internal/alphabet"

// GCStats describes the GC content of one sequence.
//
// Distribution is the fraction of valid bases that are G or C, in [0,1].
// Skew is (G-C)/(G+C), in [-1,1]. Both are defined as 0 when their
// denominator is 0 (no valid bases, or no G and no C), so callers never
// see NaN.
type GCStats struct {
	Distribution float64 `json:"gc_distribution"`
	Skew         float64 `json:"gc_skew"`
}

// GC computes the GC stats for one sequence. Characters outside the valid
// set are excluded from both numerator and denominator.
func GC(seq string, ab *alphabet.Alphabet) GCStats {
	var g, c, valid int
	for i := 0; i < len(seq); i++ {
		b := seq[i]
		if !ab.Valid(b) {
			continue
		}
		valid++
		switch b {
		case 'G':
			g++
		case 'C':
			c++
		}
	}
	var stats GCStats
	if valid > 0 {
		stats.Distribution = float64(g+c) / float64(valid)
	}
	if g+c > 0 {
		stats.Skew = float64(g-c) / float64(g+c)
	}
	return stats
}

// Matrix maps every ordered pair of valid bases ("AA", "AC", ...) to the
// fraction of counted adjacent pairs holding that combination. Every
// alphabet-size² cell is present, zero-filled when unobserved.
type Matrix map[string]float64

// EmptyMatrix returns the all-zero matrix for ab. It is also the documented
// result for sequences with fewer than two adjacent valid bases.
func EmptyMatrix(ab *alphabet.Alphabet) Matrix {
	bases := ab.Bases()
	m := make(Matrix, len(bases)*len(bases))
	for _, i := range bases {
		for _, j := range bases {
			m[string([]byte{i, j})] = 0
		}
	}
	return m
}

// Dinucleotides computes the frequency matrix for one sequence. Every
// adjacent position pair (i, i+1) where both characters are valid
// increments its cell; cells are then normalized by the number of pairs
// counted. Pairs spanning an invalid base are skipped entirely.
func Dinucleotides(seq string, ab *alphabet.Alphabet) Matrix {
	m := EmptyMatrix(ab)
	counts := make(map[string]int)
	total := 0
	for i := 0; i+1 < len(seq); i++ {
		if !ab.Valid(seq[i]) || !ab.Valid(seq[i+1]) {
			continue
		}
		counts[seq[i:i+2]]++
		total++
	}
	if total == 0 {
		return m
	}
	for pair, n := range counts {
		m[pair] = float64(n) / float64(total)
	}
	return m
}

// Mean returns the element-wise mean of the given matrices. All inputs
// must share the same cell set; the result reuses the keys of the first.
// Calling Mean with no matrices returns nil, so callers with an empty
// contributor set should fall back to EmptyMatrix.
func Mean(matrices []Matrix) Matrix {
	if len(matrices) == 0 {
		return nil
	}
	out := make(Matrix, len(matrices[0]))
	for pair := range matrices[0] {
		sum := 0.0
		for _, m := range matrices {
			sum += m[pair]
		}
		out[pair] = sum / float64(len(matrices))
	}
	return out
}
