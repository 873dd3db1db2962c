// Package palindrome locates substrings that read as their own reverse
// complement under the configured pairing, such as restriction sites like
// GAATTC. With an identity pairing the same scan degenerates to literal
// character-mirror palindromes.
package palindrome

import (
	"sort"

	"dnascan/internal/alphabet"
)

// Finding is the maximal qualifying palindrome at one start position.
type Finding struct {
	Start     int    `json:"pos"`
	Length    int    `json:"length"`
	Substring string `json:"substring"`
}

// Find returns every maximal palindrome of seq that is at least minLen
// characters long and contains at least minDiversity distinct valid bases.
// At most one finding is reported per start position, the longest
// palindrome starting there; shorter palindromes nested at the same start
// are folded into it. Findings come back ordered by start position.
//
// The scan expands around every odd and even center while the boundary
// characters pair with each other, recording the widest extent seen for
// each start. Worst case is quadratic in the sequence length, which is
// fine for the dataset sizes this tool targets.
func Find(seq string, ab *alphabet.Alphabet, minLen, minDiversity int) []Finding {
	n := len(seq)
	if n == 0 || minLen > n {
		return nil
	}

	best := make(map[int]int) // start position -> maximal palindromic length
	expand := func(lo, hi int) {
		for lo >= 0 && hi < n && paired(ab, seq[lo], seq[hi]) {
			if length := hi - lo + 1; length > best[lo] {
				best[lo] = length
			}
			lo--
			hi++
		}
	}
	for i := 0; i < n; i++ {
		expand(i, i)   // odd length, single-character center
		expand(i, i+1) // even length, split center
	}

	findings := make([]Finding, 0, len(best))
	for start, length := range best {
		if length < minLen {
			continue
		}
		sub := seq[start : start+length]
		if diversity(sub, ab) < minDiversity {
			continue
		}
		findings = append(findings, Finding{Start: start, Length: length, Substring: sub})
	}
	if len(findings) == 0 {
		return nil
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].Start < findings[j].Start })
	return findings
}

// paired reports whether x and y complement each other in both directions.
// A substring s is its own reverse complement exactly when s[i] pairs with
// s[len-1-i] for every offset, so the expansion only needs to test the two
// boundary characters at each step. Characters without a pairing never
// match, which keeps palindromes inside the mapped alphabet.
func paired(ab *alphabet.Alphabet, x, y byte) bool {
	cx, ok := ab.Complement(x)
	if !ok || cx != y {
		return false
	}
	cy, ok := ab.Complement(y)
	return ok && cy == x
}

// diversity counts the distinct valid bases present in sub.
func diversity(sub string, ab *alphabet.Alphabet) int {
	var seen [256]bool
	count := 0
	for i := 0; i < len(sub); i++ {
		b := sub[i]
		if ab.Valid(b) && !seen[b] {
			seen[b] = true
			count++
		}
	}
	return count
}
