// Package alphabet defines the recognized nucleobase set for an analysis
// run. Membership and complement lookups are byte-indexed tables so the
// scanning components can classify characters without allocations.
package alphabet

import "errors"

// ErrEmpty is returned when an Alphabet is constructed without any bases.
var ErrEmpty = errors.New("alphabet: no valid bases")

// Alphabet holds the valid-base set and the complement pairing for one
// analysis run. The zero value is not usable; construct with New.
type Alphabet struct {
	valid      [256]bool
	complement [256]byte // 0 means no pairing defined for that byte
	bases      []byte    // configured order, used for matrix axes
}

// New builds an Alphabet from the valid bases (in the order the caller wants
// matrix axes reported) and a complement pairing. Pairings for characters
// outside the valid set are ignored. An empty base set is an error.
func New(bases []byte, pairs map[byte]byte) (*Alphabet, error) {
	if len(bases) == 0 {
		return nil, ErrEmpty
	}
	a := &Alphabet{}
	for _, b := range bases {
		if !a.valid[b] {
			a.valid[b] = true
			a.bases = append(a.bases, b)
		}
	}
	for from, to := range pairs {
		if a.valid[from] {
			a.complement[from] = to
		}
	}
	return a, nil
}

// Valid reports whether b belongs to the valid-base set.
func (a *Alphabet) Valid(b byte) bool { return a.valid[b] }

// Complement returns the pairing partner of b. The second return is false
// when no pairing is defined for b.
func (a *Alphabet) Complement(b byte) (byte, bool) {
	c := a.complement[b]
	if c == 0 {
		return 0, false
	}
	return c, true
}

// Bases returns the valid bases in configured order.
func (a *Alphabet) Bases() []byte {
	out := make([]byte, len(a.bases))
	copy(out, a.bases)
	return out
}

// Size returns the number of valid bases.
func (a *Alphabet) Size() int { return len(a.bases) }

// InvalidBase is a single out-of-alphabet character and its 0-based offset.
type InvalidBase struct {
	Pos  int
	Base byte
}

// InvalidBases scans seq once and returns every position holding a
// character outside the valid set, in sequence order. A pure function of
// its inputs; calling it again yields the same findings.
func (a *Alphabet) InvalidBases(seq string) []InvalidBase {
	var found []InvalidBase
	for i := 0; i < len(seq); i++ {
		if !a.valid[seq[i]] {
			found = append(found, InvalidBase{Pos: i, Base: seq[i]})
		}
	}
	return found
}

// Run is a maximal stretch of consecutive valid bases within a sequence.
type Run struct {
	Start int
	Text  string
}

// ValidRuns splits seq into maximal runs of valid bases. Positions holding
// invalid characters separate runs, so no run ever spans one.
func (a *Alphabet) ValidRuns(seq string) []Run {
	var runs []Run
	start := -1
	for i := 0; i < len(seq); i++ {
		if a.valid[seq[i]] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, Run{Start: start, Text: seq[start:i]})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, Text: seq[start:]})
	}
	return runs
}
