package palindrome

import (
	"strings"
	"testing"

	"dnascan/internal/alphabet"
)

func watsonCrick(t *testing.T) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New([]byte("ACGT"), map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C'})
	if err != nil {
		t.Fatalf("alphabet.New failed: %v", err)
	}
	return a
}

// identityABC mirrors the toy dataset alphabet: every base pairs with
// itself, so the detector reports literal character-mirror palindromes.
func identityABC(t *testing.T) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New([]byte("ABC"), map[byte]byte{'A': 'A', 'B': 'B', 'C': 'C'})
	if err != nil {
		t.Fatalf("alphabet.New failed: %v", err)
	}
	return a
}

// revComp builds the reverse complement of sub, failing the test when a
// character has no pairing.
func revComp(t *testing.T, ab *alphabet.Alphabet, sub string) string {
	t.Helper()
	out := make([]byte, len(sub))
	for i := 0; i < len(sub); i++ {
		c, ok := ab.Complement(sub[len(sub)-1-i])
		if !ok {
			t.Fatalf("no complement defined for %c in %q", sub[len(sub)-1-i], sub)
		}
		out[i] = c
	}
	return string(out)
}

func TestFindRestrictionSite(t *testing.T) {
	ab := watsonCrick(t)
	got := Find("GAATTC", ab, 4, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 findings, got %v", got)
	}
	if got[0].Start != 0 || got[0].Substring != "GAATTC" {
		t.Errorf("finding[0] = %+v, want full site at start 0", got[0])
	}
	if got[1].Start != 1 || got[1].Substring != "AATT" {
		t.Errorf("finding[1] = %+v, want AATT at start 1", got[1])
	}
}

func TestFindReportsMaximalPerStart(t *testing.T) {
	ab := watsonCrick(t)
	// ATAT is a palindrome at start 0 and so is its prefix AT; only the
	// longer one may be reported for that start.
	got := Find("ATAT", ab, 2, 2)
	if len(got) != 3 {
		t.Fatalf("expected 3 findings, got %v", got)
	}
	if got[0].Start != 0 || got[0].Length != 4 {
		t.Fatalf("start 0 must carry the maximal length 4, got %+v", got[0])
	}
	if got[1].Substring != "TA" || got[2].Substring != "AT" {
		t.Fatalf("unexpected tail findings: %v", got[1:])
	}
}

func TestFindMinLengthInclusive(t *testing.T) {
	ab := watsonCrick(t)
	if got := Find("ACGT", ab, 4, 2); len(got) != 1 || got[0].Length != 4 {
		t.Fatalf("length 4 must qualify at minLen 4, got %v", got)
	}
	if got := Find("ACGT", ab, 5, 2); got != nil {
		t.Fatalf("expected no findings at minLen 5, got %v", got)
	}
}

func TestFindDiversityGate(t *testing.T) {
	ab := watsonCrick(t)
	if got := Find("AAAATTTT", ab, 8, 2); len(got) != 1 || got[0].Substring != "AAAATTTT" {
		t.Fatalf("expected the full palindrome, got %v", got)
	}
	if got := Find("AAAATTTT", ab, 8, 3); got != nil {
		t.Fatalf("diversity 2 must not pass a minimum of 3, got %v", got)
	}
}

func TestFindingsAreReverseComplements(t *testing.T) {
	ab := watsonCrick(t)
	seqs := []string{"GAATTC", "TTTGGATCCAAA", "ACGTACGTTACG", "AATTAATT"}
	for _, seq := range seqs {
		for _, f := range Find(seq, ab, 2, 1) {
			if rc := revComp(t, ab, f.Substring); rc != f.Substring {
				t.Errorf("finding %q in %q is not its own reverse complement (%q)", f.Substring, seq, rc)
			}
			if f.Substring != seq[f.Start:f.Start+f.Length] {
				t.Errorf("finding %+v does not match its coordinates in %q", f, seq)
			}
		}
	}
}

func TestNoOddFindingsUnderWatsonCrick(t *testing.T) {
	ab := watsonCrick(t)
	for _, f := range Find("ACGTTGCAACGT", ab, 2, 1) {
		if f.Length%2 != 0 {
			t.Errorf("no base pairs with itself, yet got odd-length finding %+v", f)
		}
	}
}

func TestUnpairedCharactersBreakPalindromes(t *testing.T) {
	ab := watsonCrick(t)
	// N has no pairing, so the two AT arms cannot join across it
	got := Find("ATNAT", ab, 4, 1)
	if got != nil {
		t.Fatalf("expected no findings across unpaired N, got %v", got)
	}
}

func TestFindDegenerateInputs(t *testing.T) {
	ab := watsonCrick(t)
	if got := Find("", ab, 2, 1); got != nil {
		t.Fatalf("empty sequence: got %v", got)
	}
	if got := Find("AT", ab, 5, 1); got != nil {
		t.Fatalf("minLen beyond sequence: got %v", got)
	}
}

// The toy cases below mirror the behavior of the identity pairing, where
// the scan reduces to literal palindromes.

func TestIdentityToySequence(t *testing.T) {
	ab := identityABC(t)
	seq := "ABACACBBCA"

	got := Find(seq, ab, 3, 2)
	odd, even := 0, 0
	for _, f := range got {
		if f.Length%2 == 0 {
			even++
		} else {
			odd++
		}
	}
	if odd != 3 || even != 2 {
		t.Fatalf("expected 3 odd and 2 even findings, got %d odd %d even (%v)", odd, even, got)
	}

	if got := Find(seq, ab, 6, 2); len(got) != 1 || got[0].Substring != "ACBBCA" {
		t.Fatalf("expected only ACBBCA at minLen 6, got %v", got)
	}
	if got := Find(seq, ab, 3, 3); len(got) != 1 || got[0].Substring != "ACBBCA" {
		t.Fatalf("expected only ACBBCA at diversity 3, got %v", got)
	}
}

func TestIdentityNoDiversity(t *testing.T) {
	ab := identityABC(t)
	for _, seq := range []string{"AAAAAAAAAA", "ABBBBBBBBB", "CCCCCCCCCX"} {
		if got := Find(seq, ab, 2, 2); got != nil {
			t.Errorf("expected no findings in %q, got %v", seq, got)
		}
	}
}

func TestIdentityFullLengthRepeat(t *testing.T) {
	ab, err := alphabet.New([]byte("ACGT"), map[byte]byte{'A': 'A', 'C': 'C', 'G': 'G', 'T': 'T'})
	if err != nil {
		t.Fatalf("alphabet.New failed: %v", err)
	}
	seq := "T" + strings.Repeat("CA", 14) + "CT" // 31 characters, mirror-symmetric
	got := Find(seq, ab, 20, 2)
	if len(got) == 0 {
		t.Fatal("expected findings")
	}
	if got[0].Start != 0 || got[0].Length != len(seq) {
		t.Fatalf("expected the full 31-character palindrome at start 0, got %+v", got[0])
	}
	for _, f := range got {
		if f.Length < 20 {
			t.Errorf("finding below minimum length: %+v", f)
		}
	}
}
