// Package analysis drives the per-sequence components over a dataset and
// folds their outputs into a single result record. The fold is explicit:
// accumulators live in Run, nothing is shared between calls, and the same
// dataset always produces the same record.
package analysis

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"dnascan/internal/alphabet"
	"dnascan/internal/composition"
	"dnascan/internal/config"
	"dnascan/internal/kmer"
	"dnascan/internal/palindrome"
	"dnascan/internal/seqio"
)

// DegenerateSequenceError describes a sequence the reductions cannot use:
// empty, or containing no valid base. It is absorbed inside Run (logged,
// recorded, zero-weighted) and never returned to the caller.
type DegenerateSequenceError struct {
	Index  int
	Reason string
}

func (e *DegenerateSequenceError) Error() string {
	return fmt.Sprintf("sequence %d is degenerate: %s", e.Index, e.Reason)
}

// Extreme names the sequence holding a dataset extreme along with its full
// stats record. Index is -1 when every sequence was degenerate.
type Extreme struct {
	Index int                 `json:"sequence"`
	Stats composition.GCStats `json:"stats"`
}

// GCSummary is the dataset-level GC reduction: field-wise mean plus the
// four extremes, all over non-degenerate sequences only.
type GCSummary struct {
	Mean            composition.GCStats `json:"mean"`
	MaxDistribution Extreme             `json:"max_distribution"`
	MinDistribution Extreme             `json:"min_distribution"`
	MaxSkew         Extreme             `json:"max_skew"`
	MinSkew         Extreme             `json:"min_skew"`
}

// DinucleotideSummary carries the element-wise mean matrix over
// non-degenerate sequences and every per-sequence matrix in dataset order.
type DinucleotideSummary struct {
	Mean        composition.Matrix   `json:"mean"`
	PerSequence []composition.Matrix `json:"per_sequence"`
}

// Ranking holds the k-mer rankings for one configured k. Global mode
// yields a single ranking; per-sequence mode yields one per sequence in
// dataset order.
type Ranking struct {
	K        int           `json:"k"`
	Rankings []kmer.Ranked `json:"rankings"`
}

// SequenceInfo is the per-sequence overview row kept for browsing the
// results afterwards.
type SequenceInfo struct {
	Index      int                 `json:"index"`
	Header     string              `json:"header,omitempty"`
	Length     int                 `json:"length"`
	GC         composition.GCStats `json:"gc"`
	Degenerate bool                `json:"degenerate,omitempty"`
}

// Result is the complete outcome of one dataset run.
type Result struct {
	Sequences     []SequenceInfo         `json:"sequences"`
	GC            GCSummary              `json:"gc"`
	Dinucleotides DinucleotideSummary    `json:"dinucleotides"`
	Kmers         []Ranking              `json:"k_mers"`
	Palindromes   map[int]map[int]string `json:"palindromes"`
	Invalid       map[int]map[int]string `json:"invalid"`
	Degenerate    []int                  `json:"degenerate"`
}

// Analyzer runs the configured components over datasets. Construct with
// New; the zero value is not usable.
type Analyzer struct {
	cfg *config.Settings
	ab  *alphabet.Alphabet
	log *log.Logger
}

// New validates the settings and builds an Analyzer. A validation failure
// is fatal: it is returned before any sequence is touched. A nil logger
// discards engine logging.
func New(cfg *config.Settings, logger *log.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ab, err := cfg.Alphabet()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Analyzer{cfg: cfg, ab: ab, log: logger}, nil
}

// check classifies a sequence the reductions cannot use.
func (a *Analyzer) check(s seqio.Sequence) *DegenerateSequenceError {
	if len(s.Data) == 0 {
		return &DegenerateSequenceError{Index: s.Index, Reason: "empty sequence"}
	}
	for i := 0; i < len(s.Data); i++ {
		if a.ab.Valid(s.Data[i]) {
			return nil
		}
	}
	return &DegenerateSequenceError{Index: s.Index, Reason: "no valid bases"}
}

// Run feeds every sequence, in dataset order, through invalid-base
// scanning, composition, k-mer counting, and palindrome detection, then
// folds the per-sequence outputs into the dataset summary. Degenerate
// sequences are logged at warn level, recorded with zeroed stats, and
// excluded from the mean and extreme reductions; processing always
// continues.
func (a *Analyzer) Run(seqs []seqio.Sequence) *Result {
	res := &Result{
		Sequences:   make([]SequenceInfo, len(seqs)),
		Kmers:       make([]Ranking, 0, len(a.cfg.KValues)),
		Palindromes: make(map[int]map[int]string),
		Invalid:     make(map[int]map[int]string),
		Degenerate:  []int{},
	}

	rankers := make([]kmer.Ranker, len(a.cfg.KValues))
	for i := range rankers {
		rankers[i] = kmer.NewRanker(a.cfg.PerSequenceKmers, a.cfg.TopN)
	}

	perGC := make([]composition.GCStats, len(seqs))
	matrices := make([]composition.Matrix, len(seqs))
	skipped := make([]bool, len(seqs))

	for i, s := range seqs {
		if bad := a.ab.InvalidBases(s.Data); len(bad) > 0 {
			found := make(map[int]string, len(bad))
			for _, b := range bad {
				found[b.Pos] = string(b.Base)
			}
			res.Invalid[s.Index] = found
		}

		if derr := a.check(s); derr != nil {
			a.log.Warn("excluding degenerate sequence", "sequence", s.Index, "reason", derr.Reason)
			skipped[i] = true
			res.Degenerate = append(res.Degenerate, s.Index)
			matrices[i] = composition.EmptyMatrix(a.ab)
			for _, r := range rankers {
				r.Observe(kmer.Table{})
			}
			res.Sequences[i] = SequenceInfo{
				Index:      s.Index,
				Header:     s.Header,
				Length:     len(s.Data),
				Degenerate: true,
			}
			continue
		}

		perGC[i] = composition.GC(s.Data, a.ab)
		matrices[i] = composition.Dinucleotides(s.Data, a.ab)
		for j, k := range a.cfg.KValues {
			rankers[j].Observe(kmer.Count(s.Data, k, a.ab))
		}
		if findings := palindrome.Find(s.Data, a.ab, a.cfg.MinPalindromeLen, a.cfg.MinPalindromeBases); len(findings) > 0 {
			found := make(map[int]string, len(findings))
			for _, f := range findings {
				found[f.Start] = f.Substring
			}
			res.Palindromes[s.Index] = found
		}
		res.Sequences[i] = SequenceInfo{
			Index:  s.Index,
			Header: s.Header,
			Length: len(s.Data),
			GC:     perGC[i],
		}
	}

	res.GC = a.foldGC(seqs, perGC, skipped)
	res.Dinucleotides = a.foldDinucleotides(matrices, skipped)
	for j, k := range a.cfg.KValues {
		res.Kmers = append(res.Kmers, Ranking{K: k, Rankings: rankers[j].Rankings()})
	}
	return res
}

// foldGC computes the dataset mean and extremes over the sequences that
// survived the degeneracy check. Ties keep the earliest sequence.
func (a *Analyzer) foldGC(seqs []seqio.Sequence, perGC []composition.GCStats, skipped []bool) GCSummary {
	sum := composition.GCStats{}
	n := 0
	none := Extreme{Index: -1}
	s := GCSummary{MaxDistribution: none, MinDistribution: none, MaxSkew: none, MinSkew: none}
	for i := range seqs {
		if skipped[i] {
			continue
		}
		st := perGC[i]
		sum.Distribution += st.Distribution
		sum.Skew += st.Skew
		n++
		if s.MaxDistribution.Index < 0 || st.Distribution > s.MaxDistribution.Stats.Distribution {
			s.MaxDistribution = Extreme{Index: seqs[i].Index, Stats: st}
		}
		if s.MinDistribution.Index < 0 || st.Distribution < s.MinDistribution.Stats.Distribution {
			s.MinDistribution = Extreme{Index: seqs[i].Index, Stats: st}
		}
		if s.MaxSkew.Index < 0 || st.Skew > s.MaxSkew.Stats.Skew {
			s.MaxSkew = Extreme{Index: seqs[i].Index, Stats: st}
		}
		if s.MinSkew.Index < 0 || st.Skew < s.MinSkew.Stats.Skew {
			s.MinSkew = Extreme{Index: seqs[i].Index, Stats: st}
		}
	}
	if n > 0 {
		s.Mean = composition.GCStats{
			Distribution: sum.Distribution / float64(n),
			Skew:         sum.Skew / float64(n),
		}
	}
	return s
}

// foldDinucleotides averages the surviving matrices element-wise and keeps
// every per-sequence matrix in dataset order.
func (a *Analyzer) foldDinucleotides(matrices []composition.Matrix, skipped []bool) DinucleotideSummary {
	live := make([]composition.Matrix, 0, len(matrices))
	for i, m := range matrices {
		if !skipped[i] {
			live = append(live, m)
		}
	}
	mean := composition.Mean(live)
	if mean == nil {
		mean = composition.EmptyMatrix(a.ab)
	}
	return DinucleotideSummary{Mean: mean, PerSequence: matrices}
}
