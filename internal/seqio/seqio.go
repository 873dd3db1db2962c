// Package seqio loads sequence datasets from disk. Two formats are
// understood: the sequence-list JSON layout ({"sequences": [...]}) and
// FASTA. Parsing stays simple and conservative; anything malformed is
// reported here, before the engine sees the data.
package seqio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sequence is one dataset entry. Index is the 0-based position in dataset
// order, assigned at load time. Header is empty for JSON datasets.
type Sequence struct {
	Index  int
	Header string
	Data   string
}

// ParseFasta reads FASTA records from r. Lines beginning with '>' denote
// headers; sequence lines are concatenated. Records without a header are
// dropped.
func ParseFasta(r io.Reader) []Sequence {
	scanner := bufio.NewScanner(r)
	var seqs []Sequence
	var current Sequence
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ">") {
			if current.Header != "" {
				seqs = append(seqs, current)
			}
			current = Sequence{Header: line[1:]}
		} else {
			current.Data += line
		}
	}
	if current.Header != "" {
		seqs = append(seqs, current)
	}
	for i := range seqs {
		seqs[i].Index = i
	}
	return seqs
}

// ParseJSON reads a sequence-list dataset from r. The layout is
// {"sequences": ["ACGT", ...]}; unknown fields are ignored. A non-string
// element is a decode error.
func ParseJSON(r io.Reader) ([]Sequence, error) {
	var doc struct {
		Sequences []string `json:"sequences"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("seqio: parse dataset: %w", err)
	}
	seqs := make([]Sequence, len(doc.Sequences))
	for i, data := range doc.Sequences {
		seqs[i] = Sequence{Index: i, Data: data}
	}
	return seqs, nil
}

// LoadFile opens path and parses it, choosing the format by file
// extension: .json for sequence-list JSON, .fasta or .fa for FASTA.
func LoadFile(path string) ([]Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seqio: open dataset: %w", err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(f)
	case ".fasta", ".fa":
		return ParseFasta(f), nil
	default:
		return nil, fmt.Errorf("seqio: unsupported dataset format %q", filepath.Ext(path))
	}
}
