package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Curation is one curator verdict on a single evidence item of a
// statement. PAHash identifies the statement, SourceHash the evidence
// item the verdict applies to.
type Curation struct {
	ID         int    `json:"id,omitempty"`
	PAHash     int64  `json:"pa_hash"`
	SourceHash int64  `json:"source_hash"`
	Tag        string `json:"tag"`
	Curator    string `json:"curator,omitempty"`
	Date       string `json:"date,omitempty"`
}

// CurationIndex maps statement hashes to the curations recorded for them.
type CurationIndex map[int64][]Curation

// NewCurationIndex groups a flat curation list by statement hash.
func NewCurationIndex(curations []Curation) CurationIndex {
	idx := make(CurationIndex)
	for _, c := range curations {
		idx[c.PAHash] = append(idx[c.PAHash], c)
	}
	return idx
}

// LoadCurations reads a curation JSON file (a flat list of curation
// records) and returns the per-statement index.
func LoadCurations(path string) (CurationIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curations: %w", err)
	}
	var curations []Curation
	if err := json.Unmarshal(data, &curations); err != nil {
		return nil, fmt.Errorf("parse curations: %w", err)
	}
	return NewCurationIndex(curations), nil
}
