// Package annotate turns filtered statements into finished edge
// annotations: it deduplicates and groups statements, classifies their
// direction, renders the relationship text, and assembles the edge
// attribute set.
package annotate

import (
	"strings"

	"github.com/ndexbio/indranet/internal/model"
)

// Oriented is a statement tagged with its orientation relative to the
// normalized node pair it was bucketed under.
type Oriented struct {
	model.Statement

	// Reversed is true when the statement's subject is the pair's
	// target node rather than its source node.
	Reversed bool
}

// RelationshipGroup is the unit fed to the formatter: statements sharing
// an english description, deduplicated by hash, with summed evidence.
type RelationshipGroup struct {
	English       string
	Type          string
	Subject       string
	Object        string
	EvidenceCount int
	EvidenceLink  string
	Reversed      bool
}

// Dedupe removes statements with duplicate hash values, keeping the
// first occurrence. The hash is the true statement identity; the same
// claim can come back from multiple query angles.
func Dedupe(stmts []Oriented) []Oriented {
	seen := make(map[int64]bool, len(stmts))
	var unique []Oriented
	for _, s := range stmts {
		if seen[s.Hash] {
			continue
		}
		seen[s.Hash] = true
		unique = append(unique, s)
	}
	return unique
}

// Group merges statements sharing an english description into one
// RelationshipGroup each, summing evidence counts across distinct
// hashes. The first statement of a group is its representative and the
// trailing period of the english text is stripped for display. Group
// order follows first appearance.
func Group(stmts []Oriented) []RelationshipGroup {
	index := make(map[string]int)
	var groups []RelationshipGroup
	for _, s := range stmts {
		english := strings.TrimSuffix(s.English, ".")
		if i, ok := index[english]; ok {
			groups[i].EvidenceCount += s.EvidenceCount
			continue
		}
		index[english] = len(groups)
		groups = append(groups, RelationshipGroup{
			English:       english,
			Type:          s.Type,
			Subject:       s.SubjectName,
			Object:        s.ObjectName,
			EvidenceCount: s.EvidenceCount,
			EvidenceLink:  s.EvidenceLink,
			Reversed:      s.Reversed,
		})
	}
	return groups
}
