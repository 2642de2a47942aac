package model

import "strings"

// Statement represents one extracted interaction claim between two
// biological entities, with the provenance fields used for filtering
// and scoring.
type Statement struct {
	Hash          int64          `json:"stmt_hash"`
	Type          string         `json:"stmt_type"`
	SubjectName   string         `json:"subject_name,omitempty"` // empty for multi-party types
	ObjectName    string         `json:"object_name,omitempty"`
	Members       []string       `json:"members,omitempty"` // participants of multi-party types
	English       string         `json:"english"`
	EvidenceCount int            `json:"evidence_count"`
	SourceCounts  map[string]int `json:"source_counts"`
	Belief        float64        `json:"belief,omitempty"`
	EvidenceLink  string         `json:"db_url_hash,omitempty"`

	// Curations holds curator verdicts attached at ingestion from the
	// curation file; each verdict applies to one evidence item.
	Curations []Curation `json:"-"`
}

// Clone returns a deep copy. Filters operate on copies so that a
// rejected or mutated statement never aliases the ingested one.
func (s Statement) Clone() Statement {
	c := s
	if s.SourceCounts != nil {
		c.SourceCounts = make(map[string]int, len(s.SourceCounts))
		for k, v := range s.SourceCounts {
			c.SourceCounts[k] = v
		}
	}
	if s.Members != nil {
		c.Members = append([]string(nil), s.Members...)
	}
	if s.Curations != nil {
		c.Curations = append([]Curation(nil), s.Curations...)
	}
	return c
}

// Participants returns the distinct entity names taking part in the
// statement: members for multi-party types, subject and object otherwise.
func (s Statement) Participants() []string {
	if len(s.Members) > 0 {
		return distinct(s.Members)
	}
	var names []string
	if s.SubjectName != "" {
		names = append(names, s.SubjectName)
	}
	if s.ObjectName != "" {
		names = append(names, s.ObjectName)
	}
	return distinct(names)
}

// IsMalformed reports whether the statement is missing a required field:
// type, english text, or participant identity.
func (s Statement) IsMalformed() bool {
	if strings.TrimSpace(s.Type) == "" || strings.TrimSpace(s.English) == "" {
		return true
	}
	return len(s.Participants()) == 0
}

func distinct(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Participant is one endpoint of an edge as reported by the INDRA
// subgraph service.
type Participant struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Lookup     string `json:"lookup,omitempty"`
}

// EdgeEvidence is one entry of the subgraph response: the pair of
// participants plus the raw statements keyed by statement hash.
type EdgeEvidence struct {
	Edge      []Participant         `json:"edge"`
	Stmts     map[string]*Statement `json:"stmts"`
	Belief    float64               `json:"belief,omitempty"`
	DBURLEdge string                `json:"db_url_edge,omitempty"`
}

// SubgraphResult is the full response from the INDRA subgraph endpoint.
type SubgraphResult struct {
	Edges []EdgeEvidence `json:"edges"`
}
