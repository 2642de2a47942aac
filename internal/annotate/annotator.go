package annotate

import "math"

// Edge attribute names written onto annotated edges.
const (
	// AttrSource marks the system that produced the edge.
	AttrSource = "__edge_source"

	// AttrRelationships holds the rendered relationship text.
	AttrRelationships = "Relationships"

	// AttrDirected is true when at least one forward statement exists.
	AttrDirected = "__directed"

	// AttrReverseDirected is true when at least one reverse statement
	// exists.
	AttrReverseDirected = "__reverse_directed"

	// AttrRelationshipScore holds the natural log of the pair's total
	// evidence count.
	AttrRelationshipScore = "__relationship_score"
)

// EdgeSourceValue is the value written to AttrSource.
const EdgeSourceValue = "INDRA"

// Interaction is the interaction label of every annotated edge.
const Interaction = "interacts with"

// EdgeAttributes is the assembled attribute set for one annotated edge.
type EdgeAttributes struct {
	Relationships     string
	Directed          bool
	ReverseDirected   bool
	RelationshipScore float64
	EdgeSource        string
}

// BuildEdgeAttributes assembles the attribute set from the classified
// groups, the rendered text, and the evidence total. The caller must not
// invoke it for a pair with zero total evidence; that pair produces no
// edge at all.
func BuildEdgeAttributes(groups []RelationshipGroup, text string, totalEvidence int) EdgeAttributes {
	if totalEvidence <= 0 {
		panic("annotate: BuildEdgeAttributes called with zero total evidence")
	}
	attrs := EdgeAttributes{
		Relationships:     text,
		RelationshipScore: math.Log(float64(totalEvidence)),
		EdgeSource:        EdgeSourceValue,
	}
	for _, g := range groups {
		switch dir, _ := Classify(g); dir {
		case Forward:
			attrs.Directed = true
		case Reverse:
			attrs.ReverseDirected = true
		}
	}
	return attrs
}
