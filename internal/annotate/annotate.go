package annotate

import (
	"fmt"
	"sort"

	"github.com/ndexbio/indranet/internal/filter"
	"github.com/ndexbio/indranet/internal/model"
)

// Network is the graph-store surface the orchestrator needs: node-name
// enumeration plus edge and attribute creation.
type Network interface {
	// NodeNameIndex maps every node name, family members included, to
	// its node id.
	NodeNameIndex() map[string]int64
	CreateEdge(source, target int64, interaction string) int64
	SetEdgeString(edge int64, name, value string)
	SetEdgeBool(edge int64, name string, value bool)
	SetEdgeDouble(edge int64, name string, value float64)
}

// Orchestrator drives filter, grouping, classification, formatting, and
// edge assembly for every node pair in a subgraph response.
type Orchestrator struct {
	formatter *Formatter
	curations model.CurationIndex
}

// NewOrchestrator creates an orchestrator. curations may be nil when no
// curation file was supplied.
func NewOrchestrator(formatter *Formatter, curations model.CurationIndex) *Orchestrator {
	return &Orchestrator{formatter: formatter, curations: curations}
}

type pair struct {
	srcID, tgtID     int64
	srcName, tgtName string
	stmts            []Oriented
}

// Run annotates the network from the subgraph result. An empty result is
// not an error: the summary simply reports zero edges added.
func (o *Orchestrator) Run(net Network, result *model.SubgraphResult) *model.AnnotationSummary {
	summary := &model.AnnotationSummary{RemovedByStage: make(map[string]int)}
	if result == nil || len(result.Edges) == 0 {
		return summary
	}

	nameToID := net.NodeNameIndex()
	nodeNames := make(map[string]bool, len(nameToID))
	for name := range nameToID {
		nodeNames[name] = true
	}
	chain := filter.DefaultChain(filter.NewEnv(nodeNames))

	pairIndex := make(map[string]int)
	var pairs []*pair

	for _, ev := range result.Edges {
		if len(ev.Edge) < 2 {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("skipping evidence entry with %d participants", len(ev.Edge)))
			continue
		}
		srcName := ev.Edge[0].Name
		tgtName := ev.Edge[1].Name

		srcID, srcOK := nameToID[srcName]
		tgtID, tgtOK := nameToID[tgtName]
		if !srcOK || !tgtOK {
			// The service offers nodes beyond the query network; those
			// pairs are ignored.
			continue
		}

		stmts := orderedStatements(ev)
		for i := range stmts {
			if stmts[i].SubjectName == "" {
				stmts[i].SubjectName = srcName
			}
			if stmts[i].ObjectName == "" {
				stmts[i].ObjectName = tgtName
			}
			if o.curations != nil {
				stmts[i].Curations = o.curations[stmts[i].Hash]
			}
		}
		summary.StatementsSeen += len(stmts)

		kept, removed, warnings := chain.Apply(stmts)
		for stage, n := range removed {
			summary.RemovedByStage[stage] += n
		}
		summary.Warnings = append(summary.Warnings, warnings...)
		summary.StatementsKept += len(kept)
		if len(kept) == 0 {
			continue
		}

		key, reversed := pairKey(srcID, tgtID)
		i, ok := pairIndex[key]
		if !ok {
			i = len(pairs)
			pairIndex[key] = i
			p := &pair{srcID: srcID, tgtID: tgtID, srcName: srcName, tgtName: tgtName}
			if reversed {
				p.srcID, p.tgtID = tgtID, srcID
				p.srcName, p.tgtName = tgtName, srcName
			}
			pairs = append(pairs, p)
		}
		for _, s := range kept {
			pairs[i].stmts = append(pairs[i].stmts, Oriented{Statement: s, Reversed: reversed})
		}
	}

	summary.PairsSeen = len(pairs)
	for _, p := range pairs {
		if o.annotatePair(net, p, summary) {
			summary.EdgesAdded++
		}
	}
	return summary
}

// annotatePair emits zero or one annotated edge for the pair.
func (o *Orchestrator) annotatePair(net Network, p *pair, summary *model.AnnotationSummary) bool {
	groups := Group(Dedupe(p.stmts))
	if len(groups) == 0 {
		return false
	}
	for _, g := range groups {
		if _, ok := Classify(g); !ok {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("unknown statement type %q treated as non-directional", g.Type))
		}
	}

	text, total := o.formatter.Format(p.srcName, p.tgtName, groups)
	if total <= 0 {
		// Zero evidence after filtering is an expected terminal state:
		// the pair is skipped, not annotated with empty text.
		return false
	}
	attrs := BuildEdgeAttributes(groups, text, total)

	edgeID := net.CreateEdge(p.srcID, p.tgtID, Interaction)
	net.SetEdgeString(edgeID, AttrRelationships, attrs.Relationships)
	net.SetEdgeString(edgeID, AttrSource, attrs.EdgeSource)
	net.SetEdgeDouble(edgeID, AttrRelationshipScore, attrs.RelationshipScore)
	net.SetEdgeBool(edgeID, AttrDirected, attrs.Directed)
	net.SetEdgeBool(edgeID, AttrReverseDirected, attrs.ReverseDirected)
	return true
}

// orderedStatements flattens the statement map into a deterministic
// slice. The wire format keys statements by hash in a JSON object, so
// ascending hash order stands in for discovery order and keeps reruns
// reproducible.
func orderedStatements(ev model.EdgeEvidence) []model.Statement {
	stmts := make([]model.Statement, 0, len(ev.Stmts))
	for _, s := range ev.Stmts {
		if s == nil {
			continue
		}
		stmts = append(stmts, s.Clone())
	}
	sort.Slice(stmts, func(i, j int) bool { return stmts[i].Hash < stmts[j].Hash })
	return stmts
}

// pairKey normalizes a node pair so both orientations bucket together.
// reversed reports that the target node id sorted first.
func pairKey(srcID, tgtID int64) (string, bool) {
	if srcID <= tgtID {
		return fmt.Sprintf("%d_%d", srcID, tgtID), false
	}
	return fmt.Sprintf("%d_%d", tgtID, srcID), true
}
