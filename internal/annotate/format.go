package annotate

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// LinkRenderer turns a URL and a visible label into link markup. The
// formatter stays agnostic of the markup syntax so it can target
// different rendering backends.
type LinkRenderer func(url, label string) string

// HTMLLinkRenderer renders anchors the consuming network viewer
// understands. target controls the browser tab links open in.
func HTMLLinkRenderer(target string) LinkRenderer {
	return func(url, label string) string {
		return `<a href="` + url + `" target="` + target + `">` + label + `</a>`
	}
}

// Formatter renders the Relationships attribute value for one node pair.
type Formatter struct {
	// StatementBase is the prefix of the statement browser, e.g.
	// https://db.indra.bio/statements.
	StatementBase string
	Render        LinkRenderer
}

// NewFormatter returns a formatter rendering HTML links with the given
// statement browser base URL and anchor target.
func NewFormatter(statementBase, target string) *Formatter {
	return &Formatter{
		StatementBase: statementBase,
		Render:        HTMLLinkRenderer(target),
	}
}

// groupURL is the evidence detail page for one relationship group.
func (f *Formatter) groupURL(g RelationshipGroup) string {
	if g.Subject == "" || g.Object == "" {
		// Fall back to the representative hash's own detail page for
		// statements without binary endpoints.
		return g.EvidenceLink
	}
	return f.StatementBase + "/from_agents?subject=" + html.EscapeString(g.Subject) +
		"&object=" + html.EscapeString(g.Object) +
		"&type=" + html.EscapeString(g.Type) +
		"&format=html&expand_all=true"
}

// allURL is the aggregate evidence view for the pair.
func (f *Formatter) allURL(agent0, agent1 string) string {
	return f.StatementBase + "/from_agents?agent0=" + html.EscapeString(agent0) +
		"&agent1=" + html.EscapeString(agent1) +
		"&format=html&expand_all=false"
}

// Format renders the relationship text for the pair named by agent0 and
// agent1. Groups are listed descending by evidence count with stable
// ties; the header carries the summed total linked to the aggregate
// evidence view. The evidence total is returned for scoring.
func (f *Formatter) Format(agent0, agent1 string, groups []RelationshipGroup) (string, int) {
	total := 0
	for _, g := range groups {
		total += g.EvidenceCount
	}

	sorted := append([]RelationshipGroup(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EvidenceCount > sorted[j].EvidenceCount
	})

	lines := make([]string, 0, len(sorted))
	for _, g := range sorted {
		countLink := f.Render(f.groupURL(g), fmt.Sprintf("%d", g.EvidenceCount))
		lines = append(lines, g.English+"("+countLink+")")
	}

	allLink := f.Render(f.allURL(agent0, agent1), fmt.Sprintf("%d", total))
	text := "All Evidences (" + allLink + ")<ul><li/>" +
		strings.Join(lines, "<li/>") + "</ul>"
	return text, total
}
