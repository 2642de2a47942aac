// Package pipeline wires the subgraph client, response cache, filter
// chain, and annotation orchestrator into a single annotate operation
// over one network.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ndexbio/indranet/internal/annotate"
	"github.com/ndexbio/indranet/internal/cache"
	"github.com/ndexbio/indranet/internal/indra"
	"github.com/ndexbio/indranet/internal/llm"
	"github.com/ndexbio/indranet/internal/model"
	"github.com/ndexbio/indranet/internal/ndex"
)

// ErrNetworkTooLarge is returned when the input network exceeds the
// configured node limit for the subgraph service.
var ErrNetworkTooLarge = errors.New("network exceeds maximum node count")

// StatementSource supplies the subgraph result for a node-name set.
type StatementSource interface {
	Subgraph(ctx context.Context, nodeNames []string) (*model.SubgraphResult, time.Duration, error)
}

// Pipeline annotates networks.
type Pipeline struct {
	cfg          *model.Config
	source       StatementSource
	cache        cache.Cache
	orchestrator *annotate.Orchestrator
	summarizer   *llm.Summarizer
}

// New builds a pipeline from configuration, loading the curation file
// when one is configured.
func New(cfg *model.Config) (*Pipeline, error) {
	var curations model.CurationIndex
	if cfg.Annotate.CurationsFile != "" {
		var err error
		curations, err = model.LoadCurations(cfg.Annotate.CurationsFile)
		if err != nil {
			return nil, fmt.Errorf("load curations: %w", err)
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	summarizer, err := llm.NewSummarizer(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	formatter := annotate.NewFormatter(cfg.Indra.StatementBaseURL, cfg.Annotate.BrowserTarget)
	return &Pipeline{
		cfg:          cfg,
		source:       indra.NewClient(cfg.Indra),
		cache:        store,
		orchestrator: annotate.NewOrchestrator(formatter, curations),
		summarizer:   summarizer,
	}, nil
}

// WithSource replaces the statement source; tests use this to avoid the
// live service.
func (p *Pipeline) WithSource(source StatementSource) *Pipeline {
	p.source = source
	return p
}

// Result is the outcome of annotating one network.
type Result struct {
	Network    *ndex.Network
	Summary    *model.AnnotationSummary
	LLMSummary string
}

// AnnotateNetwork queries the statement source (or cache) for the
// network's nodes and writes the annotation onto the network in place.
// networkID identifies the network for caching (a file name or UUID).
func (p *Pipeline) AnnotateNetwork(ctx context.Context, net *ndex.Network, networkID string) (*Result, error) {
	nodeCount := len(net.Nodes())
	if max := p.cfg.Annotate.MaxNetworkSize; max > 0 && nodeCount > max {
		return nil, fmt.Errorf("%w: %d nodes > limit %d", ErrNetworkTooLarge, nodeCount, max)
	}

	names := queryNames(net)
	result, elapsed, fromCache, err := p.fetch(ctx, networkID, names)
	if err != nil {
		return nil, err
	}

	if p.cfg.Annotate.RemoveOrigEdges {
		for _, e := range net.Edges() {
			net.RemoveEdge(e.ID)
		}
	}

	summary := p.orchestrator.Run(net, result)
	summary.NetworkName = net.Name()
	summary.NodeCount = nodeCount
	summary.QueryTime = elapsed
	summary.FromCache = fromCache

	p.decorateNetwork(net, elapsed)
	p.stampExistingEdges(net)

	res := &Result{Network: net, Summary: summary}

	if p.summarizer != nil && summary.EdgesAdded > 0 {
		text, err := p.summarizer.Summarize(ctx, net.Name(), summary, relationshipLines(net))
		if err != nil {
			// The summary is best-effort; annotation output stands on
			// its own.
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed: %v\n", err)
		} else {
			res.LLMSummary = text
		}
	}
	return res, nil
}

// fetch returns the subgraph result from cache when possible.
func (p *Pipeline) fetch(ctx context.Context, networkID string, names []string) (*model.SubgraphResult, time.Duration, bool, error) {
	key := cache.Key(networkID, names)
	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var result model.SubgraphResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, 0, true, nil
			}
			_ = p.cache.Delete(key)
		}
	}

	result, elapsed, err := p.source.Subgraph(ctx, names)
	if err != nil {
		return nil, elapsed, false, fmt.Errorf("query statement source: %w", err)
	}
	if p.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}
	return result, elapsed, false, nil
}

// queryNames collects node names plus family-member names in node order,
// the shape the subgraph service expects.
func queryNames(net *ndex.Network) []string {
	var names []string
	for _, node := range net.Nodes() {
		names = append(names, node.Name)
		names = append(names, net.FamilyMembers(node.ID)...)
	}
	return names
}

// decorateNetwork records run metadata and renames the network.
func (p *Pipeline) decorateNetwork(net *ndex.Network, elapsed time.Duration) {
	net.SetNetworkAttribute("__INDRA query time in seconds",
		fmt.Sprintf("%d", int(elapsed.Seconds())), "string")

	desc := ""
	if v, ok := net.NetworkAttribute("description").(string); ok {
		desc = v
	}
	net.SetNetworkAttribute("description",
		desc+"\n\n<b>Additional edges added by indranet</b> using "+
			`<a href="https://www.indra.bio" target="`+p.cfg.Annotate.BrowserTarget+`">INDRA service</a><br/>`,
		"string")

	net.SetNetworkAttribute("INDRA parameters",
		fmt.Sprintf("{'Remove Original Edges': %t}", p.cfg.Annotate.RemoveOrigEdges), "string")

	net.SetName(p.cfg.Annotate.NetPrefix + net.Name())
}

// stampExistingEdges marks pre-existing edges with the configured source
// value. Edges the annotator added already carry their own source.
func (p *Pipeline) stampExistingEdges(net *ndex.Network) {
	if p.cfg.Annotate.SourceValue == "" {
		return
	}
	for _, e := range net.Edges() {
		if net.EdgeAttribute(e.ID, annotate.AttrSource) == nil {
			net.SetEdgeString(e.ID, annotate.AttrSource, p.cfg.Annotate.SourceValue)
		}
	}
}

// relationshipLines collects the rendered relationship text of every
// annotated edge.
func relationshipLines(net *ndex.Network) []string {
	var lines []string
	for _, e := range net.Edges() {
		if v, ok := net.EdgeAttribute(e.ID, annotate.AttrRelationships).(string); ok {
			lines = append(lines, v)
		}
	}
	return lines
}
