// Package filter reduces the raw statements for one node pair to the
// subset that meets minimum evidence-quality standards. Stages run in a
// fixed order and each is a pure function: statements in, statements out,
// with the node-name set and curation policy passed in explicitly.
package filter

import (
	"fmt"

	"github.com/ndexbio/indranet/internal/model"
)

// Env carries the read-only context a stage may consult.
type Env struct {
	// NodeNames is the network's full node-name set, family members
	// included. Used by the complex-membership stage.
	NodeNames map[string]bool

	// AcceptedTags is the set of curation tags treated as correct.
	AcceptedTags map[string]bool
}

// NewEnv builds an Env with the default curation policy.
func NewEnv(nodeNames map[string]bool) *Env {
	return &Env{
		NodeNames:    nodeNames,
		AcceptedTags: AcceptedCurationTags(),
	}
}

// Stage is one named filtering rule.
type Stage struct {
	Name  string
	Apply func(stmts []model.Statement, env *Env) []model.Statement
}

// Chain applies stages in order over a statement slice.
type Chain struct {
	stages []Stage
	env    *Env
}

// NewChain creates a chain over the given stages.
func NewChain(env *Env, stages ...Stage) *Chain {
	return &Chain{stages: stages, env: env}
}

// DefaultChain returns the standard six-stage chain in its required order.
func DefaultChain(env *Env) *Chain {
	return NewChain(env,
		SelfLoopStage(),
		ComplexMembershipStage(),
		IncorrectCurationStage(),
		SingleReadingSourceStage(),
		SparserComplexStage(),
		MedscanStage(),
	)
}

// Apply screens out malformed statements, then runs every stage in order.
// It returns the surviving statements, the per-stage removal counts, and
// warnings for records that were skipped rather than filtered.
func (c *Chain) Apply(stmts []model.Statement) ([]model.Statement, map[string]int, []string) {
	removed := make(map[string]int)
	kept, warnings := screen(stmts)
	if len(kept) < len(stmts) {
		removed["malformed"] = len(stmts) - len(kept)
	}
	for _, stage := range c.stages {
		before := len(kept)
		kept = stage.Apply(kept, c.env)
		if n := before - len(kept); n > 0 {
			removed[stage.Name] = n
		}
	}
	return kept, removed, warnings
}

// screen drops statements missing required fields. A malformed record is
// a data-quality problem, never a crash.
func screen(stmts []model.Statement) ([]model.Statement, []string) {
	var kept []model.Statement
	var warnings []string
	for _, s := range stmts {
		if s.IsMalformed() {
			warnings = append(warnings,
				fmt.Sprintf("skipping malformed statement hash=%d type=%q", s.Hash, s.Type))
			continue
		}
		kept = append(kept, s)
	}
	return kept, warnings
}
