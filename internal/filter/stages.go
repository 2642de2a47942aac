package filter

import "github.com/ndexbio/indranet/internal/model"

// AcceptedCurationTags returns the curation tags whose evidence is kept.
// A "hypothesis" phrasing and an activity-vs-amount mixup are minor
// issues for the networks built here; every other tag means the evidence
// does not support the statement.
func AcceptedCurationTags() map[string]bool {
	return map[string]bool{
		"correct":    true,
		"hypothesis": true,
		"act_vs_amt": true,
	}
}

// ReadingSources returns the machine-reading source systems, as opposed
// to curated databases such as SIGNOR or Pathway Commons.
func ReadingSources() map[string]bool {
	return map[string]bool{
		"eidos":   true,
		"trips":   true,
		"reach":   true,
		"sparser": true,
		"medscan": true,
		"rlimsp":  true,
		"isi":     true,
	}
}

// SelfLoopStage removes statements whose participants resolve to a single
// distinct node. Self-interactions are disproportionately reading errors.
func SelfLoopStage() Stage {
	return Stage{
		Name: "selfloop",
		Apply: func(stmts []model.Statement, _ *Env) []model.Statement {
			var kept []model.Statement
			for _, s := range stmts {
				if len(s.Participants()) <= 1 {
					continue
				}
				kept = append(kept, s)
			}
			return kept
		},
	}
}

// ComplexMembershipStage trims multi-party statements down to members
// present in the network, dropping the statement when fewer than two
// participants remain.
func ComplexMembershipStage() Stage {
	return Stage{
		Name: "complex-membership",
		Apply: func(stmts []model.Statement, env *Env) []model.Statement {
			var kept []model.Statement
			for _, s := range stmts {
				if len(s.Members) == 0 {
					kept = append(kept, s)
					continue
				}
				var members []string
				for _, m := range s.Members {
					if env.NodeNames[m] {
						members = append(members, m)
					}
				}
				if len(members) < 2 {
					continue
				}
				if len(members) != len(s.Members) {
					c := s.Clone()
					c.Members = members
					s = c
				}
				kept = append(kept, s)
			}
			return kept
		},
	}
}

// IncorrectCurationStage removes evidence items whose curator verdicts
// are all outside the accepted tag set. A curation applies to a single
// evidence item; uncurated evidence is kept as-is. Statements whose
// evidence count drops to zero are discarded.
func IncorrectCurationStage() Stage {
	return Stage{
		Name: "incorrect-curation",
		Apply: func(stmts []model.Statement, env *Env) []model.Statement {
			var kept []model.Statement
			for _, s := range stmts {
				bad := rejectedEvidenceCount(s.Curations, env.AcceptedTags)
				if bad == 0 {
					kept = append(kept, s)
					continue
				}
				c := s.Clone()
				c.EvidenceCount -= bad
				if c.EvidenceCount <= 0 {
					continue
				}
				kept = append(kept, c)
			}
			return kept
		},
	}
}

// rejectedEvidenceCount counts evidence items that carry at least one
// curation but no accepted one.
func rejectedEvidenceCount(curations []model.Curation, accepted map[string]bool) int {
	byEvidence := make(map[int64]bool)
	for _, c := range curations {
		if accepted[c.Tag] {
			byEvidence[c.SourceHash] = true
		} else if _, ok := byEvidence[c.SourceHash]; !ok {
			byEvidence[c.SourceHash] = false
		}
	}
	bad := 0
	for _, ok := range byEvidence {
		if !ok {
			bad++
		}
	}
	return bad
}

// SingleReadingSourceStage removes statements supported by exactly one
// evidence item coming from a machine-reading system. Single
// uncorroborated automated extractions have a high error rate; a curated
// database singleton is kept.
func SingleReadingSourceStage() Stage {
	return Stage{
		Name: "single-reading-source",
		Apply: func(stmts []model.Statement, _ *Env) []model.Statement {
			readers := ReadingSources()
			var kept []model.Statement
			for _, s := range stmts {
				if s.EvidenceCount == 1 && allSourcesAreReaders(s.SourceCounts, readers) {
					continue
				}
				kept = append(kept, s)
			}
			return kept
		},
	}
}

func allSourcesAreReaders(counts map[string]int, readers map[string]bool) bool {
	if len(counts) == 0 {
		return false
	}
	for src, n := range counts {
		if n <= 0 {
			continue
		}
		if !readers[src] {
			return false
		}
	}
	return true
}

// SparserComplexStage removes Complex statements whose only contributing
// source is the sparser reading system, regardless of evidence count.
// Sparser is empirically prone to spurious complex detection.
func SparserComplexStage() Stage {
	return Stage{
		Name: "sparser-complex",
		Apply: func(stmts []model.Statement, _ *Env) []model.Statement {
			var kept []model.Statement
			for _, s := range stmts {
				if s.Type == "Complex" && len(s.SourceCounts) == 1 {
					if _, only := s.SourceCounts["sparser"]; only {
						continue
					}
				}
				kept = append(kept, s)
			}
			return kept
		},
	}
}

// MedscanStage strips medscan evidence entirely. Medscan data is private
// and cannot be shown, so its evidence may not contribute to counts.
// Statements left with zero evidence are discarded.
func MedscanStage() Stage {
	return Stage{
		Name: "medscan",
		Apply: func(stmts []model.Statement, _ *Env) []model.Statement {
			var kept []model.Statement
			for _, s := range stmts {
				n, has := s.SourceCounts["medscan"]
				if !has {
					kept = append(kept, s)
					continue
				}
				c := s.Clone()
				delete(c.SourceCounts, "medscan")
				c.EvidenceCount -= n
				if c.EvidenceCount <= 0 || len(c.SourceCounts) == 0 {
					continue
				}
				kept = append(kept, c)
			}
			return kept
		},
	}
}
