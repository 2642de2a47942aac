package model

import "time"

// AnnotationSummary reports what one annotation run did to one network.
type AnnotationSummary struct {
	NetworkName    string         `json:"network_name"`
	NodeCount      int            `json:"node_count"`
	PairsSeen      int            `json:"pairs_seen"`
	EdgesAdded     int            `json:"edges_added"`
	StatementsSeen int            `json:"statements_seen"`
	StatementsKept int            `json:"statements_kept"`
	RemovedByStage map[string]int `json:"removed_by_stage,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
	QueryTime      time.Duration  `json:"query_time"`
	FromCache      bool           `json:"from_cache"`
}
