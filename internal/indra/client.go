// Package indra queries the INDRA subgraph service for the statements
// connecting a set of node names.
package indra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ndexbio/indranet/internal/model"
)

// Client posts node-name queries to the subgraph endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
}

// NewClient creates a client from the INDRA configuration.
func NewClient(cfg model.IndraConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type queryNode struct {
	Name       string  `json:"name"`
	Namespace  string  `json:"namespace"`
	Identifier string  `json:"identifier"`
	Lookup     *string `json:"lookup"`
}

type subgraphQuery struct {
	Nodes []queryNode `json:"nodes"`
}

// BuildQuery assembles the subgraph request body from node names. The
// service resolves names itself, so namespace and identifier are
// placeholders.
func BuildQuery(nodeNames []string) interface{} {
	query := subgraphQuery{Nodes: make([]queryNode, 0, len(nodeNames))}
	for _, name := range nodeNames {
		query.Nodes = append(query.Nodes, queryNode{Name: name, Namespace: "0", Identifier: "0"})
	}
	return query
}

// Subgraph queries the service for the given node names and returns the
// decoded result plus the request duration.
func (c *Client) Subgraph(ctx context.Context, nodeNames []string) (*model.SubgraphResult, time.Duration, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(BuildQuery(nodeNames))
	if err != nil {
		return nil, 0, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("query subgraph: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	elapsed := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, elapsed, fmt.Errorf("query subgraph: unexpected status %d: %s", resp.StatusCode, string(msg))
	}

	reader := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxBytes)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, elapsed, fmt.Errorf("read response: %w", err)
	}

	var result model.SubgraphResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, elapsed, fmt.Errorf("parse response: %w", err)
	}
	return &result, elapsed, nil
}
