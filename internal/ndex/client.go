package ndex

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client talks to an NDEx server's v2 REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	userAgent  string
}

// NewClient creates a client for the given server. server may omit the
// scheme; https is assumed.
func NewClient(server, username, password string, timeout time.Duration, userAgent string) *Client {
	if !strings.Contains(server, "://") {
		server = "https://" + server
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
		baseURL:   strings.TrimRight(server, "/") + "/v2",
		username:  username,
		password:  password,
		userAgent: userAgent,
	}
}

// GetNetwork downloads a network by UUID.
func (c *Client) GetNetwork(ctx context.Context, uuid string) (*Network, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/network/"+uuid, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get network: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get network %s: unexpected status %d", uuid, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read network: %w", err)
	}
	return FromCX(data)
}

// SaveNetwork uploads the network as a new network and returns its UUID.
func (c *Client) SaveNetwork(ctx context.Context, net *Network) (string, error) {
	cx, err := net.ToCX()
	if err != nil {
		return "", fmt.Errorf("serialize network: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("CXNetworkStream", "network.cx")
	if err != nil {
		return "", fmt.Errorf("create form: %w", err)
	}
	if _, err := part.Write(cx); err != nil {
		return "", fmt.Errorf("write form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/network", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.decorate(req)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("save network: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("save network: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	// The server responds with the new network's URI; the UUID is its
	// last path segment.
	location, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	uri := strings.TrimSpace(string(location))
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:], nil
	}
	return uri, nil
}

// SetSystemProperties sets visibility, index level, and showcase on a
// stored network.
func (c *Client) SetSystemProperties(ctx context.Context, uuid, visibility, indexLevel string, showcase bool) error {
	props := fmt.Sprintf(`{"visibility":%q,"index_level":%q,"showcase":%t}`,
		strings.ToUpper(visibility), strings.ToUpper(indexLevel), showcase)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/network/"+uuid+"/systemproperty", strings.NewReader(props))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.decorate(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("set system properties: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("set system properties: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) decorate(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}
