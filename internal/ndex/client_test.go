package ndex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(serverURL string) *Client {
	return NewClient(serverURL, "user", "pass", 5*time.Second, "indranet-test")
}

func TestClient_GetNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/network/abc-123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "pass" {
			t.Error("expected basic auth credentials")
		}
		_, _ = w.Write([]byte(sampleCX))
	}))
	defer server.Close()

	net, err := testClient(server.URL).GetNetwork(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetNetwork failed: %v", err)
	}
	if net.Name() != "Test Network" {
		t.Errorf("unexpected network name %q", net.Name())
	}
	if len(net.Nodes()) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(net.Nodes()))
	}
}

func TestClient_GetNetwork_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).GetNetwork(context.Background(), "missing"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestClient_SaveNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/network" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart upload: %v", err)
		}
		file, _, err := r.FormFile("CXNetworkStream")
		if err != nil {
			t.Fatalf("missing CXNetworkStream part: %v", err)
		}
		data, _ := io.ReadAll(file)
		var fragments []map[string]json.RawMessage
		if err := json.Unmarshal(data, &fragments); err != nil {
			t.Errorf("uploaded payload is not CX: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("http://server/v2/network/11111111-2222-3333-4444-555555555555"))
	}))
	defer server.Close()

	net := NewNetwork("upload")
	net.AddNode("A")

	uuid, err := testClient(server.URL).SaveNetwork(context.Background(), net)
	if err != nil {
		t.Fatalf("SaveNetwork failed: %v", err)
	}
	if uuid != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("unexpected UUID %q", uuid)
	}
}

func TestClient_SetSystemProperties(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/v2/network/abc/systemproperty" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := testClient(server.URL).SetSystemProperties(context.Background(), "abc", "public", "all", true)
	if err != nil {
		t.Fatalf("SetSystemProperties failed: %v", err)
	}
	for _, want := range []string{`"visibility":"PUBLIC"`, `"index_level":"ALL"`, `"showcase":true`} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("body missing %s: %s", want, gotBody)
		}
	}
}

func TestNewClient_AssumesHTTPS(t *testing.T) {
	c := NewClient("public.ndexbio.org", "", "", time.Second, "")
	if c.baseURL != "https://public.ndexbio.org/v2" {
		t.Errorf("unexpected base URL %q", c.baseURL)
	}
}
