package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ndexbio/indranet/internal/model"
)

func TestNewSummarizer_DisabledWithoutProvider(t *testing.T) {
	s, err := NewSummarizer(model.LLMConfig{})
	if err != nil {
		t.Fatalf("empty provider should not error: %v", err)
	}
	if s != nil {
		t.Error("expected nil summarizer when no provider is configured")
	}
}

func TestNewSummarizer_UnsupportedProvider(t *testing.T) {
	if _, err := NewSummarizer(model.LLMConfig{Provider: "anthropic"}); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestNewSummarizer_RequiresAPIKey(t *testing.T) {
	if _, err := NewSummarizer(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewSummarizer_Valid(t *testing.T) {
	s, err := NewSummarizer(model.LLMConfig{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}
	if s == nil {
		t.Fatal("expected a summarizer")
	}
}

func TestBuildPrompt(t *testing.T) {
	summary := &model.AnnotationSummary{
		EdgesAdded:     2,
		StatementsSeen: 12,
		StatementsKept: 7,
	}
	relationships := []string{
		`BRAF phosphorylates MAP2K1(<a href="https://db.example/1">5</a>)`,
		`MDM2 inhibits TP53(<a href="https://db.example/2">2</a>)`,
	}

	prompt := BuildPrompt("RAS signaling", summary, relationships)

	if !strings.Contains(prompt, "Network: RAS signaling") {
		t.Errorf("missing network name: %q", prompt)
	}
	if !strings.Contains(prompt, "Annotated node pairs: 2") {
		t.Errorf("missing pair count: %q", prompt)
	}
	if !strings.Contains(prompt, "Statements kept after filtering: 7 of 12") {
		t.Errorf("missing filter counts: %q", prompt)
	}
	if !strings.Contains(prompt, "- BRAF phosphorylates MAP2K1(5)") {
		t.Errorf("markup should be stripped from relationship lines: %q", prompt)
	}
	if strings.Contains(prompt, "<a href") {
		t.Errorf("prompt should contain no HTML: %q", prompt)
	}
}

func TestBuildPrompt_CapsRelationshipLines(t *testing.T) {
	summary := &model.AnnotationSummary{}
	relationships := make([]string, 50)
	for i := range relationships {
		relationships[i] = fmt.Sprintf("A interacts with B%d(1)", i)
	}

	prompt := BuildPrompt("big", summary, relationships)

	if !strings.Contains(prompt, "... and 20 more") {
		t.Errorf("expected truncation marker: %q", prompt)
	}
	if strings.Contains(prompt, "B35(") {
		t.Errorf("lines past the cap should be omitted: %q", prompt)
	}
}

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`plain text`, "plain text"},
		{`BRAF activates MAP2K1(<a href="https://x" target="E">10</a>)`, "BRAF activates MAP2K1(10)"},
		{`All Evidences (<a href="https://x">3</a>)<ul><li/>A binds B(<a href="https://y">3</a>)</ul>`,
			"All Evidences (3); A binds B(3)"},
		{``, ""},
	}

	for _, tc := range cases {
		if got := StripMarkup(tc.in); got != tc.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
