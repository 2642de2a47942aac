// Package llm generates an optional plain-language summary of an
// annotated network. The summary is produced after annotation and never
// affects the annotated network itself.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/net/html"

	"github.com/ndexbio/indranet/internal/model"
)

// Summarizer wraps an OpenAI-compatible chat endpoint.
type Summarizer struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewSummarizer creates a summarizer, or nil when no provider is
// configured. Only the "openai" provider (and compatible base URLs) is
// supported.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	if cfg.Provider != "openai" {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Summarizer{client: openai.NewClientWithConfig(clientConfig), cfg: cfg}, nil
}

// Summarize generates a short description of the annotated network from
// its rendered relationship lines.
func (s *Summarizer) Summarize(ctx context.Context, networkName string, summary *model.AnnotationSummary, relationships []string) (string, error) {
	modelName := s.cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	maxTokens := s.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	timeout := time.Duration(s.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You summarize evidence-backed molecular interaction annotations. " +
					"Describe only the relationships listed; do not speculate beyond them.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(networkName, summary, relationships),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt assembles the summary prompt from the annotation summary
// and the rendered relationship lines, markup stripped.
func BuildPrompt(networkName string, summary *model.AnnotationSummary, relationships []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Network: %s\n", networkName)
	fmt.Fprintf(&b, "Annotated node pairs: %d\n", summary.EdgesAdded)
	fmt.Fprintf(&b, "Statements kept after filtering: %d of %d\n\n", summary.StatementsKept, summary.StatementsSeen)
	b.WriteString("Relationships (evidence counts in parentheses):\n")
	for i, rel := range relationships {
		if i >= 30 {
			fmt.Fprintf(&b, "... and %d more\n", len(relationships)-30)
			break
		}
		fmt.Fprintf(&b, "- %s\n", StripMarkup(rel))
	}
	b.WriteString("\nWrite a 3-4 sentence summary of the interaction landscape above.")
	return b.String()
}

// StripMarkup removes HTML tags from a relationship line, leaving the
// visible text. List items become separated lines.
func StripMarkup(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := tokenizer.TagName(); string(name) == "li" {
				b.WriteString("; ")
			}
		}
	}
}
