package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const maxPromptDocument = 12000

const goalSystemPrompt = `You extract learning goals from IEP documents. ` +
	`Reply with a JSON array only, each item {"goal": "...", "baseline": "..."}. ` +
	`Use "No baseline found" when a goal has no baseline.`

type CompletionConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// CompletionExtractor asks an OpenAI compatible chat completion API for the
// goals in a document. Without an API key it uses Fallback.
type CompletionExtractor struct {
	cfg      CompletionConfig
	client   *http.Client
	Fallback GoalExtractor
}

func NewCompletionExtractor(cfg CompletionConfig) *CompletionExtractor {
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &CompletionExtractor{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		Fallback: PatternExtractor{},
	}
}

func (e *CompletionExtractor) Extract(ctx context.Context, doc []byte) []ExtractedGoal {
	if e.cfg.APIKey == "" {
		if e.Fallback == nil {
			return []ExtractedGoal{}
		}
		return e.Fallback.Extract(ctx, doc)
	}
	if len(doc) == 0 || !utf8.Valid(doc) {
		return []ExtractedGoal{}
	}

	text := string(doc)
	if len(text) > maxPromptDocument {
		text = strings.ToValidUTF8(text[:maxPromptDocument], "")
	}

	content, err := e.complete(ctx, text)
	if err != nil {
		log.Printf("goal extraction failed: %v", err)
		return []ExtractedGoal{}
	}
	goals, err := parseGoals(content)
	if err != nil {
		log.Printf("goal extraction returned unparsable content: %v", err)
		return []ExtractedGoal{}
	}
	return goals
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (e *CompletionExtractor) complete(ctx context.Context, text string) (string, error) {
	payload := chatRequest{
		Model: e.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: goalSystemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   800,
		Temperature: 0,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(e.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion api status %d", resp.StatusCode)
	}

	var r chatResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("completion api returned no choices")
	}
	return r.Choices[0].Message.Content, nil
}

// parseGoals decodes the JSON array in content, tolerating code fences
// around it.
func parseGoals(content string) ([]ExtractedGoal, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no json array in completion")
	}

	var raw []ExtractedGoal
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, err
	}

	out := make([]ExtractedGoal, 0, len(raw))
	for _, g := range raw {
		g.Goal = strings.TrimSpace(g.Goal)
		if g.Goal == "" {
			continue
		}
		g.Baseline = strings.TrimSpace(g.Baseline)
		if g.Baseline == "" {
			g.Baseline = NoBaselineFound
		}
		out = append(out, g)
	}
	return out, nil
}
