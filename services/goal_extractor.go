package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

const NoBaselineFound = "No baseline found"

// GoalExtractor finds goal/baseline pairs in an uploaded document. It never
// fails: anything that goes wrong yields zero results.
type GoalExtractor interface {
	Extract(ctx context.Context, doc []byte) []ExtractedGoal
}

var (
	goalPattern     = regexp.MustCompile(`(?i)Goal \d+:?\s*([^.]+\.)`)
	baselinePattern = regexp.MustCompile(`(?i)Baseline:?\s*([^.]+\.)`)
)

// PatternExtractor matches "Goal N: ..." and "Baseline: ..." sentences in a
// plain text document and pairs them by position.
type PatternExtractor struct{}

func (PatternExtractor) Extract(_ context.Context, doc []byte) []ExtractedGoal {
	if len(doc) == 0 || !utf8.Valid(doc) {
		return []ExtractedGoal{}
	}
	text := string(doc)

	goals := goalPattern.FindAllStringSubmatch(text, -1)
	baselines := baselinePattern.FindAllStringSubmatch(text, -1)

	out := make([]ExtractedGoal, 0, len(goals))
	for i, g := range goals {
		baseline := NoBaselineFound
		if i < len(baselines) {
			baseline = strings.TrimSpace(baselines[i][1])
		}
		out = append(out, ExtractedGoal{
			Goal:     strings.TrimSpace(g[1]),
			Baseline: baseline,
		})
	}
	return out
}
