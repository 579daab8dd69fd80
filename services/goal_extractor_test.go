package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

const sampleIEP = `Student: Jane Doe
Goal 1: Jane will read 90 words per minute. Baseline: Jane reads 60 words per minute.
goal 2 Jane will solve two step word problems. BASELINE jane solves one step problems.
Goal 3: Jane will write a five sentence paragraph.
`

func TestPatternExtractor(t *testing.T) {
	got := PatternExtractor{}.Extract(context.Background(), []byte(sampleIEP))
	want := []ExtractedGoal{
		{Goal: "Jane will read 90 words per minute.", Baseline: "Jane reads 60 words per minute."},
		{Goal: "Jane will solve two step word problems.", Baseline: "jane solves one step problems."},
		{Goal: "Jane will write a five sentence paragraph.", Baseline: NoBaselineFound},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract mismatch.\nExpected: %+v\nGot: %+v", want, got)
	}
}

func TestPatternExtractorUnreadableInput(t *testing.T) {
	for name, doc := range map[string][]byte{
		"empty":    nil,
		"binary":   {0xff, 0xfe, 0x00, 0x25, 0x50},
		"no goals": []byte("nothing to see here."),
	} {
		got := PatternExtractor{}.Extract(context.Background(), doc)
		if got == nil || len(got) != 0 {
			t.Errorf("%s: expected an empty list, got %#v", name, got)
		}
	}
}

func TestCompletionExtractorWithoutKeyUsesPatterns(t *testing.T) {
	e := NewCompletionExtractor(CompletionConfig{})
	got := e.Extract(context.Background(), []byte(sampleIEP))
	if len(got) != 3 {
		t.Errorf("Expected the pattern fallback to find 3 goals, got %d", len(got))
	}
}

func TestCompletionExtractor(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]string{
					"role":    "assistant",
					"content": "```json\n[{\"goal\": \"Read 90 wpm.\", \"baseline\": \"\"}, {\"goal\": \" \", \"baseline\": \"x\"}]\n```",
				},
			}},
		})
	}))
	defer srv.Close()

	e := NewCompletionExtractor(CompletionConfig{APIKey: "secret", BaseURL: srv.URL + "/", Model: "test-model"})
	got := e.Extract(context.Background(), []byte(sampleIEP))

	want := []ExtractedGoal{{Goal: "Read 90 wpm.", Baseline: NoBaselineFound}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 2 || !strings.Contains(gotReq.Messages[1].Content, "Goal 1") {
		t.Errorf("Unexpected completion request %+v", gotReq)
	}
}

func TestCompletionExtractorFailuresYieldNothing(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		},
		"no array": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"I cannot help."}}]}`))
		},
		"no choices": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		},
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			e := NewCompletionExtractor(CompletionConfig{APIKey: "secret", BaseURL: srv.URL})
			got := e.Extract(context.Background(), []byte(sampleIEP))
			if got == nil || len(got) != 0 {
				t.Errorf("Expected an empty list, got %#v", got)
			}
		})
	}
}
