package app

import (
	"errors"
	"testing"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

type payload struct {
	Title string `json:"title"`
	Level int    `json:"level"`
}

func TestExtractJSONFromTaggedFence(t *testing.T) {
	raw := "Here is your module:\n```json\n{\"title\": \"Heaps\", \"level\": 2}\n```\nEnjoy!"

	var got payload
	if err := ExtractJSON(raw, &got); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got.Title != "Heaps" || got.Level != 2 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExtractJSONFromUntaggedFence(t *testing.T) {
	raw := "Sure!\n```\n{\"title\": \"Graphs\", \"level\": 1}\n```"

	var got payload
	if err := ExtractJSON(raw, &got); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got.Title != "Graphs" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExtractJSONByBraces(t *testing.T) {
	raw := `The module you requested is {"title": "Stacks", "level": 1} - let me know!`

	var got payload
	if err := ExtractJSON(raw, &got); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got.Title != "Stacks" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExtractJSONCleansTrailingCommas(t *testing.T) {
	raw := "```json\n{\"title\": \"Queues\", \"level\": 3,}\n```"

	var got payload
	if err := ExtractJSON(raw, &got); err != nil {
		t.Fatalf("cleanup pass should recover: %v", err)
	}
	if got.Title != "Queues" || got.Level != 3 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExtractJSONNormalizesSmartQuotes(t *testing.T) {
	raw := "{“title”: “Tries”, “level”: 2}"

	var got payload
	if err := ExtractJSON(raw, &got); err != nil {
		t.Fatalf("cleanup pass should recover: %v", err)
	}
	if got.Title != "Tries" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExtractJSONArrayCandidate(t *testing.T) {
	raw := "Ranking: [2, 0, 1] done"

	var got []int
	if err := ExtractJSON(raw, &got); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 3 || got[0] != 2 {
		t.Fatalf("unexpected slice %v", got)
	}
}

func TestExtractJSONFailureKeepsRawText(t *testing.T) {
	raw := "I could not produce the module you asked for."

	var got payload
	err := ExtractJSON(raw, &got)
	if err == nil {
		t.Fatal("expected extraction failure")
	}

	var extractionErr *domain.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %T", err)
	}
	if extractionErr.Raw != raw {
		t.Fatalf("raw text not preserved: %q", extractionErr.Raw)
	}
}
