package app

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	smartQuotes     = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
)

// ExtractJSON recovers a structured object from raw model output and decodes
// it into dst. The candidate is isolated in order of preference: a ```json
// fenced block, any fenced block, the first-{ to last-} substring, then the
// whole trimmed text. One cleanup pass (quote normalization, trailing-comma
// stripping) is attempted before giving up.
//
// The first/last-brace heuristic is deliberately not a parser; nested braces
// inside strings can defeat it. Failures return *domain.ExtractionError and
// the caller falls back to deterministic generation.
func ExtractJSON(raw string, dst any) error {
	candidate := isolateCandidate(raw)

	if err := json.Unmarshal([]byte(candidate), dst); err == nil {
		return nil
	}

	cleaned := cleanupJSON(candidate)
	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return &domain.ExtractionError{Raw: raw, Err: err}
	}
	return nil
}

func isolateCandidate(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if m := jsonFenceRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := anyFenceRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.IndexAny(trimmed, "{[")
	var end int
	if start >= 0 && trimmed[start] == '[' {
		end = strings.LastIndex(trimmed, "]")
	} else {
		end = strings.LastIndex(trimmed, "}")
	}
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}

func cleanupJSON(candidate string) string {
	cleaned := smartQuotes.Replace(candidate)
	return trailingCommaRe.ReplaceAllString(cleaned, "$1")
}
