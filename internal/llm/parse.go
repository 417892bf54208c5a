package llm

import (
	"encoding/json"
	"strings"

	"github.com/asterion-dev/asterion/internal/model"
)

// ParsedAnswer is the structured form of a generated answer.
type ParsedAnswer struct {
	Content   string           `json:"content"`
	Citations []model.Citation `json:"citations"`
}

// ParseResult distinguishes a clean parse from a repaired one. Callers
// must be able to tell the difference; silent default-filling is how
// bad answers sneak through.
type ParseResult struct {
	Answer      ParsedAnswer
	Repaired    bool
	RepairNotes []string
}

// ParseAnswer parses a provider's raw output against the citation
// allowlist. Malformed JSON degrades to a repaired plain-text answer;
// citations outside the allowlist are stripped and noted.
func ParseAnswer(raw string, allowed map[string]bool) ParseResult {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var answer ParsedAnswer
	if err := json.Unmarshal([]byte(cleaned), &answer); err != nil {
		// Some models wrap the object in prose; try the outermost braces.
		if inner, ok := extractJSONObject(cleaned); ok {
			if err2 := json.Unmarshal([]byte(inner), &answer); err2 == nil {
				return filterCitations(answer, allowed, true, []string{"json_extracted_from_prose"})
			}
		}
		return ParseResult{
			Answer:      ParsedAnswer{Content: cleaned},
			Repaired:    true,
			RepairNotes: []string{"non_json_output"},
		}
	}

	if answer.Content == "" {
		return ParseResult{
			Answer:      ParsedAnswer{Content: cleaned},
			Repaired:    true,
			RepairNotes: []string{"empty_content_field"},
		}
	}

	return filterCitations(answer, allowed, false, nil)
}

// filterCitations drops citations outside the allowlist, marking the
// result repaired when any are removed.
func filterCitations(answer ParsedAnswer, allowed map[string]bool, repaired bool, notes []string) ParseResult {
	if allowed != nil {
		kept := answer.Citations[:0]
		dropped := 0
		for _, c := range answer.Citations {
			if allowed[c.SourceID] {
				kept = append(kept, c)
			} else {
				dropped++
			}
		}
		answer.Citations = kept
		if dropped > 0 {
			repaired = true
			notes = append(notes, "citation_outside_allowlist")
		}
	}
	return ParseResult{Answer: answer, Repaired: repaired, RepairNotes: notes}
}

// stripCodeFence removes a surrounding markdown code fence if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONObject pulls the outermost {...} span from mixed text.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
