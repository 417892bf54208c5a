package llm

import (
	"fmt"
	"strings"

	"github.com/asterion-dev/asterion/internal/model"
)

// BuildAnswerPrompt constructs the generation prompt: the chart
// interpretation context, the retrieved passages, a STRICT source
// allowlist, and a JSON output contract the parser enforces.
func BuildAnswerPrompt(query string, interp *model.Interpretation, docs []model.RetrievedDocument) string {
	var b strings.Builder

	b.WriteString(`You are writing a grounded answer about a traditional astrology chart.

CRITICAL RULES:
1. You MUST ONLY cite source ids from the allowed list below.
2. DO NOT invent sources, techniques, or chart placements not given here.
3. If the evidence does not cover part of the question, say so explicitly.
4. Describe what the chart and sources indicate; never predict certainties.

Allowed source ids:
`)
	if len(docs) == 0 {
		b.WriteString("(none available)\n")
	}
	for _, d := range docs {
		b.WriteString(fmt.Sprintf("- %s\n", d.SourceID))
	}

	b.WriteString("\nRetrieved passages:\n")
	for _, d := range docs {
		b.WriteString(fmt.Sprintf("[%s] %s\n", d.SourceID, d.Content))
	}

	if interp != nil {
		b.WriteString("\nChart findings:\n")
		b.WriteString("- " + interp.Summary + "\n")
		for _, s := range interp.Sections {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", s.Priority, s.Text))
		}
		for _, w := range interp.Warnings {
			b.WriteString(fmt.Sprintf("- caution: %s\n", w))
		}
	}

	b.WriteString(fmt.Sprintf(`
Question: %s

Respond with a single JSON object and nothing else:
{"content": "<the answer, 2-5 paragraphs>", "citations": [{"source_id": "<allowed id>", "snippet": "<short supporting quote>"}]}
`, query))

	return b.String()
}

// BuildRevisionPrompt asks for a rewrite of an answer that failed the
// quality filter, restating the contract.
func BuildRevisionPrompt(original string, issues []string) string {
	return fmt.Sprintf(`Your previous answer failed quality review:
%s

Previous answer:
%s

Rewrite it fixing every issue. Keep the same JSON output contract:
{"content": "...", "citations": [{"source_id": "...", "snippet": "..."}]}
Only cite source ids you were given in the original allowed list.`,
		"- "+strings.Join(issues, "\n- "), original)
}
