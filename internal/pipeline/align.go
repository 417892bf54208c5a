package pipeline

import (
	"strings"

	"github.com/asterion-dev/asterion/internal/model"
)

// alignStopwords are skipped when measuring lexical overlap.
var alignStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "to": true, "is": true,
	"are": true, "was": true, "with": true, "by": true, "for": true,
	"its": true, "it": true, "this": true, "that": true, "as": true,
	"at": true, "from": true, "be": true, "their": true, "your": true,
}

// AlignClaims verifies that an answer's claim sentences are lexically
// supported by its cited documents. Zero citations short-circuits to a
// zero score with reason "no_citations"; no alignment is attempted.
func AlignClaims(payload *model.AnswerPayload, docs []model.RetrievedDocument, threshold float64) model.AlignmentReport {
	if len(payload.Citations) == 0 {
		return model.AlignmentReport{Score: 0, Reason: "no_citations"}
	}

	cited := map[string]bool{}
	for _, c := range payload.Citations {
		cited[c.SourceID] = true
	}
	var citedContent []string
	for _, d := range docs {
		if cited[d.SourceID] {
			citedContent = append(citedContent, strings.ToLower(d.Content))
		}
	}

	sentences := splitSentences(payload.Content)
	report := model.AlignmentReport{}
	supported := 0
	totalScore := 0.0

	for _, sentence := range sentences {
		score := overlapScore(sentence, citedContent)
		claim := model.ClaimAlignment{
			Sentence:  sentence,
			Score:     score,
			Supported: score >= threshold,
		}
		if claim.Supported {
			supported++
		}
		totalScore += score
		report.Claims = append(report.Claims, claim)
	}

	if len(report.Claims) > 0 {
		report.Score = totalScore / float64(len(report.Claims))
		report.SupportedRatio = float64(supported) / float64(len(report.Claims))
	}
	return report
}

// overlapScore is the fraction of a sentence's content words found in
// any cited document.
func overlapScore(sentence string, citedContent []string) float64 {
	words := contentWords(sentence)
	if len(words) == 0 {
		return 0
	}
	found := 0
	for _, w := range words {
		for _, content := range citedContent {
			if strings.Contains(content, w) {
				found++
				break
			}
		}
	}
	return float64(found) / float64(len(words))
}

// contentWords lowercases and filters stopwords and short tokens.
func contentWords(s string) []string {
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if len(w) < 3 || alignStopwords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// splitSentences decomposes answer text into claim sentences.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(current.String())
			if len(s) > 3 {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); len(s) > 3 {
		sentences = append(sentences, s)
	}
	return sentences
}
