package retrieve

// technicalTerms are exact domain terms whose presence in a query makes
// lexical matching more reliable than semantic similarity.
var technicalTerms = map[string]bool{
	"almuten":    true,
	"figuris":    true,
	"firdaria":   true,
	"zodiacal":   true,
	"releasing":  true,
	"profection": true,
	"antiscia":   true,
	"sect":       true,
	"triplicity": true,
	"exaltation": true,
	"detriment":  true,
	"dignity":    true,
	"lot":        true,
	"spirit":     true,
	"fortune":    true,
	"peak":       true,
	"bond":       true,
	"decan":      true,
	"bound":      true,
}

// AdaptiveAlpha picks the dense/sparse mixing weight per query. A
// higher share of exact technical terms shifts weight toward the
// sparse backend.
func AdaptiveAlpha(query string, base float64) float64 {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return base
	}
	technical := 0
	for _, tok := range tokens {
		if technicalTerms[tok] {
			technical++
		}
	}
	density := float64(technical) / float64(len(tokens))

	switch {
	case density >= 0.5:
		return 0.3
	case density >= 0.25:
		return 0.45
	case density > 0:
		return base - 0.05
	default:
		return base
	}
}
