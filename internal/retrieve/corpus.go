package retrieve

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCorpusFile reads a YAML list of documents for ingestion.
func LoadCorpusFile(path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	var docs []Document
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	for i, d := range docs {
		if d.ID == "" || d.Content == "" {
			return nil, fmt.Errorf("corpus entry %d: id and content are required", i+1)
		}
	}
	return docs, nil
}

// Ingest indexes documents into both backends.
func Ingest(ctx context.Context, vector VectorStore, sparse SparseStore, docs []Document) error {
	if err := vector.Upsert(ctx, docs); err != nil {
		return fmt.Errorf("vector upsert: %w", err)
	}
	if err := sparse.Upsert(ctx, docs); err != nil {
		return fmt.Errorf("sparse upsert: %w", err)
	}
	return nil
}

// SeedDocuments is the built-in reference corpus: short passages on the
// traditional techniques, tagged by topic and school so filtered and
// coverage-gated retrieval have something to bite on out of the box.
func SeedDocuments() []Document {
	return []Document{
		{
			ID:      "almuten-overview",
			Content: "The almuten figuris is the planet with the greatest essential dignity across the principal places of the chart: the luminaries, the Ascendant, and the lots of spirit and fortune. Rulership counts five points, exaltation four, triplicity three, bound two, and face one.",
			Metadata: map[string]interface{}{"topic": "almuten", "school": "medieval"},
		},
		{
			ID:      "almuten-sect",
			Content: "When two planets tie for the almuten, preference goes to the planet of the sect in favor: diurnal planets in a day chart, nocturnal planets in a night chart.",
			Metadata: map[string]interface{}{"topic": "almuten", "school": "medieval"},
		},
		{
			ID:      "zr-basics",
			Content: "Zodiacal releasing divides life into planetary periods counted from the lot of spirit for matters of action and career, or from the lot of fortune for matters of body and circumstance. Each sign grants its own span of years.",
			Metadata: map[string]interface{}{"topic": "zodiacal_releasing", "school": "hellenistic"},
		},
		{
			ID:      "zr-lb",
			Content: "The loosing of the bond occurs when a releasing period completes Cancer or Capricorn: instead of continuing to the next sign in order, the sequence leaps to the opposite solstitial sign, marking a decisive change of circumstances.",
			Metadata: map[string]interface{}{"topic": "zodiacal_releasing", "school": "hellenistic"},
		},
		{
			ID:      "zr-peaks",
			Content: "Peak periods arrive when the releasing reaches a sign angular to the lot of fortune or spirit, the first, fourth, seventh, and tenth signs from it. These mark the most active and visible chapters.",
			Metadata: map[string]interface{}{"topic": "zodiacal_releasing", "school": "hellenistic"},
		},
		{
			ID:      "profection-basics",
			Content: "Annual profections advance the Ascendant one sign per year of life, returning every twelve years. The ruler of the profected sign becomes lord of the year and its natal condition colors the whole year.",
			Metadata: map[string]interface{}{"topic": "profection", "school": "hellenistic"},
		},
		{
			ID:      "profection-houses",
			Content: "A profection into the seventh house activates partnerships, marriage, and open rivals; into the tenth, career, reputation, and dealings with authority; into the sixth, health, work, and daily routine.",
			Metadata: map[string]interface{}{"topic": "profection", "school": "hellenistic"},
		},
		{
			ID:      "firdaria-basics",
			Content: "Firdaria allot each planet a fixed span of years as major lord: the Sun ten, Venus eight, Mercury thirteen, the Moon nine, Saturn eleven, Jupiter twelve, and Mars seven. Day births begin from the Sun, night births from the Moon.",
			Metadata: map[string]interface{}{"topic": "firdaria", "school": "persian"},
		},
		{
			ID:      "firdaria-minors",
			Content: "Within each firdaria major period the seven planets take minor rulerships in turn, beginning with the major lord, each minor span proportional to that planet's own years.",
			Metadata: map[string]interface{}{"topic": "firdaria", "school": "persian"},
		},
		{
			ID:      "antiscia-basics",
			Content: "Antiscia are mirror points across the solstitial axis from Cancer to Capricorn: two planets in antiscia share equal daylight and act as a hidden conjunction. Contra-antiscia mirror across the equinoctial axis and act as a hidden opposition.",
			Metadata: map[string]interface{}{"topic": "antiscia", "school": "hellenistic"},
		},
		{
			ID:      "fixed-stars-royal",
			Content: "The four royal stars, Aldebaran, Regulus, Antares, and Fomalhaut, are the watchers of the sky's quarters. A luminary or the Ascendant conjunct a royal star promises eminence, each star with its own trial attached.",
			Metadata: map[string]interface{}{"topic": "fixed_stars", "school": "persian"},
		},
		{
			ID:      "dignity-basics",
			Content: "A planet in its own sign acts with full command of its resources; exalted, it is honored beyond its station. In detriment it labors in a foreign land, and in fall its testimony is weakened and overlooked.",
			Metadata: map[string]interface{}{"topic": "dignity", "school": "medieval"},
		},
		{
			ID:      "sect-basics",
			Content: "Sect divides charts into day and night. The Sun, Jupiter, and Saturn rejoice by day; the Moon, Venus, and Mars by night; Mercury follows either. Planets of the sect in favor give their effects more freely.",
			Metadata: map[string]interface{}{"topic": "sect", "school": "hellenistic"},
		},
		{
			ID:      "lots-basics",
			Content: "The lot of fortune is cast from Sun to Moon projected from the Ascendant by day, reversed by night; the lot of spirit reverses the luminaries. Fortune concerns the body and circumstance, spirit the deliberate action of the soul.",
			Metadata: map[string]interface{}{"topic": "lots", "school": "hellenistic"},
		},
	}
}
