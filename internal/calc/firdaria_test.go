package calc

import (
	"math"
	"testing"
	"time"

	"github.com/asterion-dev/asterion/internal/astro"
)

func TestFirdariaDiurnalSequence(t *testing.T) {
	birth := time.Date(1990, 1, 1, 12, 0, 0, 0, time.UTC)
	res, err := CalculateFirdaria(birth, true)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.MajorPeriods) != 9 {
		t.Fatalf("got %d major periods, want 9", len(res.MajorPeriods))
	}

	wantLords := []astro.Planet{
		astro.Sun, astro.Venus, astro.Mercury, astro.Moon,
		astro.Saturn, astro.Jupiter, astro.Mars,
		astro.NorthNode, astro.SouthNode,
	}
	wantYears := []float64{10, 8, 13, 9, 11, 12, 7, 3, 2}
	for i, p := range res.MajorPeriods {
		if p.Lord != wantLords[i] {
			t.Errorf("major %d: lord = %v, want %v", i, p.Lord, wantLords[i])
		}
		if p.DurationYears != wantYears[i] {
			t.Errorf("major %d: duration = %v, want %v", i, p.DurationYears, wantYears[i])
		}
	}

	total := 0.0
	for _, p := range res.MajorPeriods {
		total += p.DurationYears
	}
	if total != 75 {
		t.Errorf("scheme totals %v years, want 75", total)
	}
}

func TestFirdariaNocturnalStartsWithMoon(t *testing.T) {
	birth := time.Date(1990, 1, 1, 2, 0, 0, 0, time.UTC)
	res, err := CalculateFirdaria(birth, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.MajorPeriods[0].Lord != astro.Moon {
		t.Errorf("first nocturnal lord = %v, want Moon", res.MajorPeriods[0].Lord)
	}
	if res.MajorPeriods[1].Lord != astro.Saturn {
		t.Errorf("second nocturnal lord = %v, want Saturn", res.MajorPeriods[1].Lord)
	}
}

func TestFirdariaMinorsTileMajors(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := CalculateFirdaria(birth, true)
	if err != nil {
		t.Fatal(err)
	}

	// Each planetary major subdivides into seven minors starting from the
	// major lord; nodes are not subdivided.
	byMajor := map[astro.Planet][]FirdariaPeriod{}
	for _, m := range res.MinorPeriods {
		byMajor[m.MajorLord] = append(byMajor[m.MajorLord], m)
	}

	for _, major := range res.MajorPeriods {
		minors := byMajor[major.Lord]
		if major.Lord == astro.NorthNode || major.Lord == astro.SouthNode {
			if len(minors) != 0 {
				t.Errorf("%v: node period should not subdivide", major.Lord)
			}
			continue
		}
		if len(minors) != 7 {
			t.Fatalf("%v: got %d minors, want 7", major.Lord, len(minors))
		}
		if minors[0].Lord != major.Lord {
			t.Errorf("%v: first minor lord = %v, want the major lord", major.Lord, minors[0].Lord)
		}

		sum := 0.0
		for _, m := range minors {
			sum += m.DurationYears
		}
		if math.Abs(sum-major.DurationYears) > durationTolerance {
			t.Errorf("%v: minors sum %v years, major is %v", major.Lord, sum, major.DurationYears)
		}
		if !minors[0].Start.Equal(major.Start) || !minors[6].End.Equal(major.End) {
			t.Errorf("%v: minors do not span the major exactly", major.Lord)
		}
	}
}

func TestFirdariaLordAt(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := CalculateFirdaria(birth, true)
	if err != nil {
		t.Fatal(err)
	}

	// Five years in: still inside the 10-year Sun major.
	at := birth.AddDate(5, 0, 0)
	if lord, ok := res.MajorLordAt(at); !ok || lord != astro.Sun {
		t.Errorf("MajorLordAt(+5y) = %v, %v; want Sun, true", lord, ok)
	}
	if _, ok := res.MinorLordAt(at); !ok {
		t.Error("MinorLordAt(+5y) should find an active minor")
	}

	// Beyond the 75-year scheme.
	if _, ok := res.MajorLordAt(birth.AddDate(90, 0, 0)); ok {
		t.Error("MajorLordAt(+90y) should report no active lord")
	}
}
