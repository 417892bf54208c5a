package calc

import (
	"math"
	"testing"

	"github.com/asterion-dev/asterion/internal/astro"
)

func TestCalculateStarContacts(t *testing.T) {
	// Regulus sits at 29.59 Leo in the catalog.
	points := []astro.Point{
		astro.NewPoint("Sun", 149.6),
		astro.NewPoint("Moon", 10),
	}

	contacts := CalculateStarContacts(points, astro.StarCatalog, 1.0)
	if len(contacts) == 0 {
		t.Fatal("expected a Regulus contact")
	}

	found := false
	for _, c := range contacts {
		if c.Point == "Sun" && c.Star == "Regulus" {
			found = true
			if !c.Royal {
				t.Error("Regulus should be flagged royal")
			}
			if c.Type != ContactConjunction {
				t.Errorf("contact type = %v, want conjunction", c.Type)
			}
		}
	}
	if !found {
		t.Errorf("Sun conjunct Regulus not found in %v", contacts)
	}
}

func TestCalculateStarContactsOpposition(t *testing.T) {
	// A point opposite Aldebaran (69.47) lands near Antares; both the
	// opposition to one and the conjunction to the other should show.
	points := []astro.Point{astro.NewPoint("Mars", 249.47)}

	contacts := CalculateStarContacts(points, astro.StarCatalog, 0.5)

	var gotOpp, gotConj bool
	for _, c := range contacts {
		if c.Star == "Aldebaran" && c.Type == ContactOpposition {
			gotOpp = true
			if math.Abs(c.Orb) > 1e-9 {
				t.Errorf("Aldebaran opposition orb = %v, want 0", c.Orb)
			}
		}
		if c.Star == "Antares" && c.Type == ContactConjunction {
			gotConj = true
		}
	}
	if !gotOpp {
		t.Error("missing Aldebaran opposition")
	}
	if !gotConj {
		t.Error("missing Antares conjunction")
	}
}

func TestMidpoint(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{0, 90, 45},
		{350, 10, 0},  // wraps through 0 Aries
		{90, 270, 180}, // exact opposition takes the nearer arc midpoint
		{100, 100, 100},
	}
	for _, tt := range tests {
		got := Midpoint(tt.a, tt.b)
		if astro.Orb(got, tt.a) > 90.000001 && astro.Orb(got, tt.b) > 90.000001 {
			t.Errorf("Midpoint(%v, %v) = %v sits on the far arc", tt.a, tt.b, got)
		}
		if tt.a != 90 || tt.b != 270 { // opposition midpoint is ambiguous
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Midpoint(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		}
	}
}

func TestSunMoonMidpointContacts(t *testing.T) {
	// Sun 0 Aries, Moon 0 Gemini: midpoint 0 Taurus. Venus sits on it.
	points := []astro.Point{
		astro.NewPoint("Sun", 0),
		astro.NewPoint("Moon", 60),
		astro.NewPoint("Venus", 30.4),
		astro.NewPoint("Saturn", 200),
	}

	contacts := CalculateSunMoonMidpointContacts(0, 60, points, 1.0)
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1 (%v)", len(contacts), contacts)
	}
	c := contacts[0]
	if c.Point != "Venus" || c.Midpoint != "Sun/Moon" {
		t.Errorf("contact = %+v, want Venus on Sun/Moon", c)
	}
	if math.Abs(c.Orb-0.4) > 1e-9 {
		t.Errorf("orb = %v, want 0.4", c.Orb)
	}
}

func TestSunMoonMidpointSkipsLuminaries(t *testing.T) {
	// The Sun itself conjunct its own midpoint must not count.
	points := []astro.Point{
		astro.NewPoint("Sun", 30),
		astro.NewPoint("Moon", 30.5),
	}
	if contacts := CalculateSunMoonMidpointContacts(30, 30.5, points, 1.0); len(contacts) != 0 {
		t.Errorf("luminaries should be excluded, got %v", contacts)
	}
}
