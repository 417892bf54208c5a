package calc

import (
	"math"
	"testing"

	"github.com/asterion-dev/asterion/internal/astro"
)

func TestAntiscia(t *testing.T) {
	tests := []struct {
		lon  float64
		want float64
	}{
		{0, 180},    // 0 Aries mirrors to 0 Libra
		{90, 90},    // 0 Cancer is its own antiscia
		{270, 270},  // 0 Capricorn likewise
		{100, 80},   // 10 Cancer mirrors to 20 Gemini
		{200, 340},  // wraps below zero
	}
	for _, tt := range tests {
		if got := Antiscia(tt.lon); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Antiscia(%v) = %v, want %v", tt.lon, got, tt.want)
		}
	}
}

func TestAntisciaInvolution(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 7.5 {
		if got := Antiscia(Antiscia(lon)); math.Abs(got-lon) > 1e-9 {
			t.Errorf("Antiscia(Antiscia(%v)) = %v, want %v", lon, got, lon)
		}
		if got := ContraAntiscia(ContraAntiscia(lon)); math.Abs(got-lon) > 1e-9 {
			t.Errorf("ContraAntiscia(ContraAntiscia(%v)) = %v, want %v", lon, got, lon)
		}
	}
}

func TestContraAntisciaOpposesPoint(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 15 {
		contra := ContraAntiscia(lon)
		if got := astro.Orb(lon, contra); math.Abs(got-180) > 1e-9 {
			t.Errorf("lon %v: contra-antiscia %v is %v away, want 180", lon, contra, got)
		}
		want := astro.NormalizeLongitude(360 - Antiscia(lon))
		if math.Abs(contra-want) > 1e-9 {
			t.Errorf("ContraAntiscia(%v) = %v, want 360 - antiscia = %v", lon, contra, want)
		}
	}
}

func TestCalculateAntisciaContacts(t *testing.T) {
	// Sun at 10 Cancer: antiscia 20 Gemini. Venus sits right on it.
	points := []astro.Point{
		astro.NewPoint("Sun", 100),
		astro.NewPoint("Venus", 80.5),
		astro.NewPoint("Saturn", 10),
	}

	contacts := CalculateAntisciaContacts(points, 1.5)
	if len(contacts) == 0 {
		t.Fatal("expected at least one contact")
	}

	found := false
	for _, c := range contacts {
		if c.Original == "Sun" && c.Contacted == "Venus" && c.Type == ContactAntiscia {
			found = true
			if math.Abs(c.Orb-0.5) > 1e-9 {
				t.Errorf("orb = %v, want 0.5", c.Orb)
			}
		}
	}
	if !found {
		t.Errorf("Sun antiscia to Venus not found in %v", contacts)
	}

	for i := 1; i < len(contacts); i++ {
		if contacts[i].Orb < contacts[i-1].Orb {
			t.Error("contacts not sorted tightest first")
		}
	}
}

func TestCalculateAntisciaContactsRespectsOrb(t *testing.T) {
	points := []astro.Point{
		astro.NewPoint("Sun", 100),
		astro.NewPoint("Venus", 84), // 4 degrees from the antiscia point
	}
	if contacts := CalculateAntisciaContacts(points, 1.5); len(contacts) != 0 {
		t.Errorf("wide contact should be excluded, got %v", contacts)
	}
}
