package astro

import "testing"

func TestRulerAndExaltation(t *testing.T) {
	if got := Ruler(Leo); got != Sun {
		t.Errorf("Ruler(Leo) = %v, want Sun", got)
	}
	if got := Ruler(Cancer); got != Moon {
		t.Errorf("Ruler(Cancer) = %v, want Moon", got)
	}
	if ex, ok := Exalted(Aries); !ok || ex != Sun {
		t.Errorf("Exalted(Aries) = %v, %v, want Sun, true", ex, ok)
	}
	if _, ok := Exalted(Gemini); ok {
		t.Error("Exalted(Gemini) should report no exaltation")
	}
}

func TestDetrimentAndFall(t *testing.T) {
	// Saturn rules Aquarius, so it is in detriment in Leo.
	if !InDetriment(Saturn, Leo) {
		t.Error("Saturn should be in detriment in Leo")
	}
	// Saturn is exalted in Libra, so it falls in Aries.
	if !InFall(Saturn, Aries) {
		t.Error("Saturn should be in fall in Aries")
	}
	if InDetriment(Sun, Leo) {
		t.Error("Sun should not be in detriment in its own sign")
	}
}

func TestTriplicityRuler(t *testing.T) {
	tests := []struct {
		sign  Sign
		isDay bool
		want  Planet
	}{
		{Aries, true, Sun},
		{Aries, false, Jupiter},
		{Taurus, true, Venus},
		{Taurus, false, Moon},
		{Gemini, true, Saturn},
		{Gemini, false, Mercury},
		{Cancer, true, Venus},
		{Cancer, false, Mars},
	}
	for _, tt := range tests {
		if got := TriplicityRuler(tt.sign, tt.isDay); got != tt.want {
			t.Errorf("TriplicityRuler(%v, day=%v) = %v, want %v", tt.sign, tt.isDay, got, tt.want)
		}
	}
}

func TestTermRuler(t *testing.T) {
	tests := []struct {
		sign   Sign
		degree float64
		want   Planet
	}{
		{Aries, 0, Jupiter},
		{Aries, 5.99, Jupiter},
		{Aries, 6, Venus},
		{Aries, 29.99, Saturn},
		{Capricorn, 10, Jupiter},
	}
	for _, tt := range tests {
		if got := TermRuler(tt.sign, tt.degree); got != tt.want {
			t.Errorf("TermRuler(%v, %v) = %v, want %v", tt.sign, tt.degree, got, tt.want)
		}
	}
}

// Every sign's bounds must tile [0, 30) without gaps.
func TestTermsCoverSign(t *testing.T) {
	for s := Aries; s <= Pisces; s++ {
		prev := 0.0
		for _, tm := range terms[s] {
			if tm.UpTo <= prev {
				t.Errorf("%v: bound at %v does not advance past %v", s, tm.UpTo, prev)
			}
			prev = tm.UpTo
		}
		if prev != 30 {
			t.Errorf("%v: bounds end at %v, want 30", s, prev)
		}
	}
}

func TestFaceRuler(t *testing.T) {
	if got := FaceRuler(Aries, 0); got != Mars {
		t.Errorf("FaceRuler(Aries, 0) = %v, want Mars", got)
	}
	if got := FaceRuler(Aries, 15); got != Sun {
		t.Errorf("FaceRuler(Aries, 15) = %v, want Sun", got)
	}
	if got := FaceRuler(Aries, 29.9); got != Venus {
		t.Errorf("FaceRuler(Aries, 29.9) = %v, want Venus", got)
	}
}

func TestInSect(t *testing.T) {
	if !InSect(Sun, true) || InSect(Sun, false) {
		t.Error("Sun is diurnal")
	}
	if !InSect(Moon, false) || InSect(Moon, true) {
		t.Error("Moon is nocturnal")
	}
	if InSect(Mercury, true) || InSect(Mercury, false) {
		t.Error("Mercury is common and never in sect by itself")
	}
}

func TestDignitiesAt(t *testing.T) {
	// Sun at 5 Aries: exalted, in Jupiter's bound, in Mars's face.
	got := DignitiesAt(Sun, Aries, 5)
	want := map[Dignity]bool{DignityExaltation: true}
	for _, d := range got {
		if d == DignityRulership || d == DignityDetriment || d == DignityFall {
			t.Errorf("Sun at 5 Aries should not hold %v", d)
		}
	}
	found := false
	for _, d := range got {
		if want[d] {
			found = true
		}
	}
	if !found {
		t.Errorf("Sun at 5 Aries should be exalted, got %v", got)
	}
}
