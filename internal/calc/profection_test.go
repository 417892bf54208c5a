package calc

import (
	"testing"
	"time"

	"github.com/asterion-dev/asterion/internal/astro"
)

func TestAgeAt(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		target time.Time
		want   int
	}{
		{time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(1991, 6, 14, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(1991, 6, 15, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		if got := AgeAt(birth, tt.target); got != tt.want {
			t.Errorf("AgeAt(%v) = %d, want %d", tt.target.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestCalculateProfection(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	asc := 60.0 // Gemini rising

	// Age 0: first house, the Ascendant sign itself.
	p := CalculateProfection(birth, asc, birth)
	if p.ProfectedHouse != 1 || p.ProfectedSign != astro.Gemini {
		t.Errorf("age 0: house %d sign %v, want 1 Gemini", p.ProfectedHouse, p.ProfectedSign)
	}
	if p.YearLord != astro.Mercury {
		t.Errorf("age 0: year lord = %v, want Mercury", p.YearLord)
	}

	// Age 6: seventh house of partnerships.
	p = CalculateProfection(birth, asc, birth.AddDate(6, 6, 0))
	if p.ProfectedHouse != 7 || p.ProfectedSign != astro.Sagittarius {
		t.Errorf("age 6: house %d sign %v, want 7 Sagittarius", p.ProfectedHouse, p.ProfectedSign)
	}
	if len(p.ActivatedTopics) == 0 || p.ActivatedTopics[0] != "Partnerships" {
		t.Errorf("age 6: topics = %v, want Partnerships first", p.ActivatedTopics)
	}
}

func TestProfectionCyclesWithPeriod12(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	asc := 125.0 // Leo rising

	for age := 0; age < 12; age++ {
		a := CalculateProfection(birth, asc, birth.AddDate(age, 6, 0))
		b := CalculateProfection(birth, asc, birth.AddDate(age+12, 6, 0))
		if a.ProfectedHouse != b.ProfectedHouse || a.ProfectedSign != b.ProfectedSign {
			t.Errorf("age %d vs %d: profection should repeat", age, age+12)
		}
	}
}

func TestMonthsIntoProfectionYear(t *testing.T) {
	birth := time.Date(1990, 7, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"anniversary itself", time.Date(2020, 7, 1, 12, 0, 0, 0, time.UTC), 0},
		{"one month in", time.Date(2020, 8, 1, 12, 0, 0, 0, time.UTC), 1},
		{"day before the month turns", time.Date(2020, 8, 31, 12, 0, 0, 0, time.UTC), 1},
		{"last month of the year", time.Date(2021, 6, 30, 12, 0, 0, 0, time.UTC), 11},
		{"wraps at the next anniversary", time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC), 0},
		{"before birth clamps", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsIntoProfectionYear(birth, tt.target); got != tt.want {
				t.Errorf("MonthsIntoProfectionYear = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthlyProfections(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	annual := CalculateProfection(birth, 60.0, birth.AddDate(1, 6, 0))

	months := CalculateMonthlyProfections(annual)
	if len(months) != 12 {
		t.Fatalf("got %d months, want 12", len(months))
	}
	if months[0].ProfectedHouse != annual.ProfectedHouse || months[0].ProfectedSign != annual.ProfectedSign {
		t.Error("first month should match the annual profection")
	}
	if months[11].ProfectedSign.Next() != annual.ProfectedSign {
		t.Error("twelfth month should sit one sign before the annual sign")
	}
	for i, m := range months {
		if m.MonthLord != astro.Ruler(m.ProfectedSign) {
			t.Errorf("month %d: lord %v does not rule %v", i+1, m.MonthLord, m.ProfectedSign)
		}
	}
}
