package calc

import (
	"time"

	"github.com/asterion-dev/asterion/internal/astro"
)

// houseTopics maps each profected house to the life areas it activates.
var houseTopics = map[int][]string{
	1:  {"Identity", "Vitality", "Body", "New Beginnings"},
	2:  {"Finances", "Possessions", "Resources", "Values"},
	3:  {"Communication", "Siblings", "Short Travel", "Learning"},
	4:  {"Home", "Family", "Roots", "Property"},
	5:  {"Creativity", "Children", "Pleasure", "Romance"},
	6:  {"Health", "Work", "Service", "Daily Routine"},
	7:  {"Partnerships", "Marriage", "Open Enemies", "Contracts"},
	8:  {"Shared Resources", "Transformation", "Debts", "Mortality"},
	9:  {"Philosophy", "Long Travel", "Higher Learning", "Faith"},
	10: {"Career", "Reputation", "Authority", "Public Life"},
	11: {"Friends", "Groups", "Hopes", "Alliances"},
	12: {"Solitude", "Hidden Matters", "Loss", "Retreat"},
}

// ProfectionResult is the annually activated house with its lord and
// topic list.
type ProfectionResult struct {
	Age             int          `json:"age"`
	ProfectedHouse  int          `json:"profected_house"`
	ProfectedSign   astro.Sign   `json:"profected_sign"`
	SignName        string       `json:"sign_name"`
	YearLord        astro.Planet `json:"year_lord"`
	ActivatedTopics []string     `json:"activated_topics"`
}

// MonthlyProfection is the month-level advance within a profection year.
type MonthlyProfection struct {
	MonthIndex     int          `json:"month_index"`
	ProfectedHouse int          `json:"profected_house"`
	ProfectedSign  astro.Sign   `json:"profected_sign"`
	SignName       string       `json:"sign_name"`
	MonthLord      astro.Planet `json:"month_lord"`
}

// AgeAt returns completed years between birth and target by exact
// month/day comparison. Targets before birth clamp to zero.
func AgeAt(birth, target time.Time) int {
	if target.Before(birth) {
		return 0
	}
	age := target.Year() - birth.Year()
	if target.Month() < birth.Month() ||
		(target.Month() == birth.Month() && target.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// CalculateProfection computes the annual profection for a target date.
// The house advances one sign from the Ascendant per completed year,
// cycling with period 12.
func CalculateProfection(birth time.Time, ascLon float64, target time.Time) ProfectionResult {
	age := AgeAt(birth, target)
	house := (age % 12) + 1
	sign := astro.SignFromLongitude(ascLon).Advance(house - 1)

	return ProfectionResult{
		Age:             age,
		ProfectedHouse:  house,
		ProfectedSign:   sign,
		SignName:        sign.String(),
		YearLord:        astro.Ruler(sign),
		ActivatedTopics: houseTopics[house],
	}
}

// MonthsIntoProfectionYear counts completed months since the last
// birth anniversary, in [0, 11]. Month zero is the anniversary month
// the annual profection begins in.
func MonthsIntoProfectionYear(birth, target time.Time) int {
	if target.Before(birth) {
		return 0
	}
	months := (target.Year()-birth.Year())*12 + int(target.Month()) - int(birth.Month())
	if target.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months % 12
}

// CalculateMonthlyProfections expands an annual profection into its
// twelve monthly sub-profections, advancing one house per month
// starting from the annual house.
func CalculateMonthlyProfections(annual ProfectionResult) []MonthlyProfection {
	months := make([]MonthlyProfection, 0, 12)
	for m := 0; m < 12; m++ {
		house := ((annual.ProfectedHouse - 1 + m) % 12) + 1
		sign := annual.ProfectedSign.Advance(m)
		months = append(months, MonthlyProfection{
			MonthIndex:     m + 1,
			ProfectedHouse: house,
			ProfectedSign:  sign,
			SignName:       sign.String(),
			MonthLord:      astro.Ruler(sign),
		})
	}
	return months
}
