package astro

// Planet names the seven classical planets plus the lunar nodes.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mercury Planet = "Mercury"
	Venus   Planet = "Venus"
	Mars    Planet = "Mars"
	Jupiter Planet = "Jupiter"
	Saturn  Planet = "Saturn"

	NorthNode Planet = "North Node"
	SouthNode Planet = "South Node"
)

// ClassicalPlanets lists the seven visible planets in Chaldean order.
var ClassicalPlanets = []Planet{Saturn, Jupiter, Mars, Sun, Venus, Mercury, Moon}

// Sect classifies a planet as diurnal, nocturnal, or common.
type Sect int

const (
	SectCommon Sect = iota
	SectDiurnal
	SectNocturnal
)

// PlanetSect returns the traditional sect of a planet. Mercury is common.
func PlanetSect(p Planet) Sect {
	switch p {
	case Sun, Jupiter, Saturn:
		return SectDiurnal
	case Moon, Venus, Mars:
		return SectNocturnal
	default:
		return SectCommon
	}
}

// InSect reports whether a planet belongs to the chart's ruling sect.
func InSect(p Planet, isDay bool) bool {
	s := PlanetSect(p)
	if isDay {
		return s == SectDiurnal
	}
	return s == SectNocturnal
}

// Dignity is one of the five essential dignities or the two debilities.
type Dignity string

const (
	DignityRulership  Dignity = "rulership"
	DignityExaltation Dignity = "exaltation"
	DignityTriplicity Dignity = "triplicity"
	DignityTerm       Dignity = "term"
	DignityFace       Dignity = "face"
	DignityDetriment  Dignity = "detriment"
	DignityFall       Dignity = "fall"
)

var rulerships = map[Sign]Planet{
	Aries:       Mars,
	Taurus:      Venus,
	Gemini:      Mercury,
	Cancer:      Moon,
	Leo:         Sun,
	Virgo:       Mercury,
	Libra:       Venus,
	Scorpio:     Mars,
	Sagittarius: Jupiter,
	Capricorn:   Saturn,
	Aquarius:    Saturn,
	Pisces:      Jupiter,
}

var exaltations = map[Sign]Planet{
	Aries:     Sun,
	Taurus:    Moon,
	Cancer:    Jupiter,
	Virgo:     Mercury,
	Libra:     Saturn,
	Capricorn: Mars,
	Pisces:    Venus,
}

// Ruler returns the domicile ruler of a sign.
func Ruler(s Sign) Planet {
	return rulerships[s]
}

// Exalted returns the planet exalted in a sign; ok is false when none is.
func Exalted(s Sign) (Planet, bool) {
	p, ok := exaltations[s]
	return p, ok
}

// InDetriment reports whether the planet rules the opposite sign.
func InDetriment(p Planet, s Sign) bool {
	return rulerships[s.Opposite()] == p
}

// InFall reports whether the planet is exalted in the opposite sign.
func InFall(p Planet, s Sign) bool {
	e, ok := exaltations[s.Opposite()]
	return ok && e == p
}

// Element groups signs into the four triplicities.
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

// SignElement returns the element of a sign.
func SignElement(s Sign) Element {
	return Element(int(s) % 4)
}

// triplicityRulers holds the Dorothean day, night, and participating
// rulers per element.
var triplicityRulers = map[Element][3]Planet{
	Fire:  {Sun, Jupiter, Saturn},
	Earth: {Venus, Moon, Mars},
	Air:   {Saturn, Mercury, Jupiter},
	Water: {Venus, Mars, Moon},
}

// TriplicityRuler returns the sect-appropriate triplicity ruler of a sign.
func TriplicityRuler(s Sign, isDay bool) Planet {
	rulers := triplicityRulers[SignElement(s)]
	if isDay {
		return rulers[0]
	}
	return rulers[1]
}

// TriplicityParticipant returns the participating triplicity ruler.
func TriplicityParticipant(s Sign) Planet {
	return triplicityRulers[SignElement(s)][2]
}

// term is an Egyptian bound: the ruling planet holds the sign up to
// (but excluding) UpTo degrees.
type term struct {
	UpTo  float64
	Ruler Planet
}

// Egyptian terms. Each sign's bounds cover [0, 30) with no gaps.
var terms = map[Sign][]term{
	Aries:       {{6, Jupiter}, {12, Venus}, {20, Mercury}, {25, Mars}, {30, Saturn}},
	Taurus:      {{8, Venus}, {14, Mercury}, {22, Jupiter}, {27, Saturn}, {30, Mars}},
	Gemini:      {{6, Mercury}, {12, Jupiter}, {17, Venus}, {24, Mars}, {30, Saturn}},
	Cancer:      {{7, Mars}, {13, Venus}, {19, Mercury}, {26, Jupiter}, {30, Saturn}},
	Leo:         {{6, Jupiter}, {11, Venus}, {18, Saturn}, {24, Mercury}, {30, Mars}},
	Virgo:       {{7, Mercury}, {17, Venus}, {21, Jupiter}, {28, Mars}, {30, Saturn}},
	Libra:       {{6, Saturn}, {14, Mercury}, {21, Jupiter}, {28, Venus}, {30, Mars}},
	Scorpio:     {{7, Mars}, {11, Venus}, {19, Mercury}, {24, Jupiter}, {30, Saturn}},
	Sagittarius: {{12, Jupiter}, {17, Venus}, {21, Mercury}, {26, Saturn}, {30, Mars}},
	Capricorn:   {{7, Mercury}, {14, Jupiter}, {22, Venus}, {26, Saturn}, {30, Mars}},
	Aquarius:    {{7, Mercury}, {13, Venus}, {20, Jupiter}, {25, Mars}, {30, Saturn}},
	Pisces:      {{12, Venus}, {16, Jupiter}, {19, Mercury}, {28, Mars}, {30, Saturn}},
}

// TermRuler returns the Egyptian bound ruler for a degree within a sign.
func TermRuler(s Sign, degreeInSign float64) Planet {
	for _, t := range terms[s] {
		if degreeInSign < t.UpTo {
			return t.Ruler
		}
	}
	return terms[s][len(terms[s])-1].Ruler
}

// Chaldean faces: three decans of 10 degrees per sign.
var faces = map[Sign][3]Planet{
	Aries:       {Mars, Sun, Venus},
	Taurus:      {Mercury, Moon, Saturn},
	Gemini:      {Jupiter, Mars, Sun},
	Cancer:      {Venus, Mercury, Moon},
	Leo:         {Saturn, Jupiter, Mars},
	Virgo:       {Sun, Venus, Mercury},
	Libra:       {Moon, Saturn, Jupiter},
	Scorpio:     {Mars, Sun, Venus},
	Sagittarius: {Mercury, Moon, Saturn},
	Capricorn:   {Jupiter, Mars, Sun},
	Aquarius:    {Venus, Mercury, Moon},
	Pisces:      {Saturn, Jupiter, Mars},
}

// FaceRuler returns the decan ruler for a degree within a sign.
func FaceRuler(s Sign, degreeInSign float64) Planet {
	idx := int(degreeInSign / 10)
	if idx > 2 {
		idx = 2
	}
	return faces[s][idx]
}

// DignitiesAt lists every dignity and debility a planet holds at a
// specific sign and degree.
func DignitiesAt(p Planet, s Sign, degreeInSign float64) []Dignity {
	var out []Dignity
	if Ruler(s) == p {
		out = append(out, DignityRulership)
	}
	if e, ok := Exalted(s); ok && e == p {
		out = append(out, DignityExaltation)
	}
	if TermRuler(s, degreeInSign) == p {
		out = append(out, DignityTerm)
	}
	if FaceRuler(s, degreeInSign) == p {
		out = append(out, DignityFace)
	}
	if InDetriment(p, s) {
		out = append(out, DignityDetriment)
	}
	if InFall(p, s) {
		out = append(out, DignityFall)
	}
	return out
}
