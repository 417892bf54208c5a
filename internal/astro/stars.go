package astro

// FixedStar is a catalog entry with its ecliptic longitude (epoch J2000)
// and traditional significations.
type FixedStar struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Royal     bool    `json:"royal"`
	Nature    string  `json:"nature"`
}

// StarCatalog lists the fixed stars considered for contacts. The four
// royal stars (the Persian "watchers") carry extra interpretive weight.
var StarCatalog = []FixedStar{
	{Name: "Aldebaran", Longitude: 69.47, Royal: true, Nature: "honor through integrity, watcher of the east"},
	{Name: "Regulus", Longitude: 149.59, Royal: true, Nature: "success and command, watcher of the north"},
	{Name: "Antares", Longitude: 249.47, Royal: true, Nature: "intensity and obsession, watcher of the west"},
	{Name: "Fomalhaut", Longitude: 333.52, Royal: true, Nature: "idealism and charisma, watcher of the south"},
	{Name: "Algol", Longitude: 56.13, Royal: false, Nature: "danger and loss of the head"},
	{Name: "Capella", Longitude: 71.53, Royal: false, Nature: "curiosity and restlessness"},
	{Name: "Sirius", Longitude: 104.00, Royal: false, Nature: "brilliance and renown"},
	{Name: "Procyon", Longitude: 95.47, Royal: false, Nature: "sudden rise, sudden fall"},
	{Name: "Spica", Longitude: 203.50, Royal: false, Nature: "gifts and protection"},
	{Name: "Arcturus", Longitude: 204.22, Royal: false, Nature: "prosperity through leadership"},
	{Name: "Vega", Longitude: 285.17, Royal: false, Nature: "artistry and magnetism"},
}
