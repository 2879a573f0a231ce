package scoring

// PoliticianProfile is a curated historical-performance record for one
// legislator. Alpha is a fraction in [0,1] rating historical accuracy;
// it is supplied as static configuration, not computed from data.
type PoliticianProfile struct {
	HistoricalAlpha float64
	TrustScore      int
	Sectors         []string
	Committee       string
	LateFiler       bool
	Notes           string
}

// ReferenceData holds the static lookup tables the scorers depend on.
// It is read-only after construction; tests substitute synthetic tables.
type ReferenceData struct {
	Profiles         map[string]PoliticianProfile
	CommitteeSectors map[string][]string
}

// ProfileFor returns the curated profile for a politician, if any.
func (r ReferenceData) ProfileFor(name string) (PoliticianProfile, bool) {
	p, ok := r.Profiles[name]
	return p, ok
}

// CommitteeHolds reports whether the given symbol is in the given
// committee's jurisdiction.
func (r ReferenceData) CommitteeHolds(committee, symbol string) bool {
	for _, s := range r.CommitteeSectors[committee] {
		if s == symbol {
			return true
		}
	}
	return false
}

// CommitteeByPolitician maps known legislators to their committee
// assignment, derived from the profile table.
func (r ReferenceData) CommitteeByPolitician() map[string]string {
	out := make(map[string]string, len(r.Profiles))
	for name, p := range r.Profiles {
		if p.Committee != "" {
			out[name] = p.Committee
		}
	}
	return out
}

// DefaultReferenceData returns the curated production tables, based on
// public analysis of historical congressional trades.
func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		Profiles: map[string]PoliticianProfile{
			"Nancy Pelosi": {
				HistoricalAlpha: 0.92,
				TrustScore:      95,
				Sectors:         []string{"tech", "pharma"},
				Committee:       "Science, Space, and Technology",
				Notes:           "Spouse's trades, often NVIDIA, Apple, Tesla",
			},
			"Dan Crenshaw": {
				HistoricalAlpha: 0.71,
				TrustScore:      72,
				Sectors:         []string{"defense", "energy"},
				Committee:       "Armed Services",
				LateFiler:       true,
			},
			"Tommy Tuberville": {
				HistoricalAlpha: 0.68,
				TrustScore:      70,
				Sectors:         []string{"defense"},
				Committee:       "Armed Services",
				LateFiler:       true,
				Notes:           "Bought defense stocks while on Armed Services",
			},
			"Josh Gottheimer": {
				HistoricalAlpha: 0.65,
				TrustScore:      65,
				Sectors:         []string{"fintech", "banking"},
				Committee:       "Financial Services",
			},
			"Michael McCaul": {
				HistoricalAlpha: 0.60,
				TrustScore:      62,
				Sectors:         []string{"tech", "defense"},
				Committee:       "Foreign Affairs",
				LateFiler:       true,
			},
		},
		CommitteeSectors: map[string][]string{
			"Armed Services":                  {"LMT", "RTX", "NOC", "BA", "GD", "HII", "LDOS", "CACI", "SAIC"},
			"Financial Services":              {"JPM", "BAC", "GS", "MS", "V", "MA", "SQ", "PYPL"},
			"Banking":                         {"JPM", "BAC", "WFC", "C", "USB", "PNC"},
			"Energy and Commerce":             {"UNH", "CVS", "CI", "HUM", "CNC"},
			"Science, Space, and Technology":  {"NVDA", "AMD", "INTC", "MSFT", "GOOGL", "META"},
			"Energy":                          {"XOM", "CVX", "COP", "SLB", "HAL", "EOG"},
			"Agriculture":                     {"DE", "ADM", "BG", "MOS", "NTR"},
		},
	}
}
