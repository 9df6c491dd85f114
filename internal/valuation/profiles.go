package valuation

import "strings"

// IndustryProfile carries the P/E multiple for each market branch and the
// perpetuity growth rate used by the DCF model.
type IndustryProfile struct {
	PEForeign  float64
	PEDomestic float64
	Growth     float64
}

// PE selects the multiple for the market branch.
func (p IndustryProfile) PE(domestic bool) float64 {
	if domestic {
		return p.PEDomestic
	}
	return p.PEForeign
}

// ProfileTable is an immutable industry lookup, built once at startup and
// passed into the engine. Unknown labels resolve to the fallback entry.
type ProfileTable struct {
	profiles map[string]IndustryProfile
	aliases  map[string]string
	fallback string
}

// DefaultProfiles returns the standard table. The front-end sends the Chinese
// labels, so those are registered as aliases of the English keys.
func DefaultProfiles() ProfileTable {
	return ProfileTable{
		profiles: map[string]IndustryProfile{
			"technology": {PEForeign: 25, PEDomestic: 18, Growth: 0.04},
			"healthcare": {PEForeign: 22, PEDomestic: 20, Growth: 0.03},
			"financial":  {PEForeign: 12, PEDomestic: 10, Growth: 0.02},
			"energy":     {PEForeign: 10, PEDomestic: 8, Growth: 0.02},
			"consumer":   {PEForeign: 18, PEDomestic: 15, Growth: 0.03},
			"industrial": {PEForeign: 15, PEDomestic: 12, Growth: 0.025},
		},
		aliases: map[string]string{
			"科技": "technology",
			"醫療": "healthcare",
			"金融": "financial",
			"能源": "energy",
			"消費": "consumer",
			"工業": "industrial",
		},
		fallback: "technology",
	}
}

// Lookup resolves an industry label to its profile, falling back to the
// default entry for unrecognized labels.
func (t ProfileTable) Lookup(label string) IndustryProfile {
	key := strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := t.aliases[key]; ok {
		key = canonical
	}
	if p, ok := t.profiles[key]; ok {
		return p
	}
	return t.profiles[t.fallback]
}
