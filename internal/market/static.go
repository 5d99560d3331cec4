package market

import (
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// StaticProvider serves profiles from a fixed in-memory table. It exists
// so analyses are reproducible; live data feeds stay outside the engine
// and implement Provider at the caller's boundary.
type StaticProvider struct {
	profiles map[string]core.MarketProfile
	fallback core.MarketProfile
}

// NewStatic creates a provider over the given table. Nil entries are
// allowed; the fallback serves every key not present.
func NewStatic(profiles map[string]core.MarketProfile, fallback core.MarketProfile) *StaticProvider {
	if profiles == nil {
		profiles = map[string]core.MarketProfile{}
	}
	return &StaticProvider{profiles: profiles, fallback: fallback}
}

// NewDefaultStatic creates a provider seeded with the built-in metro table.
func NewDefaultStatic() *StaticProvider {
	return NewStatic(defaultProfiles(), DefaultFallback())
}

// Lookup implements Provider.
func (p *StaticProvider) Lookup(city, state string) (core.MarketProfile, bool) {
	if profile, ok := p.profiles[Key(city, state)]; ok {
		return profile, true
	}
	return p.fallback, false
}

// Set adds or replaces a profile.
func (p *StaticProvider) Set(city, state string, profile core.MarketProfile) {
	p.profiles[Key(city, state)] = profile
}

// DefaultFallback is the documented profile used for unknown markets:
// a conservative national baseline.
func DefaultFallback() core.MarketProfile {
	return core.MarketProfile{
		MedianPricePerSqFt: core.Dollars(120),
		RentPerSqFt:        core.Dollars(1.00),
		AnnualAppreciation: 0.03,
	}
}

func defaultProfiles() map[string]core.MarketProfile {
	table := []struct {
		city, state string
		pricePSF    float64
		rentPSF     float64
		apprec      float64
	}{
		{"houston", "TX", 150, 1.20, 0.05},
		{"san antonio", "TX", 135, 1.10, 0.045},
		{"dallas", "TX", 165, 1.30, 0.055},
		{"austin", "TX", 230, 1.60, 0.06},
		{"fort worth", "TX", 145, 1.15, 0.05},
		{"atlanta", "GA", 170, 1.35, 0.055},
		{"phoenix", "AZ", 210, 1.45, 0.05},
		{"memphis", "TN", 110, 1.05, 0.04},
		{"cleveland", "OH", 95, 0.95, 0.035},
		{"kansas city", "MO", 125, 1.05, 0.04},
		{"birmingham", "AL", 105, 0.95, 0.035},
		{"jacksonville", "FL", 160, 1.25, 0.05},
	}

	profiles := make(map[string]core.MarketProfile, len(table))
	for _, r := range table {
		profiles[Key(r.city, r.state)] = core.MarketProfile{
			MedianPricePerSqFt: core.Dollars(r.pricePSF),
			RentPerSqFt:        core.Dollars(r.rentPSF),
			AnnualAppreciation: r.apprec,
		}
	}
	return profiles
}
