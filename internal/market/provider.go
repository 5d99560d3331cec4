// Package market supplies per-market pricing profiles to the engine.
package market

import (
	"strings"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Provider looks up the market profile for a (city, state) key. Lookup is
// total: implementations return a fallback profile for unknown keys and
// report it via the second return value so callers can surface a warning.
type Provider interface {
	Lookup(city, state string) (profile core.MarketProfile, known bool)
}

// Key builds the canonical lookup key for a city/state pair.
func Key(city, state string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToUpper(strings.TrimSpace(state))
}
