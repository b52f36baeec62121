package domain

import (
	"regexp"
	"strings"
)

var coinIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidCoinID reports whether id has the shape of an API coin identifier
func ValidCoinID(id string) bool {
	return len(id) <= 128 && coinIDPattern.MatchString(id)
}

// FilterCoins returns the coins whose name or symbol contains query,
// ignoring case. An empty query returns the full set in order.
// The input slice is never modified.
func FilterCoins(coins []CoinSummary, query string) []CoinSummary {
	if query == "" {
		out := make([]CoinSummary, len(coins))
		copy(out, coins)
		return out
	}

	q := strings.ToLower(query)
	out := make([]CoinSummary, 0, len(coins))
	for _, c := range coins {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Symbol), q) {
			out = append(out, c)
		}
	}
	return out
}

// UniqueByID drops coins whose ID already appeared earlier in the slice
func UniqueByID(coins []CoinSummary) []CoinSummary {
	seen := make(map[string]struct{}, len(coins))
	out := make([]CoinSummary, 0, len(coins))
	for _, c := range coins {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
