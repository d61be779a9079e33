package positions

import (
	"strings"

	"github.com/investboard/investboard/internal/domain"
)

// TypeAll is the identity type filter
const TypeAll = "ALL"

// View projections over a position snapshot. Both are pure and
// commutative: applying the type filter before or after the symbol
// search yields the same set.

// FilterByType keeps positions of the given type. An empty type or
// TypeAll returns the input unchanged.
func FilterByType(positions []domain.Position, assetType string) []domain.Position {
	if assetType == "" || strings.EqualFold(assetType, TypeAll) {
		return positions
	}

	want := domain.AssetType(strings.ToUpper(assetType))
	var filtered []domain.Position
	for _, p := range positions {
		if p.Type == want {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SearchBySymbol keeps positions whose symbol contains the query,
// case-insensitively. A blank query returns the input unchanged.
func SearchBySymbol(positions []domain.Position, query string) []domain.Position {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return positions
	}

	var matched []domain.Position
	for _, p := range positions {
		if strings.Contains(strings.ToLower(p.Symbol), query) {
			matched = append(matched, p)
		}
	}
	return matched
}
