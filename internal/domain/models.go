package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire and storage format for calendar dates.
const DateFormat = "2006-01-02"

// AssetType classifies a position by the kind of asset it holds.
type AssetType string

const (
	AssetStock       AssetType = "STOCK"
	AssetCrypto      AssetType = "CRYPTO"
	AssetFund        AssetType = "FUND"
	AssetFixedIncome AssetType = "FIXED_INCOME"
	AssetOther       AssetType = "OTHER"
)

// AllAssetTypes returns every asset type in declaration order.
// Aggregations iterate this so that empty types still show up as zeros.
func AllAssetTypes() []AssetType {
	return []AssetType{AssetStock, AssetCrypto, AssetFund, AssetFixedIncome, AssetOther}
}

// ParseAssetType parses a case-insensitive asset type name.
func ParseAssetType(s string) (AssetType, error) {
	candidate := AssetType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range AllAssetTypes() {
		if candidate == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown asset type: %q", s)
}

// Position represents a currently-held investment lot.
// Immutable once created except through update/delete; the ID is an
// opaque token, never interpreted as a number.
type Position struct {
	ID            string    `json:"id"`
	Type          AssetType `json:"type"`
	Symbol        string    `json:"symbol"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchasePrice"`
	PurchaseDate  string    `json:"purchaseDate"` // YYYY-MM-DD
}

// Cost returns the gross purchase value of the position.
func (p Position) Cost() float64 {
	return p.PurchasePrice * p.Quantity
}

// TransactionKind signs a ledger entry: BUY is cash out, SELL is cash in.
type TransactionKind string

const (
	TransactionBuy  TransactionKind = "BUY"
	TransactionSell TransactionKind = "SELL"
)

// Transaction is one append-only cash-flow event. Amount is the gross
// cash value at the time of the event and is never negative; the sign
// is implied by Kind.
type Transaction struct {
	ID     int64           `json:"id"`
	Date   string          `json:"date"` // YYYY-MM-DD
	Kind   TransactionKind `json:"kind"`
	Amount float64         `json:"amount"`
}

// EvolutionPoint is one point of the cumulative net cash-flow curve.
// The wire name totalValue is kept for the dashboard's line chart.
type EvolutionPoint struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"totalValue"`
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
