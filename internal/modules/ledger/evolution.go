package ledger

import (
	"sort"

	"github.com/investboard/investboard/internal/domain"
)

// BuildEvolution folds the transaction sequence into the cumulative
// net cash-flow curve the dashboard charts: BUY subtracts the amount
// from the running total, SELL adds it.
//
// This is a cash-flow series, not a mark-to-market valuation; unticked
// market gains only show up once a sale realizes them.
//
// A synthetic zero point one calendar day before the earliest
// transaction gives the chart its baseline. Transactions sharing a
// date each produce their own point.
func BuildEvolution(transactions []domain.Transaction) []domain.EvolutionPoint {
	if len(transactions) == 0 {
		return nil
	}

	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	// Stable: ties keep insertion order. ISO dates sort lexicographically.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	points := make([]domain.EvolutionPoint, 0, len(sorted)+1)

	if baseline, ok := dayBefore(sorted[0].Date); ok {
		points = append(points, domain.EvolutionPoint{Date: baseline, TotalValue: 0})
	}

	running := 0.0
	for _, tx := range sorted {
		if tx.Kind == domain.TransactionSell {
			running += tx.Amount
		} else {
			running -= tx.Amount
		}
		points = append(points, domain.EvolutionPoint{Date: tx.Date, TotalValue: running})
	}

	return points
}

func dayBefore(date string) (string, bool) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, -1).Format(domain.DateFormat), true
}
