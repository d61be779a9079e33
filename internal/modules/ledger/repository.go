package ledger

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/investboard/investboard/internal/database"
	"github.com/investboard/investboard/internal/domain"
)

// Repository is the append-only transaction ledger. Entries are
// immutable once recorded; chronological order is derived at read time,
// not enforced on insertion.
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new ledger repository
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "ledger").Logger(),
	}
}

// RecordBuy appends the BUY event for a newly created position. The
// amount is the gross purchase value and the date is the purchase date.
// The Execer lets the caller append inside the same transaction that
// stores the position.
func (r *Repository) RecordBuy(e database.Execer, p domain.Position) error {
	return r.append(e, domain.Transaction{
		Date:   p.PurchaseDate,
		Kind:   domain.TransactionBuy,
		Amount: p.Cost(),
	})
}

// RecordSell appends a SELL event. The amount is the gross sale value,
// the simulated price at the moment of sale times the quantity.
func (r *Repository) RecordSell(e database.Execer, date string, amount float64) error {
	return r.append(e, domain.Transaction{
		Date:   date,
		Kind:   domain.TransactionSell,
		Amount: amount,
	})
}

func (r *Repository) append(e database.Execer, tx domain.Transaction) error {
	if tx.Amount < 0 {
		return fmt.Errorf("transaction amount must not be negative, got %g", tx.Amount)
	}

	query := `
		INSERT INTO transactions (date, kind, amount, created_at)
		VALUES (?, ?, ?, ?)
	`

	createdAt := time.Now().Format("2006-01-02 15:04:05")
	if _, err := e.Exec(query, tx.Date, string(tx.Kind), tx.Amount, createdAt); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	r.log.Debug().
		Str("kind", string(tx.Kind)).
		Str("date", tx.Date).
		Float64("amount", tx.Amount).
		Msg("Transaction recorded")

	return nil
}

// All returns every transaction ordered by date, with insertion order
// breaking ties. This is the input order BuildEvolution relies on.
func (r *Repository) All() ([]domain.Transaction, error) {
	query := `
		SELECT id, date, kind, amount
		FROM transactions
		ORDER BY date, id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var kind string
		if err := rows.Scan(&tx.ID, &tx.Date, &kind, &tx.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Kind = domain.TransactionKind(kind)
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Count returns the number of recorded transactions
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
