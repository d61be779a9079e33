package positions

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/investboard/investboard/internal/database"
	"github.com/investboard/investboard/internal/domain"
)

// Repository handles position database operations
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new position repository
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "positions").Logger(),
	}
}

// Create inserts a new position
func (r *Repository) Create(p domain.Position) error {
	return r.insert(r.db, p)
}

// insert writes the position through the given Execer, which is the
// pool for standalone inserts and a transaction when the service
// groups the insert with a ledger write.
func (r *Repository) insert(e database.Execer, p domain.Position) error {
	query := `
		INSERT INTO positions (id, type, symbol, quantity, purchase_price, purchase_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().Format("2006-01-02 15:04:05")
	_, err := e.Exec(query, p.ID, string(p.Type), p.Symbol, p.Quantity, p.PurchasePrice, p.PurchaseDate, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

// GetByID returns a single position, or domain.ErrNotFound
func (r *Repository) GetByID(id string) (domain.Position, error) {
	query := `
		SELECT id, type, symbol, quantity, purchase_price, purchase_date
		FROM positions
		WHERE id = ?
	`

	var p domain.Position
	var assetType string
	err := r.db.QueryRow(query, id).Scan(&p.ID, &assetType, &p.Symbol, &p.Quantity, &p.PurchasePrice, &p.PurchaseDate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Position{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	p.Type = domain.AssetType(assetType)
	return p, nil
}

// List returns all positions in insertion order. The order is stable
// across calls but carries no chronological meaning.
func (r *Repository) List() ([]domain.Position, error) {
	query := `
		SELECT id, type, symbol, quantity, purchase_price, purchase_date
		FROM positions
		ORDER BY rowid
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		var p domain.Position
		var assetType string
		if err := rows.Scan(&p.ID, &assetType, &p.Symbol, &p.Quantity, &p.PurchasePrice, &p.PurchaseDate); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		p.Type = domain.AssetType(assetType)
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// Update replaces the stored fields of a position, or returns
// domain.ErrNotFound for an unknown id
func (r *Repository) Update(p domain.Position) error {
	query := `
		UPDATE positions
		SET type = ?, symbol = ?, quantity = ?, purchase_price = ?, purchase_date = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, string(p.Type), p.Symbol, p.Quantity, p.PurchasePrice, p.PurchaseDate, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a position. Deleting an unknown id returns
// domain.ErrNotFound so the caller knows whether removal occurred.
func (r *Repository) Delete(id string) error {
	return r.remove(r.db, id)
}

// remove deletes through the given Execer, a transaction when the
// service groups the delete with the SELL ledger write.
func (r *Repository) remove(e database.Execer, id string) error {
	result, err := e.Exec("DELETE FROM positions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of stored positions
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM positions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}
