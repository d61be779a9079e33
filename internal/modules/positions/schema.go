package positions

import "github.com/investboard/investboard/internal/database"

// PositionsSchema holds the current investment positions. No derived
// values are stored; profit and friends are recomputed per request.
const PositionsSchema = `
CREATE TABLE IF NOT EXISTS positions (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    symbol TEXT NOT NULL,
    quantity REAL NOT NULL,
    purchase_price REAL NOT NULL,
    purchase_date TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_type ON positions(type);
`

// InitSchema ensures the positions table exists
func InitSchema(db *database.DB) error {
	_, err := db.Exec(PositionsSchema)
	return err
}
