package ledger

import "github.com/investboard/investboard/internal/database"

// TransactionsSchema holds the append-only cash-flow events. There is
// deliberately no UPDATE or DELETE path anywhere in this package.
const TransactionsSchema = `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    kind TEXT NOT NULL,
    amount REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// InitSchema ensures the transactions table exists
func InitSchema(db *database.DB) error {
	_, err := db.Exec(TransactionsSchema)
	return err
}
