package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/utils"
)

// TransactionRepository handles transaction log database operations
type TransactionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, log zerolog.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:  db,
		log: log.With().Str("repo", "transactions").Logger(),
	}
}

// AppendTx appends a transaction inside the caller's SQL transaction. The
// caller owns the commit boundary: the accounting engine appends the log
// entry and updates the position in the same transaction so they succeed or
// fail together. The ref and creation timestamp are assigned here.
func (r *TransactionRepository) AppendTx(tx *sql.Tx, t Transaction) (Transaction, error) {
	if !t.Operation.Valid() {
		return Transaction{}, fmt.Errorf("invalid operation %q", t.Operation)
	}
	if t.Shares <= 0 {
		return Transaction{}, fmt.Errorf("shares must be positive, got %v", t.Shares)
	}

	t.Ticker = utils.NormalizeTicker(t.Ticker)
	t.Ref = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	result, err := tx.Exec(
		`INSERT INTO transactions (ref, ticker, shares, operation, price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Ref, t.Ticker, t.Shares, string(t.Operation), t.Price,
		t.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to append transaction: %w", err)
	}

	t.ID, err = result.LastInsertId()
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to read transaction id: %w", err)
	}

	return t, nil
}

// List returns transactions ordered most recent first. A non-positive limit
// returns the full log.
func (r *TransactionRepository) List(limit int) ([]Transaction, error) {
	query := `SELECT id, ref, ticker, shares, operation, price, created_at
		FROM transactions ORDER BY created_at DESC, id DESC`
	args := []interface{}{}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// ListByTicker returns transactions for one ticker, most recent first.
func (r *TransactionRepository) ListByTicker(ticker string, limit int) ([]Transaction, error) {
	query := `SELECT id, ref, ticker, shares, operation, price, created_at
		FROM transactions WHERE ticker = ? ORDER BY created_at DESC, id DESC`
	args := []interface{}{utils.NormalizeTicker(ticker)}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by ticker: %w", err)
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Count returns the total number of logged transactions.
func (r *TransactionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(rows *sql.Rows) (Transaction, error) {
	var t Transaction
	var operation, createdAt string

	if err := rows.Scan(&t.ID, &t.Ref, &t.Ticker, &t.Shares, &operation, &t.Price, &createdAt); err != nil {
		return t, err
	}

	t.Operation = Operation(operation)

	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return t, fmt.Errorf("failed to parse transaction timestamp %q: %w", createdAt, err)
	}
	t.CreatedAt = parsed

	return t, nil
}
