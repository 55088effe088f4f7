package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/utils"
)

// PositionRepository handles position database operations. Tickers are
// normalized at every boundary so case-insensitive uniqueness holds.
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "positions").Logger(),
	}
}

// GetAll returns all positions, ordered by ticker for stable output.
func (r *PositionRepository) GetAll() ([]Position, error) {
	rows, err := r.db.Query(`SELECT ticker, shares_owned, total_cost_basis, created_at, updated_at
		FROM positions ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]Position, 0)
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// GetByTicker returns the position for a ticker, or nil when none is held.
func (r *PositionRepository) GetByTicker(ticker string) (*Position, error) {
	return getByTicker(r.db, ticker)
}

// GetByTickerTx is GetByTicker inside the caller's SQL transaction. The
// accounting engine reads the current position on the same transaction it
// later writes, so concurrent mutations serialize on the store.
func (r *PositionRepository) GetByTickerTx(tx *sql.Tx, ticker string) (*Position, error) {
	return getByTicker(tx, ticker)
}

// queryRower is the common subset of *sql.DB and *sql.Tx used for reads.
type queryRower interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

func getByTicker(q queryRower, ticker string) (*Position, error) {
	row := q.QueryRow(`SELECT ticker, shares_owned, total_cost_basis, created_at, updated_at
		FROM positions WHERE ticker = ?`, utils.NormalizeTicker(ticker))

	var pos Position
	var createdAt, updatedAt string
	err := row.Scan(&pos.Ticker, &pos.SharesOwned, &pos.TotalCostBasis, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query position by ticker: %w", err)
	}

	if pos.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse position created_at: %w", err)
	}
	if pos.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse position updated_at: %w", err)
	}

	return &pos, nil
}

// UpsertTx inserts or updates a position inside the caller's SQL transaction.
func (r *PositionRepository) UpsertTx(tx *sql.Tx, position Position) error {
	position.Ticker = utils.NormalizeTicker(position.Ticker)
	if position.Ticker == "" {
		return fmt.Errorf("ticker is required for position upsert")
	}
	if position.SharesOwned < 0 {
		return fmt.Errorf("shares_owned must be non-negative, got %v", position.SharesOwned)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := tx.Exec(`
		INSERT INTO positions (ticker, shares_owned, total_cost_basis, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			shares_owned = excluded.shares_owned,
			total_cost_basis = excluded.total_cost_basis,
			updated_at = excluded.updated_at`,
		position.Ticker, position.SharesOwned, position.TotalCostBasis, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}

	return nil
}

// DeleteTx removes a position inside the caller's SQL transaction. Called
// when a sell brings shares_owned to exactly zero.
func (r *PositionRepository) DeleteTx(tx *sql.Tx, ticker string) error {
	result, err := tx.Exec("DELETE FROM positions WHERE ticker = ?", utils.NormalizeTicker(ticker))
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Debug().Str("ticker", utils.NormalizeTicker(ticker)).Int64("rows_affected", rowsAffected).Msg("Position deleted")
	return nil
}

// Count returns the total number of positions currently held.
func (r *PositionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM positions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}

func scanPosition(rows *sql.Rows) (Position, error) {
	var pos Position
	var createdAt, updatedAt string

	if err := rows.Scan(&pos.Ticker, &pos.SharesOwned, &pos.TotalCostBasis, &createdAt, &updatedAt); err != nil {
		return pos, err
	}

	var err error
	if pos.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return pos, fmt.Errorf("failed to parse position created_at: %w", err)
	}
	if pos.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return pos, fmt.Errorf("failed to parse position updated_at: %w", err)
	}

	return pos, nil
}
