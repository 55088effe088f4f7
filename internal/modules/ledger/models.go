// Package ledger maintains the append-only transaction log: one immutable
// record per executed buy or sell, forming the audit trail the positions
// aggregate is kept consistent with.
package ledger

import "time"

// Operation is the side of a transaction
type Operation string

const (
	OperationBuy  Operation = "buy"
	OperationSell Operation = "sell"
)

// Valid reports whether the operation is one of the known sides.
func (o Operation) Valid() bool {
	return o == OperationBuy || o == OperationSell
}

// Transaction is one immutable entry in the audit trail. Once written it is
// never updated, reinterpreted or deleted.
type Transaction struct {
	ID        int64     `json:"id"`
	Ref       string    `json:"ref"` // Stable external reference (UUID), assigned at append
	Ticker    string    `json:"ticker"`
	Shares    float64   `json:"shares"`
	Operation Operation `json:"operation"`
	Price     float64   `json:"price"` // Execution price per share at time of operation
	CreatedAt time.Time `json:"date"`
}
