package database

// Schema is the single source of truth for the portfolio database layout.
//
// positions is the denormalized aggregate: one row per ticker currently held,
// kept consistent with the transactions log at every commit. A position whose
// shares_owned reaches zero is deleted, never stored.
//
// transactions is the append-only audit trail. Rows are written exactly once
// per successful buy/sell and never updated or deleted.
const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	ticker TEXT PRIMARY KEY,
	shares_owned REAL NOT NULL CHECK (shares_owned >= 0),
	total_cost_basis REAL NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ref TEXT NOT NULL UNIQUE,
	ticker TEXT NOT NULL,
	shares REAL NOT NULL CHECK (shares > 0),
	operation TEXT NOT NULL CHECK (operation IN ('buy', 'sell')),
	price REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_ticker ON transactions(ticker);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC);
`
