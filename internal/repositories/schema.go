package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
)

// schema is applied at startup; both tables are created only when absent.
// There is no migration tooling beyond this.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id SERIAL PRIMARY KEY,
	username VARCHAR(50) NOT NULL UNIQUE,
	email VARCHAR(100) NOT NULL,
	password VARCHAR(255) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS transactions (
	transaction_id SERIAL PRIMARY KEY,
	amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
	transaction_type VARCHAR(16) NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
	user_id INT NOT NULL REFERENCES users (user_id),
	timestamp TIMESTAMP NOT NULL DEFAULT NOW()
);
`

// Bootstrap ensures the schema exists. It is safe to call on every start.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(schema), " "),
		"error", err,
	)

	return err
}
