package zombiezen

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

// Schema is the account store schema. The provider_accounts column holds the
// per provider linkage records as one JSON document per account; mutations go
// through json_set so a record is always replaced whole under its key.
//
// Username carries no unique constraint: uniqueness is enforced by the
// reconciliation engine against verified credentials accounts only, so an
// abandoned unverified signup cannot squat a username.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	password TEXT NOT NULL DEFAULT '',
	verify_code TEXT NOT NULL DEFAULT '',
	verify_code_expiry TEXT NOT NULL DEFAULT '',
	reset_token_hash TEXT NOT NULL DEFAULT '',
	reset_expiry TEXT NOT NULL DEFAULT '',
	primary_provider TEXT NOT NULL,
	provider_accounts TEXT NOT NULL DEFAULT '{}',
	last_login TEXT NOT NULL DEFAULT '',
	created TEXT NOT NULL,
	updated TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username) WHERE username != '';
`

// Migrate applies the schema to the database behind pool.
func Migrate(ctx context.Context, pool *sqlitex.Pool) error {
	conn, err := pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("failed to take connection for migration: %w", err)
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, Schema, nil); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
