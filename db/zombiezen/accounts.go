package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hushbox/hushauth/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const accountColumns = `id, email, username, name, image, password,
	verify_code, verify_code_expiry, reset_token_hash, reset_expiry,
	primary_provider, provider_accounts, last_login, created, updated`

// isVerified of the credentials link inside the JSON document. json_extract
// yields 1/0 for JSON booleans; COALESCE covers the absent-link case.
const credsUnverifiedGuard = `COALESCE(json_extract(provider_accounts, '$.credentials.isVerified'), 0) = 0`

// newAccountFromStmt builds an Account from a SELECTed row, unmarshalling the
// provider account document and deriving the providers list from its keys.
func newAccountFromStmt(stmt *sqlite.Stmt) (*db.Account, error) {
	acct := &db.Account{
		ID:              stmt.GetText("id"),
		Email:           stmt.GetText("email"),
		Username:        stmt.GetText("username"),
		Name:            stmt.GetText("name"),
		Image:           stmt.GetText("image"),
		Password:        stmt.GetText("password"),
		VerifyCode:      stmt.GetText("verify_code"),
		ResetTokenHash:  stmt.GetText("reset_token_hash"),
		PrimaryProvider: db.ProviderKind(stmt.GetText("primary_provider")),
	}

	for _, f := range []struct {
		col string
		dst *time.Time
	}{
		{"verify_code_expiry", &acct.VerifyCodeExpiry},
		{"reset_expiry", &acct.ResetExpiry},
		{"last_login", &acct.LastLogin},
		{"created", &acct.Created},
		{"updated", &acct.Updated},
	} {
		t, err := db.TimeParse(stmt.GetText(f.col))
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", f.col, err)
		}
		*f.dst = t
	}

	raw := stmt.GetText("provider_accounts")
	acct.ProviderAccounts = make(map[db.ProviderKind]db.ProviderAccount)
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &acct.ProviderAccounts); err != nil {
			return nil, fmt.Errorf("error parsing provider accounts: %w", err)
		}
	}
	acct.DeriveProviders()

	return acct, nil
}

// getAccount runs a single-row account query.
// Returns (nil, nil) when no row matches.
func (d *Db) getAccount(query string, args ...interface{}) (*db.Account, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var acct *db.Account
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var err error
			acct, err = newAccountFromStmt(stmt)
			return err
		},
		Args: args,
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func (d *Db) GetAccountById(id string) (*db.Account, error) {
	return d.getAccount(
		`SELECT `+accountColumns+` FROM accounts WHERE id = ? LIMIT 1`, id)
}

func (d *Db) GetAccountByEmail(email string) (*db.Account, error) {
	return d.getAccount(
		`SELECT `+accountColumns+` FROM accounts WHERE email = ? LIMIT 1`, email)
}

func (d *Db) GetAccountByUsername(username string) (*db.Account, error) {
	return d.getAccount(
		`SELECT `+accountColumns+` FROM accounts WHERE username = ? AND username != '' LIMIT 1`, username)
}

func (d *Db) GetAccountByIdentifier(identifier string) (*db.Account, error) {
	acct, err := d.GetAccountByEmail(identifier)
	if err != nil || acct != nil {
		return acct, err
	}
	return d.GetAccountByUsername(identifier)
}

func (d *Db) GetVerifiedCredentialsByUsername(username string) (*db.Account, error) {
	return d.getAccount(
		`SELECT `+accountColumns+` FROM accounts
		WHERE username = ? AND username != ''
		AND COALESCE(json_extract(provider_accounts, '$.credentials.isVerified'), 0) <> 0
		LIMIT 1`, username)
}

func (d *Db) GetAccountByResetTokenHash(tokenHash string) (*db.Account, error) {
	if tokenHash == "" {
		return nil, nil
	}
	return d.getAccount(
		`SELECT `+accountColumns+` FROM accounts WHERE reset_token_hash = ? LIMIT 1`, tokenHash)
}

func (d *Db) InsertAccount(acct db.Account) (*db.Account, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}

	providerAccounts, err := json.Marshal(acct.ProviderAccounts)
	if err != nil {
		return nil, fmt.Errorf("error encoding provider accounts: %w", err)
	}

	now := db.TimeFormat(time.Now())
	var created db.Account
	err = sqlitex.Execute(conn,
		`INSERT INTO accounts (id, email, username, name, image, password,
			verify_code, verify_code_expiry, reset_token_hash, reset_expiry,
			primary_provider, provider_accounts, last_login, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+accountColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				tmp, err := newAccountFromStmt(stmt)
				if err == nil && tmp != nil {
					created = *tmp
				}
				return err
			},
			Args: []interface{}{
				acct.ID,
				acct.Email,
				acct.Username,
				acct.Name,
				acct.Image,
				acct.Password,
				acct.VerifyCode,
				db.TimeFormat(acct.VerifyCodeExpiry),
				acct.ResetTokenHash,
				db.TimeFormat(acct.ResetExpiry),
				string(acct.PrimaryProvider),
				string(providerAccounts),
				db.TimeFormat(acct.LastLogin),
				now,
				now,
			},
		})
	if err != nil {
		if code := sqlite.ErrCode(err); code == sqlite.ResultConstraintUnique || code == sqlite.ResultConstraintPrimaryKey {
			return nil, db.ErrConstraintUnique
		}
		return nil, err
	}
	return &created, nil
}

// execConditional runs a guarded UPDATE and maps "no row matched" to
// ErrNoRowsUpdated so callers can tell a lost compare-and-swap from success.
func (d *Db) execConditional(query string, args ...interface{}) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	if err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args}); err != nil {
		return err
	}
	if conn.Changes() == 0 {
		return db.ErrNoRowsUpdated
	}
	return nil
}

func (d *Db) ReclaimCredentialsSignup(id string, signup db.CredentialsSignup) error {
	record, err := json.Marshal(signup.Record)
	if err != nil {
		return fmt.Errorf("error encoding credentials record: %w", err)
	}

	return d.execConditional(
		`UPDATE accounts SET
			username = ?,
			password = ?,
			verify_code = ?,
			verify_code_expiry = ?,
			provider_accounts = json_set(provider_accounts, '$.credentials', json(?)),
			updated = ?
		WHERE id = ? AND `+credsUnverifiedGuard,
		signup.Username,
		signup.PasswordHash,
		signup.VerifyCode,
		db.TimeFormat(signup.VerifyCodeExpiry),
		string(record),
		db.TimeFormat(time.Now()),
		id,
	)
}

func (d *Db) MarkCredentialsVerified(id, code string) error {
	return d.execConditional(
		`UPDATE accounts SET
			provider_accounts = json_set(provider_accounts, '$.credentials.isVerified', json('true')),
			updated = ?
		WHERE id = ? AND verify_code = ? AND verify_code != '' AND `+credsUnverifiedGuard,
		db.TimeFormat(time.Now()),
		id,
		code,
	)
}

func (d *Db) RotateVerifyCode(id, code string, expiry time.Time) error {
	return d.execConditional(
		`UPDATE accounts SET
			verify_code = ?,
			verify_code_expiry = ?,
			provider_accounts = json_set(provider_accounts,
				'$.credentials.profile.credentials.verifyCode', ?,
				'$.credentials.profile.credentials.verifyCodeExpiry', ?),
			updated = ?
		WHERE id = ? AND `+credsUnverifiedGuard,
		code,
		db.TimeFormat(expiry),
		code,
		db.TimeFormat(expiry),
		db.TimeFormat(time.Now()),
		id,
	)
}

func (d *Db) SetResetToken(id, tokenHash string, expiry time.Time) error {
	return d.execConditional(
		`UPDATE accounts SET
			reset_token_hash = ?,
			reset_expiry = ?,
			updated = ?
		WHERE id = ?`,
		tokenHash,
		db.TimeFormat(expiry),
		db.TimeFormat(time.Now()),
		id,
	)
}

func (d *Db) ConsumeResetToken(id, tokenHash, newPasswordHash string, now time.Time) error {
	// RFC3339 UTC strings order lexicographically, so the expiry guard is a
	// plain string comparison.
	return d.execConditional(
		`UPDATE accounts SET
			password = ?,
			provider_accounts = CASE
				WHEN json_extract(provider_accounts, '$.credentials') IS NOT NULL
				THEN json_set(provider_accounts, '$.credentials.profile.credentials.password', ?)
				ELSE provider_accounts
			END,
			reset_token_hash = '',
			reset_expiry = '',
			updated = ?
		WHERE id = ? AND reset_token_hash = ? AND reset_token_hash != '' AND reset_expiry > ?`,
		newPasswordHash,
		newPasswordHash,
		db.TimeFormat(time.Now()),
		id,
		tokenHash,
		db.TimeFormat(now),
	)
}

func (d *Db) LinkProvider(id string, kind db.ProviderKind, rec db.ProviderAccount, lastLogin time.Time) error {
	record, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("error encoding provider record: %w", err)
	}

	path := fmt.Sprintf(`$."%s"`, kind)
	err = d.execConditional(
		`UPDATE accounts SET
			provider_accounts = json_set(provider_accounts, ?, json(?)),
			last_login = ?,
			updated = ?
		WHERE id = ? AND json_extract(provider_accounts, ?) IS NULL`,
		path,
		string(record),
		db.TimeFormat(lastLogin),
		db.TimeFormat(time.Now()),
		id,
		path,
	)
	// Already linked: keep the existing record, no duplicate, no error.
	if err == db.ErrNoRowsUpdated {
		return nil
	}
	return err
}

func (d *Db) StampLastLogin(id string, t time.Time) error {
	return d.execConditional(
		`UPDATE accounts SET last_login = ?, updated = ? WHERE id = ?`,
		db.TimeFormat(t),
		db.TimeFormat(time.Now()),
		id,
	)
}
