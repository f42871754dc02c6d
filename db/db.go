package db

import "time"

// CredentialsSignup bundles the fields a credentials signup (re)writes on an
// account: identity, hashed password, pending verification state, and the
// full credentials provider account record.
type CredentialsSignup struct {
	Username         string
	PasswordHash     string
	VerifyCode       string
	VerifyCodeExpiry time.Time
	Record           ProviderAccount
}

// DbAuth is the account store contract the auth core depends on.
//
// Lookups return (nil, nil) when no record matches; an error only signals a
// store fault. Mutations are single-statement conditional updates: the guard
// encodes the lifecycle precondition, and ErrNoRowsUpdated means the account
// is missing or its state changed since the caller read it. Handlers never
// persist a whole read-modified record, so two concurrent operations on the
// same account cannot clobber each other's writes.
type DbAuth interface {
	GetAccountById(id string) (*Account, error)
	GetAccountByEmail(email string) (*Account, error)
	GetAccountByUsername(username string) (*Account, error)

	// GetAccountByIdentifier resolves an email or username to an account,
	// trying email first.
	GetAccountByIdentifier(identifier string) (*Account, error)

	// GetVerifiedCredentialsByUsername returns the account holding username
	// with a verified credentials link, if any. Unverified signups do not
	// reserve a username.
	GetVerifiedCredentialsByUsername(username string) (*Account, error)

	// GetAccountByResetTokenHash resolves a pending reset secret digest to
	// its account.
	GetAccountByResetTokenHash(tokenHash string) (*Account, error)

	// InsertAccount persists a new account, assigning its ID and timestamps.
	// Returns ErrConstraintUnique when the email is already taken.
	InsertAccount(acct Account) (*Account, error)

	// ReclaimCredentialsSignup overwrites the pending credentials state of an
	// existing account, guarded on the credentials link being absent or
	// unverified. This is how an abandoned signup is retried.
	ReclaimCredentialsSignup(id string, signup CredentialsSignup) error

	// MarkCredentialsVerified flips the credentials link to verified, guarded
	// on the stored code matching and the link being unverified.
	MarkCredentialsVerified(id, code string) error

	// RotateVerifyCode replaces the pending verification code and expiry,
	// guarded on the credentials link being unverified. The mirrored code in
	// the credentials profile is refreshed in the same statement.
	RotateVerifyCode(id, code string, expiry time.Time) error

	// SetResetToken writes the reset token digest and expiry together,
	// opening a pending reset window.
	SetResetToken(id, tokenHash string, expiry time.Time) error

	// ConsumeResetToken replaces the password hash and clears both reset
	// fields in one statement, guarded on the digest matching and the expiry
	// not having elapsed at now.
	ConsumeResetToken(id, tokenHash, newPasswordHash string, now time.Time) error

	// LinkProvider attaches a provider account record under kind and stamps
	// last login, guarded on the kind not being linked yet. Linking an
	// already linked kind is a silent no-op, never a duplicate.
	LinkProvider(id string, kind ProviderKind, rec ProviderAccount, lastLogin time.Time) error

	// StampLastLogin records a successful sign in.
	StampLastLogin(id string, t time.Time) error
}
