package mock

import (
	"time"

	"github.com/hushbox/hushauth/db"
)

// Compile-time check to ensure Db implements the DbAuth interface
var _ db.DbAuth = (*Db)(nil)

// Db implements db.DbAuth for testing purposes.
// Use function fields to allow overriding behavior in specific tests.
type Db struct {
	GetAccountByIdFunc                    func(id string) (*db.Account, error)
	GetAccountByEmailFunc                 func(email string) (*db.Account, error)
	GetAccountByUsernameFunc              func(username string) (*db.Account, error)
	GetAccountByIdentifierFunc            func(identifier string) (*db.Account, error)
	GetVerifiedCredentialsByUsernameFunc  func(username string) (*db.Account, error)
	GetAccountByResetTokenHashFunc        func(tokenHash string) (*db.Account, error)
	InsertAccountFunc                     func(acct db.Account) (*db.Account, error)
	ReclaimCredentialsSignupFunc          func(id string, signup db.CredentialsSignup) error
	MarkCredentialsVerifiedFunc           func(id, code string) error
	RotateVerifyCodeFunc                  func(id, code string, expiry time.Time) error
	SetResetTokenFunc                     func(id, tokenHash string, expiry time.Time) error
	ConsumeResetTokenFunc                 func(id, tokenHash, newPasswordHash string, now time.Time) error
	LinkProviderFunc                      func(id string, kind db.ProviderKind, rec db.ProviderAccount, lastLogin time.Time) error
	StampLastLoginFunc                    func(id string, t time.Time) error
}

func (m *Db) GetAccountById(id string) (*db.Account, error) {
	if m.GetAccountByIdFunc != nil {
		return m.GetAccountByIdFunc(id)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetAccountByEmail(email string) (*db.Account, error) {
	if m.GetAccountByEmailFunc != nil {
		return m.GetAccountByEmailFunc(email)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetAccountByUsername(username string) (*db.Account, error) {
	if m.GetAccountByUsernameFunc != nil {
		return m.GetAccountByUsernameFunc(username)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetAccountByIdentifier(identifier string) (*db.Account, error) {
	if m.GetAccountByIdentifierFunc != nil {
		return m.GetAccountByIdentifierFunc(identifier)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetVerifiedCredentialsByUsername(username string) (*db.Account, error) {
	if m.GetVerifiedCredentialsByUsernameFunc != nil {
		return m.GetVerifiedCredentialsByUsernameFunc(username)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetAccountByResetTokenHash(tokenHash string) (*db.Account, error) {
	if m.GetAccountByResetTokenHashFunc != nil {
		return m.GetAccountByResetTokenHashFunc(tokenHash)
	}
	return nil, nil // Default: not found
}

func (m *Db) InsertAccount(acct db.Account) (*db.Account, error) {
	if m.InsertAccountFunc != nil {
		return m.InsertAccountFunc(acct)
	}
	// Default: return the account passed in, assuming success
	acct.ID = "mock-account-id"
	acct.DeriveProviders()
	return &acct, nil
}

func (m *Db) ReclaimCredentialsSignup(id string, signup db.CredentialsSignup) error {
	if m.ReclaimCredentialsSignupFunc != nil {
		return m.ReclaimCredentialsSignupFunc(id, signup)
	}
	return nil // Default: success
}

func (m *Db) MarkCredentialsVerified(id, code string) error {
	if m.MarkCredentialsVerifiedFunc != nil {
		return m.MarkCredentialsVerifiedFunc(id, code)
	}
	return nil // Default: success
}

func (m *Db) RotateVerifyCode(id, code string, expiry time.Time) error {
	if m.RotateVerifyCodeFunc != nil {
		return m.RotateVerifyCodeFunc(id, code, expiry)
	}
	return nil // Default: success
}

func (m *Db) SetResetToken(id, tokenHash string, expiry time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(id, tokenHash, expiry)
	}
	return nil // Default: success
}

func (m *Db) ConsumeResetToken(id, tokenHash, newPasswordHash string, now time.Time) error {
	if m.ConsumeResetTokenFunc != nil {
		return m.ConsumeResetTokenFunc(id, tokenHash, newPasswordHash, now)
	}
	return nil // Default: success
}

func (m *Db) LinkProvider(id string, kind db.ProviderKind, rec db.ProviderAccount, lastLogin time.Time) error {
	if m.LinkProviderFunc != nil {
		return m.LinkProviderFunc(id, kind, rec, lastLogin)
	}
	return nil // Default: success
}

func (m *Db) StampLastLogin(id string, t time.Time) error {
	if m.StampLastLoginFunc != nil {
		return m.StampLastLoginFunc(id, t)
	}
	return nil // Default: success
}
