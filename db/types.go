package db

import (
	"sort"
	"time"
)

// ProviderKind identifies an authentication method linked to an account.
type ProviderKind string

const (
	ProviderCredentials ProviderKind = "credentials"
	ProviderGoogle      ProviderKind = "google"
	ProviderGitHub      ProviderKind = "github"
)

// Valid reports whether k is one of the known provider kinds.
func (k ProviderKind) Valid() bool {
	switch k {
	case ProviderCredentials, ProviderGoogle, ProviderGitHub:
		return true
	}
	return false
}

// CredentialsProfile is the provider specific attribute set of a local
// credentials link. The password and verify fields mirror the account level
// fields so the record is self contained.
type CredentialsProfile struct {
	Email            string    `json:"email"`
	Username         string    `json:"username,omitempty"`
	Password         string    `json:"password,omitempty"`
	VerifyCode       string    `json:"verifyCode,omitempty"`
	VerifyCodeExpiry time.Time `json:"verifyCodeExpiry,omitzero"`
}

// OAuth2Profile is the provider specific attribute set of a federated link.
type OAuth2Profile struct {
	Subject string `json:"sub,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Profile is a tagged union of provider specific attributes. Exactly one
// variant is non-nil, matching the provider kind the record is stored under.
// Callers switch on the set variant instead of duck-typing fields.
type Profile struct {
	Credentials *CredentialsProfile `json:"credentials,omitempty"`
	OAuth2      *OAuth2Profile      `json:"oauth2,omitempty"`
}

// Email returns the email of whichever variant is set.
func (p Profile) Email() string {
	switch {
	case p.Credentials != nil:
		return p.Credentials.Email
	case p.OAuth2 != nil:
		return p.OAuth2.Email
	}
	return ""
}

// ProviderAccount is the per provider linkage data attached to an account,
// stored under its provider kind in the account's provider account map.
type ProviderAccount struct {
	ProviderAccountID string    `json:"providerAccountId"`
	Profile           Profile   `json:"profile"`
	LastUsed          time.Time `json:"lastUsed"`
	IsVerified        bool      `json:"isVerified"`
}

// Account is the persisted identity record unifying all provider links for
// one person. Timestamps use RFC3339 format in UTC.
//
// Providers is derived from the keys of ProviderAccounts when the record is
// loaded (primary provider first, remaining kinds in lexical order), so the
// two can never drift apart.
type Account struct {
	ID       string
	Email    string
	Username string
	Name     string
	Image    string
	// Password is the bcrypt hash; empty unless a credentials provider is linked.
	Password string

	// Pending email verification state, present while a credentials link is
	// unverified.
	VerifyCode       string
	VerifyCodeExpiry time.Time

	// Outstanding password reset state. Both fields are set together and
	// cleared together.
	ResetTokenHash string
	ResetExpiry    time.Time

	PrimaryProvider  ProviderKind
	Providers        []ProviderKind
	ProviderAccounts map[ProviderKind]ProviderAccount

	LastLogin time.Time
	Created   time.Time
	Updated   time.Time
}

// HasProvider reports whether the given provider kind is linked.
func (a *Account) HasProvider(kind ProviderKind) bool {
	_, ok := a.ProviderAccounts[kind]
	return ok
}

// CredentialsVerified reports whether the account is sign-in eligible via
// credentials: a credentials record exists and its email is verified.
func (a *Account) CredentialsVerified() bool {
	rec, ok := a.ProviderAccounts[ProviderCredentials]
	return ok && rec.IsVerified
}

// Verified reports whether any linked provider has asserted the account's
// email: a verified credentials link or any federated link.
func (a *Account) Verified() bool {
	for _, rec := range a.ProviderAccounts {
		if rec.IsVerified {
			return true
		}
	}
	return false
}

// DeriveProviders recomputes Providers from the provider account map keys.
func (a *Account) DeriveProviders() {
	a.Providers = a.Providers[:0]
	rest := make([]ProviderKind, 0, len(a.ProviderAccounts))
	for kind := range a.ProviderAccounts {
		if kind == a.PrimaryProvider {
			continue
		}
		rest = append(rest, kind)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	if _, ok := a.ProviderAccounts[a.PrimaryProvider]; ok {
		a.Providers = append(a.Providers, a.PrimaryProvider)
	}
	a.Providers = append(a.Providers, rest...)
}
