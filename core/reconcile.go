package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/hushbox/hushauth/db"
	"github.com/hushbox/hushauth/oauth2"
)

// reconcileOAuth2User resolves a federated identity to exactly one account,
// keyed by the provider-asserted email.
//
// Three outcomes:
//   - no account holds the email: a new account is created with the provider
//     as its primary.
//   - an account holds the email without this provider: the provider record
//     is linked onto it.
//   - the provider is already linked: the account is returned untouched.
//
// Two racing sign-ins converge on the same account: a lost insert hits the
// unique email constraint and falls through to the link path, and LinkProvider
// treats an already linked kind as a no-op. No flow ever yields two accounts
// for one email or two records for one provider.
func (a *App) reconcileOAuth2User(user *oauth2.AuthUser) (*db.Account, error) {
	kind := db.ProviderKind(user.Provider)
	if !kind.Valid() || kind == db.ProviderCredentials {
		return nil, fmt.Errorf("provider %q cannot be reconciled", user.Provider)
	}

	now := time.Now()
	rec := db.ProviderAccount{
		ProviderAccountID: user.Subject,
		Profile: db.Profile{
			OAuth2: &db.OAuth2Profile{
				Subject: user.Subject,
				Email:   user.Email,
				Name:    user.Name,
				Image:   user.AvatarURL,
			},
		},
		LastUsed:   now,
		IsVerified: true,
	}

	acct, err := a.dbAuth.GetAccountByEmail(user.Email)
	if err != nil {
		return nil, err
	}

	if acct == nil {
		created, err := a.dbAuth.InsertAccount(db.Account{
			Email:           user.Email,
			Username:        user.Username,
			Name:            user.Name,
			Image:           user.AvatarURL,
			PrimaryProvider: kind,
			ProviderAccounts: map[db.ProviderKind]db.ProviderAccount{
				kind: rec,
			},
			LastLogin: now,
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, db.ErrConstraintUnique) {
			return nil, err
		}
		// Lost the insert race: another sign in claimed the email first.
		acct, err = a.dbAuth.GetAccountByEmail(user.Email)
		if err != nil {
			return nil, err
		}
		if acct == nil {
			return nil, fmt.Errorf("account for %s vanished after unique conflict", user.Email)
		}
	}

	if acct.HasProvider(kind) {
		return acct, nil
	}

	if err := a.dbAuth.LinkProvider(acct.ID, kind, rec, now); err != nil {
		return nil, err
	}

	// Re-read so the response reflects the record actually linked.
	return a.dbAuth.GetAccountById(acct.ID)
}
