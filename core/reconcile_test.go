package core

import (
	"testing"
	"time"

	"github.com/hushbox/hushauth/db"
	"github.com/hushbox/hushauth/db/mock"
	"github.com/hushbox/hushauth/oauth2"
)

func googleAuthUser() *oauth2.AuthUser {
	return &oauth2.AuthUser{
		Provider:  "google",
		Subject:   "sub-123",
		Email:     "jane@example.com",
		Name:      "Jane Doe",
		AvatarURL: "https://example.com/avatar.png",
	}
}

func TestReconcileOAuth2User_RejectsNonFederatedKinds(t *testing.T) {
	app := newTestApp(&mock.Db{})

	for _, provider := range []string{"credentials", "unknown", ""} {
		user := googleAuthUser()
		user.Provider = provider
		if _, err := app.reconcileOAuth2User(user); err == nil {
			t.Errorf("expected provider %q to be rejected", provider)
		}
	}
}

func TestReconcileOAuth2User_CreatesAccount(t *testing.T) {
	var inserted db.Account
	dbMock := &mock.Db{
		InsertAccountFunc: func(acct db.Account) (*db.Account, error) {
			inserted = acct
			acct.ID = "acct-1"
			acct.DeriveProviders()
			return &acct, nil
		},
	}
	app := newTestApp(dbMock)

	acct, err := app.reconcileOAuth2User(googleAuthUser())
	if err != nil {
		t.Fatal(err)
	}
	if acct == nil || acct.ID != "acct-1" {
		t.Fatalf("expected the created account back, got %+v", acct)
	}

	if inserted.Email != "jane@example.com" {
		t.Errorf("unexpected email %q", inserted.Email)
	}
	if inserted.PrimaryProvider != db.ProviderGoogle {
		t.Errorf("expected google as primary provider, got %q", inserted.PrimaryProvider)
	}
	rec, ok := inserted.ProviderAccounts[db.ProviderGoogle]
	if !ok {
		t.Fatal("expected a google provider record")
	}
	if rec.ProviderAccountID != "sub-123" {
		t.Errorf("expected provider account id sub-123, got %q", rec.ProviderAccountID)
	}
	if !rec.IsVerified {
		t.Error("federated links are verified by the provider's assertion")
	}
	if inserted.LastLogin.IsZero() {
		t.Error("expected last login to be set on creation")
	}
}

func TestReconcileOAuth2User_LinksOntoExistingAccount(t *testing.T) {
	existing := credentialsAccount("acct-1", "jane@example.com", "jane", "hash", true)
	linked := credentialsAccount("acct-1", "jane@example.com", "jane", "hash", true)
	linked.ProviderAccounts[db.ProviderGoogle] = db.ProviderAccount{
		ProviderAccountID: "sub-123",
		IsVerified:        true,
	}
	linked.DeriveProviders()

	var linkedID string
	var linkedKind db.ProviderKind
	inserts := 0
	dbMock := &mock.Db{
		GetAccountByEmailFunc: func(email string) (*db.Account, error) {
			return existing, nil
		},
		InsertAccountFunc: func(acct db.Account) (*db.Account, error) {
			inserts++
			return nil, db.ErrConstraintUnique
		},
		LinkProviderFunc: func(id string, kind db.ProviderKind, rec db.ProviderAccount, lastLogin time.Time) error {
			linkedID = id
			linkedKind = kind
			return nil
		},
		GetAccountByIdFunc: func(id string) (*db.Account, error) {
			return linked, nil
		},
	}
	app := newTestApp(dbMock)

	acct, err := app.reconcileOAuth2User(googleAuthUser())
	if err != nil {
		t.Fatal(err)
	}

	if inserts != 0 {
		t.Error("an existing email must link, not insert")
	}
	if linkedID != "acct-1" || linkedKind != db.ProviderGoogle {
		t.Errorf("expected google link onto acct-1, got %q/%q", linkedID, linkedKind)
	}
	if !acct.HasProvider(db.ProviderGoogle) || !acct.HasProvider(db.ProviderCredentials) {
		t.Errorf("expected both providers on the result, got %v", acct.Providers)
	}
}

func TestReconcileOAuth2User_LostInsertRaceFallsThroughToLink(t *testing.T) {
	winner := credentialsAccount("acct-7", "jane@example.com", "jane", "hash", true)

	reads := 0
	var linkedID string
	dbMock := &mock.Db{
		GetAccountByEmailFunc: func(email string) (*db.Account, error) {
			reads++
			if reads == 1 {
				return nil, nil // not there yet when we first look
			}
			return winner, nil
		},
		InsertAccountFunc: func(acct db.Account) (*db.Account, error) {
			return nil, db.ErrConstraintUnique
		},
		LinkProviderFunc: func(id string, kind db.ProviderKind, rec db.ProviderAccount, lastLogin time.Time) error {
			linkedID = id
			return nil
		},
		GetAccountByIdFunc: func(id string) (*db.Account, error) {
			return winner, nil
		},
	}
	app := newTestApp(dbMock)

	acct, err := app.reconcileOAuth2User(googleAuthUser())
	if err != nil {
		t.Fatal(err)
	}
	if linkedID != "acct-7" {
		t.Errorf("expected link onto the race winner, got %q", linkedID)
	}
	if acct.ID != "acct-7" {
		t.Errorf("expected the winner's account back, got %q", acct.ID)
	}
}

func TestReconcileOAuth2User_AlreadyLinkedLeavesAccountUntouched(t *testing.T) {
	existing := credentialsAccount("acct-1", "jane@example.com", "jane", "hash", true)
	existing.ProviderAccounts[db.ProviderGoogle] = db.ProviderAccount{
		ProviderAccountID: "sub-123",
		IsVerified:        true,
	}
	existing.DeriveProviders()

	mutations := 0
	dbMock := &mock.Db{
		GetAccountByEmailFunc: func(email string) (*db.Account, error) {
			return existing, nil
		},
		LinkProviderFunc: func(id string, kind db.ProviderKind, rec db.ProviderAccount, lastLogin time.Time) error {
			mutations++
			return nil
		},
		StampLastLoginFunc: func(id string, at time.Time) error {
			mutations++
			return nil
		},
	}
	app := newTestApp(dbMock)

	acct, err := app.reconcileOAuth2User(googleAuthUser())
	if err != nil {
		t.Fatal(err)
	}
	if mutations != 0 {
		t.Errorf("expected no writes for an already linked provider, got %d", mutations)
	}
	if acct != existing {
		t.Errorf("expected the stored account back unchanged, got %+v", acct)
	}
}
