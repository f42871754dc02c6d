package db

import (
	"reflect"
	"testing"
	"time"
)

func TestProviderKindValid(t *testing.T) {
	for _, kind := range []ProviderKind{ProviderCredentials, ProviderGoogle, ProviderGitHub} {
		if !kind.Valid() {
			t.Errorf("expected %q to be valid", kind)
		}
	}
	for _, kind := range []ProviderKind{"", "facebook", "Google"} {
		if kind.Valid() {
			t.Errorf("expected %q to be invalid", kind)
		}
	}
}

func TestProfileEmail(t *testing.T) {
	creds := Profile{Credentials: &CredentialsProfile{Email: "a@example.com"}}
	if creds.Email() != "a@example.com" {
		t.Error("expected the credentials email")
	}
	oauth := Profile{OAuth2: &OAuth2Profile{Email: "b@example.com"}}
	if oauth.Email() != "b@example.com" {
		t.Error("expected the oauth2 email")
	}
	if (Profile{}).Email() != "" {
		t.Error("expected empty email for an empty profile")
	}
}

func TestAccountVerification(t *testing.T) {
	acct := &Account{
		ProviderAccounts: map[ProviderKind]ProviderAccount{
			ProviderCredentials: {IsVerified: false},
		},
	}
	if acct.CredentialsVerified() || acct.Verified() {
		t.Error("an unverified credentials link must not count as verified")
	}

	acct.ProviderAccounts[ProviderGoogle] = ProviderAccount{IsVerified: true}
	if acct.CredentialsVerified() {
		t.Error("a federated link must not verify the credentials link")
	}
	if !acct.Verified() {
		t.Error("any verified link makes the account verified")
	}

	acct.ProviderAccounts[ProviderCredentials] = ProviderAccount{IsVerified: true}
	if !acct.CredentialsVerified() {
		t.Error("expected the verified credentials link to count")
	}
}

func TestDeriveProviders(t *testing.T) {
	acct := &Account{
		PrimaryProvider: ProviderGoogle,
		ProviderAccounts: map[ProviderKind]ProviderAccount{
			ProviderGitHub:      {},
			ProviderGoogle:      {},
			ProviderCredentials: {},
		},
	}
	acct.DeriveProviders()

	want := []ProviderKind{ProviderGoogle, ProviderCredentials, ProviderGitHub}
	if !reflect.DeepEqual(acct.Providers, want) {
		t.Errorf("expected primary first then lexical order %v, got %v", want, acct.Providers)
	}

	// A primary without a record is not listed.
	acct.PrimaryProvider = "facebook"
	acct.DeriveProviders()
	want = []ProviderKind{ProviderCredentials, ProviderGitHub, ProviderGoogle}
	if !reflect.DeepEqual(acct.Providers, want) {
		t.Errorf("expected lexical order %v, got %v", want, acct.Providers)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.FixedZone("CET", 3600))
	parsed, err := TimeParse(TimeFormat(at))
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(at) {
		t.Errorf("round trip changed the instant: %v != %v", parsed, at)
	}
	if parsed.Location() != time.UTC {
		t.Error("stored timestamps are UTC")
	}

	empty, err := TimeParse("")
	if err != nil || !empty.IsZero() {
		t.Fatalf("expected the empty string to parse as the zero time, got %v, %v", empty, err)
	}

	if _, err := TimeParse("not-a-time"); err == nil {
		t.Fatal("expected a parse error")
	}
}
