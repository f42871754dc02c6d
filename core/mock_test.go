package core

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hushbox/hushauth/config"
	"github.com/hushbox/hushauth/db"
	"github.com/hushbox/hushauth/db/mock"
)

const testAuthSecret = "0123456789abcdef0123456789abcdef"

// fakeCache is a plain map cache for exercising cooldowns and blocklists.
type fakeCache struct {
	m map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{m: make(map[string]any)}
}

func (c *fakeCache) Get(key string) (any, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value any, cost int64) bool {
	c.m[key] = value
	return true
}

func (c *fakeCache) SetWithTTL(key string, value any, cost int64, ttl time.Duration) bool {
	c.m[key] = value
	return true
}

func newTestApp(dbMock *mock.Db) *App {
	cfg := config.NewDefaultConfig()
	cfg.Jwt.AuthSecret = testAuthSecret

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := config.NewProvider(cfg)

	return &App{
		dbAuth:         dbMock,
		cache:          newFakeCache(),
		configProvider: provider,
		logger:         logger,
		validator:      &DefaultValidator{},
		authenticator:  NewDefaultAuthenticator(dbMock, logger, provider),
	}
}

// assertResponse checks recorded status and response code against a
// precomputed response.
func assertResponse(t *testing.T, rr *httptest.ResponseRecorder, want jsonResponse) {
	t.Helper()

	if rr.Code != want.status {
		t.Errorf("expected status %d, got %d (body: %s)", want.status, rr.Code, rr.Body.String())
	}

	var gotBody, wantBody map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&gotBody); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if err := json.Unmarshal(want.body, &wantBody); err != nil {
		t.Fatalf("failed to decode want body: %v", err)
	}
	if gotBody["code"] != wantBody["code"] {
		t.Errorf("expected code %q, got %q", wantBody["code"], gotBody["code"])
	}
}

// credentialsAccount builds an account with a credentials link in the given
// verification state.
func credentialsAccount(id, email, username, passwordHash string, verified bool) *db.Account {
	acct := &db.Account{
		ID:              id,
		Email:           email,
		Username:        username,
		Password:        passwordHash,
		PrimaryProvider: db.ProviderCredentials,
		ProviderAccounts: map[db.ProviderKind]db.ProviderAccount{
			db.ProviderCredentials: {
				ProviderAccountID: email,
				Profile: db.Profile{
					Credentials: &db.CredentialsProfile{
						Email:    email,
						Username: username,
						Password: passwordHash,
					},
				},
				IsVerified: verified,
			},
		},
	}
	acct.DeriveProviders()
	return acct
}
