package core

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hushbox/hushauth/crypto"
	"github.com/hushbox/hushauth/db"
	"github.com/hushbox/hushauth/db/mock"
)

func TestRefreshAuthHandler(t *testing.T) {
	acct := credentialsAccount("acct-1", "jane@example.com", "jane", "hash", true)

	validToken, _, err := crypto.NewJwtSessionToken("acct-1", []byte(testAuthSecret), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	expiredToken, _, err := crypto.NewJwtSessionToken("acct-1", []byte(testAuthSecret), -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	foreignToken, _, err := crypto.NewJwtSessionToken("acct-1", []byte("another-32-byte-signing-secret!!"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name       string
		authHeader string
		account    *db.Account
		want       jsonResponse
	}{
		{
			name:       "no authorization header",
			authHeader: "",
			want:       errorNoAuthHeader,
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic dXNlcjpwYXNz",
			want:       errorInvalidTokenFormat,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expiredToken,
			want:       errorJwtTokenExpired,
		},
		{
			name:       "token signed with another key",
			authHeader: "Bearer " + foreignToken,
			want:       errorJwtInvalidSignMethod,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.jwt",
			want:       errorJwtInvalidToken,
		},
		{
			name:       "token for a deleted account",
			authHeader: "Bearer " + validToken,
			account:    nil,
			want:       errorJwtInvalidToken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dbMock := &mock.Db{
				GetAccountByIdFunc: func(id string) (*db.Account, error) {
					return tc.account, nil
				},
			}
			app := newTestApp(dbMock)

			req := httptest.NewRequest("POST", "/api/refresh-auth", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			app.RefreshAuthHandler(rr, req)
			assertResponse(t, rr, tc.want)
		})
	}

	t.Run("valid token refreshes the session", func(t *testing.T) {
		dbMock := &mock.Db{
			GetAccountByIdFunc: func(id string) (*db.Account, error) {
				if id != "acct-1" {
					t.Errorf("expected lookup of acct-1, got %q", id)
				}
				return acct, nil
			},
		}
		app := newTestApp(dbMock)

		req := httptest.NewRequest("POST", "/api/refresh-auth", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+validToken)
		rr := httptest.NewRecorder()

		app.RefreshAuthHandler(rr, req)

		if rr.Code != 200 {
			t.Fatalf("expected status 200, got %d (body: %s)", rr.Code, rr.Body.String())
		}

		var resp struct {
			Code string   `json:"code"`
			Data AuthData `json:"data"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Code != CodeOkAuthentication {
			t.Errorf("expected code %q, got %q", CodeOkAuthentication, resp.Code)
		}
		if resp.Data.AccessToken == "" {
			t.Error("expected a fresh session token")
		}

		claims, err := crypto.ParseJwt(resp.Data.AccessToken, []byte(testAuthSecret))
		if err != nil {
			t.Fatalf("refreshed token does not verify: %v", err)
		}
		if claims[crypto.ClaimUserID] != "acct-1" {
			t.Errorf("expected user_id claim acct-1, got %v", claims[crypto.ClaimUserID])
		}
	})
}
