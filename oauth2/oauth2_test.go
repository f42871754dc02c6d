package oauth2

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func userInfoResponse(status int, body string) *http.Response {
	rec := httptest.NewRecorder()
	rec.WriteHeader(status)
	rec.Body.WriteString(body)
	return rec.Result()
}

func TestUserFromUserInfoURL_Google(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		wantEmail string
		expectErr bool
	}{
		{
			name:      "verified email",
			body:      `{"sub":"g-123","name":"Jane Doe","picture":"https://img.example/p.png","email":"jane@example.com","email_verified":true}`,
			wantEmail: "jane@example.com",
		},
		{
			name:      "unverified email is dropped",
			body:      `{"sub":"g-123","name":"Jane Doe","email":"jane@example.com","email_verified":false}`,
			wantEmail: "",
		},
		{
			name:      "missing subject",
			body:      `{"name":"Jane Doe"}`,
			expectErr: true,
		},
		{
			name:      "malformed json",
			body:      `{`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := UserFromUserInfoURL(userInfoResponse(http.StatusOK, tc.body), "google")
			if (err != nil) != tc.expectErr {
				t.Fatalf("UserFromUserInfoURL() error = %v, expectErr %v", err, tc.expectErr)
			}
			if tc.expectErr {
				return
			}
			if user.Subject != "g-123" {
				t.Errorf("Subject = %q, want %q", user.Subject, "g-123")
			}
			if user.Email != tc.wantEmail {
				t.Errorf("Email = %q, want %q", user.Email, tc.wantEmail)
			}
			if user.Provider != "google" {
				t.Errorf("Provider = %q, want %q", user.Provider, "google")
			}
		})
	}
}

func TestUserFromUserInfoURL_GitHub(t *testing.T) {
	body := `{"id":98765,"login":"janedoe","name":"","avatar_url":"https://avatars.example/1","email":"jane@example.com"}`
	user, err := UserFromUserInfoURL(userInfoResponse(http.StatusOK, body), "github")
	if err != nil {
		t.Fatalf("UserFromUserInfoURL() returned error: %v", err)
	}

	if user.Subject != "98765" {
		t.Errorf("Subject = %q, want %q", user.Subject, "98765")
	}
	if user.Username != "janedoe" {
		t.Errorf("Username = %q, want %q", user.Username, "janedoe")
	}
	// Login fills in when the profile has no display name.
	if user.Name != "janedoe" {
		t.Errorf("Name = %q, want %q", user.Name, "janedoe")
	}
}

func TestUserFromUserInfoURL_Errors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		_, err := UserFromUserInfoURL(userInfoResponse(http.StatusUnauthorized, `{}`), "google")
		if err == nil {
			t.Fatal("expected error for non-200 response")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := UserFromUserInfoURL(userInfoResponse(http.StatusOK, `{}`), "gitlab")
		if err == nil || !strings.Contains(err.Error(), "unknown oauth2 provider") {
			t.Fatalf("expected unknown provider error, got %v", err)
		}
	})
}
