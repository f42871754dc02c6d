package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	rtr "github.com/hushbox/hushauth/router"
)

func TestRouteBasicHandler(t *testing.T) {
	route := rtr.NewRoute("GET /test").
		WithHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()

	route.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body := rec.Body.String(); body != "OK" {
		t.Errorf("expected body 'OK', got '%s'", body)
	}
}

func TestRouteMiddlewareOrder(t *testing.T) {
	var callOrder []string

	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				callOrder = append(callOrder, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	route := rtr.NewRoute("GET /test").
		WithHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callOrder = append(callOrder, "handler")
			w.WriteHeader(http.StatusOK)
		}).
		WithMiddleware(mw("mw1"), mw("mw2"))

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()

	route.Handler().ServeHTTP(rec, req)

	expectedOrder := []string{"mw1", "mw2", "handler"}
	if len(callOrder) != len(expectedOrder) {
		t.Fatalf("expected %d calls, got %d: %v", len(expectedOrder), len(callOrder), callOrder)
	}
	for i, want := range expectedOrder {
		if callOrder[i] != want {
			t.Errorf("call %d: expected %q, got %q", i, want, callOrder[i])
		}
	}
}

func TestRouteEndpoint(t *testing.T) {
	route := rtr.NewRoute("POST /api/signup")
	if got := route.Endpoint(); got != "POST /api/signup" {
		t.Errorf("Endpoint() = %q, want %q", got, "POST /api/signup")
	}
}

func TestRouteEmptyEndpointPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for empty endpoint")
		}
	}()
	rtr.NewRoute("")
}
