package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hushbox/hushauth/db/mock"
)

func newBlockingTestApp(t *testing.T) (*App, *BlockIp) {
	t.Helper()
	app := newTestApp(&mock.Db{})
	return app, NewBlockIp(app)
}

func TestBlockIp_DisabledPassesEverything(t *testing.T) {
	app := newTestApp(&mock.Db{})
	cfg := *app.Config()
	cfg.BlockIp.Enabled = false
	app.ConfigProvider().Update(&cfg)
	blocker := NewBlockIp(app)

	if blocker.IsEnabled() {
		t.Fatal("blocking must honor the config switch")
	}

	called := false
	handler := blocker.Execute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Error("expected the request to pass through")
	}
}

func TestBlockIp_BlockedIpGetsRejected(t *testing.T) {
	_, blocker := newBlockingTestApp(t)

	if err := blocker.Block("203.0.113.7"); err != nil {
		t.Fatal(err)
	}
	if !blocker.IsBlocked("203.0.113.7") {
		t.Fatal("expected the address to be blocked")
	}
	if blocker.IsBlocked("203.0.113.8") {
		t.Fatal("expected other addresses to stay unblocked")
	}

	handler := blocker.Execute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("blocked request must not reach the handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assertResponse(t, rr, errorIpBlocked)
}

func TestBlockIp_FloodGetsBlocked(t *testing.T) {
	_, blocker := newBlockingTestApp(t)

	handler := blocker.Execute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// One address sends every request, so each sketch tick flags it.
	for i := 0; i < 5000; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "203.0.113.9:4711"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
	}

	if !blocker.IsBlocked("203.0.113.9") {
		t.Error("expected the flooding address to be blocked")
	}
}

func TestBlockKeyBuckets(t *testing.T) {
	if formatBlockKey("1.2.3.4", 42) != "1.2.3.4|42" {
		t.Error("unexpected block key format")
	}
	if getTimeBucket(time.Unix(3599, 0)) != 0 {
		t.Error("expected second 3599 in bucket 0")
	}
	if getTimeBucket(time.Unix(3600, 0)) != 1 {
		t.Error("expected second 3600 in bucket 1")
	}
}
