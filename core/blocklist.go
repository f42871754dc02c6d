package core

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hushbox/hushauth/topk"
)

const (
	blockingDuration = 1 * time.Hour
	defaultBlockCost = 1

	// Blocks live in hourly buckets so an entry expires with its bucket even
	// if the cache keeps it around.
	bucketDurationSec = 3600
)

// Sketch parameters, a balanced preset for moderate traffic (~120 KB memory).
const (
	sketchTopK       = 3
	sketchWindowSize = 10
	sketchWidth      = 1024
	sketchDepth      = 3
	sketchTickSize   = 100
)

func getTimeBucket(t time.Time) int64 {
	return t.Unix() / bucketDurationSec
}

func formatBlockKey(ip string, bucket int64) string {
	return fmt.Sprintf("%s|%d", ip, bucket)
}

// BlockIp is a circuit breaker against request floods from single addresses.
// Every request feeds a sliding top-k sketch; an address whose windowed count
// crosses the sketch threshold is blocked for blockingDuration via the cache.
// It is deliberately not a nuanced rate limiter.
type BlockIp struct {
	app    *App
	sketch *topk.Sketch
}

// NewBlockIp creates the blocking middleware around the app's cache.
func NewBlockIp(app *App) *BlockIp {
	return &BlockIp{
		app:    app,
		sketch: topk.New(sketchTopK, sketchWindowSize, sketchWidth, sketchDepth, sketchTickSize),
	}
}

// Execute is the middleware entry point.
func (b *BlockIp) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.IsEnabled() {
			ip := b.app.GetClientIP(r)

			if b.IsBlocked(ip) {
				WriteJsonError(w, errorIpBlocked)
				return
			}
			b.Process(ip)
		}

		next.ServeHTTP(w, r)
	})
}

func (b *BlockIp) IsEnabled() bool {
	cfg := b.app.Config().BlockIp
	return cfg.Enabled && cfg.Activated && b.app.Cache() != nil
}

// IsBlocked checks whether ip is blocked in the current time bucket.
func (b *BlockIp) IsBlocked(ip string) bool {
	key := formatBlockKey(ip, getTimeBucket(time.Now()))
	_, found := b.app.Cache().Get(key)
	return found
}

// Process feeds ip into the sketch and blocks the addresses the tick flags.
func (b *BlockIp) Process(ip string) {
	for _, flagged := range b.sketch.Observe(ip) {
		if err := b.Block(flagged); err != nil {
			b.app.Logger().Error("failed to block ip", "ip", flagged, "error", err)
		} else {
			b.app.Logger().Warn("blocked ip for excessive requests", "ip", flagged)
		}
	}
}

// Block adds ip to the blocklist with TTL using the app's cache.
func (b *BlockIp) Block(ip string) error {
	key := formatBlockKey(ip, getTimeBucket(time.Now()))
	if !b.app.Cache().SetWithTTL(key, true, defaultBlockCost, blockingDuration) {
		return fmt.Errorf("cache rejected blocklist entry for %s", ip)
	}
	return nil
}
