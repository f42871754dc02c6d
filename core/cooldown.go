package core

import "time"

const (
	cooldownKeyResendVerification = "resend-verification|"
	cooldownKeyPasswordReset      = "password-reset|"
	cooldownCost                  = 1
)

// inCooldown reports whether key is cooling down, arming the cooldown when it
// is not. Without a cache every call passes.
func (a *App) inCooldown(key string, ttl time.Duration) bool {
	if a.cache == nil || ttl <= 0 {
		return false
	}
	if _, found := a.cache.Get(key); found {
		return true
	}
	a.cache.SetWithTTL(key, true, cooldownCost, ttl)
	return false
}
