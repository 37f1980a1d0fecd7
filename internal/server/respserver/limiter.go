package respserver

import "golang.org/x/time/rate"

// newLimiter returns a per-connection command limiter, or nil when perSecond is 0.
// The burst equals the rate so a fresh connection may spend one second of budget at once.
func newLimiter(perSecond int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), perSecond)
}
