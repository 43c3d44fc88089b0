package trader

import "time"

// CooldownGate enforces the minimum interval between trade submissions.
// The gate is Open when no trade has been placed yet or the interval has
// elapsed, Cooling otherwise. The Cooling->Open transition is evaluated
// lazily on each Ready call; nothing runs on a timer. Used only from the
// decision cycle, so it needs no locking.
type CooldownGate struct {
	interval  time.Duration
	lastTrade time.Time
}

// NewCooldownGate creates an Open gate.
func NewCooldownGate(interval time.Duration) *CooldownGate {
	return &CooldownGate{interval: interval}
}

// Ready reports whether a trade may be submitted at the given time.
func (g *CooldownGate) Ready(now time.Time) bool {
	return g.lastTrade.IsZero() || now.Sub(g.lastTrade) >= g.interval
}

// Arm starts the cooldown. Called only after a confirmed submission.
func (g *CooldownGate) Arm(now time.Time) {
	g.lastTrade = now
}

// Remaining returns how long until the gate reopens, 0 when already open.
func (g *CooldownGate) Remaining(now time.Time) time.Duration {
	if g.Ready(now) {
		return 0
	}
	return g.interval - now.Sub(g.lastTrade)
}

// Interval returns the configured minimum inter-trade interval.
func (g *CooldownGate) Interval() time.Duration { return g.interval }

// LastTrade returns the timestamp of the last confirmed submission.
func (g *CooldownGate) LastTrade() (time.Time, bool) {
	return g.lastTrade, !g.lastTrade.IsZero()
}
