package service

import "sync"

// verifyGrants tracks which callers' most recent PIN verification succeeded.
// A grant is recorded on a successful verify, cleared by a failed one, and
// consumed by exactly one acknowledge. The tracker is process-local state:
// grants do not survive a restart, which is acceptable because the caller
// can simply verify again.
type verifyGrants struct {
	mu       sync.Mutex
	verified map[string]struct{}
}

func newVerifyGrants() *verifyGrants {
	return &verifyGrants{
		verified: make(map[string]struct{}),
	}
}

// Grant records a successful verification for the caller.
func (g *verifyGrants) Grant(caller string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verified[caller] = struct{}{}
}

// Revoke clears the caller's grant after a failed verification.
func (g *verifyGrants) Revoke(caller string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.verified, caller)
}

// Consume removes the caller's grant and reports whether one was held.
// Each grant authorizes at most one acknowledge.
func (g *verifyGrants) Consume(caller string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.verified[caller]; !ok {
		return false
	}
	delete(g.verified, caller)
	return true
}
