package testutil

import "sync"

// FixedRequestIDs returns predetermined request IDs in order, repeating
// the last one once exhausted. Safe for concurrent use.
type FixedRequestIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedRequestIDs creates a generator over ids. With no ids every call
// returns "test-request-default".
func NewFixedRequestIDs(ids ...string) *FixedRequestIDs {
	if len(ids) == 0 {
		ids = []string{"test-request-default"}
	}
	return &FixedRequestIDs{ids: ids}
}

// Generate returns the next request ID.
func (g *FixedRequestIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
