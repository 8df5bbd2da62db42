package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates predictable run ids ("run-0001", "run-0002", ...).
//
// Thread-safety: safe for concurrent use.
type SequentialIDs struct {
	mu  sync.Mutex
	seq int
}

// Generate returns the next id.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("run-%04d", g.seq)
}
