package cli

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator produces session and operation identifiers.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so operation
// IDs sort by creation time - helpful when scanning a trace by eye.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokenGenerator returns predetermined tokens for testing.
//
// This enables deterministic command output and golden trace comparison.
// Once the fixed tokens run out, generation continues with
// "fixed-token-N" counters so tests never block on exhaustion.
type FixedTokenGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator yielding the given tokens in
// order.
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	return &FixedTokenGenerator{tokens: tokens}
}

// Generate returns the next fixed token.
func (g *FixedTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx < len(g.tokens) {
		t := g.tokens[g.idx]
		g.idx++
		return t
	}
	g.idx++
	return "fixed-token-" + strconv.Itoa(g.idx)
}
