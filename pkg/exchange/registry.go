package exchange

import (
	"fmt"
	"sort"
	"sync"
)

// PairRegistry is a thread-safe lookup over the pairs loaded from the
// external pair source. It also answers the token-centric queries the
// client API exposes (which tokens exist, which pairs each token appears in).
type PairRegistry struct {
	mu    sync.RWMutex
	pairs map[string]*Pair // code -> pair
}

// NewPairRegistry creates an empty registry.
func NewPairRegistry() *PairRegistry {
	return &PairRegistry{pairs: make(map[string]*Pair)}
}

// Register adds a pair. Registering an existing code replaces the entry,
// since pair configuration is refreshed from the external source.
func (r *PairRegistry) Register(p *Pair) error {
	if p == nil {
		return fmt.Errorf("cannot register nil pair")
	}
	if p.Code == "" {
		return fmt.Errorf("cannot register pair without code")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs[p.Code] = p
	return nil
}

// Get retrieves a pair by code.
func (r *PairRegistry) Get(code string) (*Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pairs[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, code)
	}
	return p, nil
}

// List returns all registered pairs sorted by code.
func (r *PairRegistry) List() []*Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pairs := make([]*Pair, 0, len(r.pairs))
	for _, p := range r.pairs {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Code < pairs[j].Code })
	return pairs
}

// Tokens returns every token that can be exchanged, sorted.
func (r *PairRegistry) Tokens() []string {
	tokenPairs := r.TokenPairs()
	tokens := make([]string, 0, len(tokenPairs))
	for token := range tokenPairs {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// TokenPairs maps each token to the codes of the pairs it appears in.
func (r *PairRegistry) TokenPairs() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]string)
	for _, p := range r.pairs {
		out[p.Token1] = append(out[p.Token1], p.Code)
		out[p.Token2] = append(out[p.Token2], p.Code)
	}
	for _, codes := range out {
		sort.Strings(codes)
	}
	return out
}

// Count returns the number of registered pairs.
func (r *PairRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pairs)
}
