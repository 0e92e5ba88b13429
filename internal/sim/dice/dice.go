// Package dice provides the randomness abstraction used by the simulation:
// sleep lengths and initial agent placement.
package dice

import (
	"crypto/rand"
	"math/big"
	"sync"
)

// Source produces uniformly distributed integers.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand. It has no seed, so runs
// are not reproducible.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Between returns a value in the closed range [lo, hi].
//
// Precondition: lo <= hi; src must be non-nil.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		panic("dice: Between called with hi < lo")
	}
	return lo + src.Intn(hi-lo+1)
}

// Choose returns a uniformly chosen element of items.
//
// Precondition: len(items) > 0; src must be non-nil.
func Choose[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// Fixed is a Source that cycles through a fixed sequence, reduced modulo n.
// It exists for tests that need predictable rolls and is safe for concurrent use.
type Fixed struct {
	Values []int

	mu   sync.Mutex
	next int
}

// Intn returns the next value of the sequence modulo n.
func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	if v < 0 {
		v = -v
	}
	return v % n
}
