// Package accounts builds the fixed pool of account identifiers that the
// sampler draws parties from.
package accounts

import (
	"errors"
	"fmt"
)

// ErrNegativeCount is returned when a pool size below zero is requested.
var ErrNegativeCount = errors.New("account count must be non-negative")

// Prefix starts every account identifier.
const Prefix = "A"

// ID returns the identifier of the i-th account, e.g. A00042.
func ID(i int) string {
	return fmt.Sprintf("%s%05d", Prefix, i)
}

// Pool returns n identifiers in index order starting at A00000.
// A zero count yields an empty pool.
func Pool(n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("pool of %d: %w", n, ErrNegativeCount)
	}
	pool := make([]string, n)
	for i := range pool {
		pool[i] = ID(i)
	}
	return pool, nil
}
