package accounts

import (
	"errors"
	"testing"
)

func TestPool(t *testing.T) {
	tests := []struct {
		n     int
		first string
		last  string
	}{
		{1, "A00000", "A00000"},
		{3, "A00000", "A00002"},
		{500, "A00000", "A00499"},
	}

	for _, tt := range tests {
		pool, err := Pool(tt.n)
		if err != nil {
			t.Fatalf("Pool(%d) error: %v", tt.n, err)
		}
		if len(pool) != tt.n {
			t.Fatalf("Pool(%d) has %d members", tt.n, len(pool))
		}
		if pool[0] != tt.first || pool[len(pool)-1] != tt.last {
			t.Errorf("Pool(%d) = [%s .. %s], want [%s .. %s]", tt.n, pool[0], pool[len(pool)-1], tt.first, tt.last)
		}
	}
}

func TestPoolUnique(t *testing.T) {
	pool, err := Pool(1000)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool, len(pool))
	for _, id := range pool {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestPoolEmpty(t *testing.T) {
	pool, err := Pool(0)
	if err != nil {
		t.Fatalf("Pool(0) error: %v", err)
	}
	if len(pool) != 0 {
		t.Errorf("Pool(0) = %v, want empty", pool)
	}
}

func TestPoolNegative(t *testing.T) {
	_, err := Pool(-1)
	if !errors.Is(err, ErrNegativeCount) {
		t.Errorf("Pool(-1) error = %v, want ErrNegativeCount", err)
	}
}

func TestID(t *testing.T) {
	if got := ID(42); got != "A00042" {
		t.Errorf("ID(42) = %q, want A00042", got)
	}
}
