package identity_test

import (
	"testing"

	"github.com/pandarinos/yve/internal/identity"
)

func TestHashDeterminism(t *testing.T) {
	t.Parallel()

	ids := []int64{0, 1, 42, 123456789, -7, 9223372036854775807}
	for _, id := range ids {
		if identity.Hash(id) != identity.Hash(id) {
			t.Errorf("Hash(%d) is not deterministic", id)
		}
	}
}

func TestHashUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]int64)
	for id := int64(-1000); id < 1000; id++ {
		h := identity.Hash(id)
		if prev, ok := seen[h]; ok {
			t.Fatalf("collision: Hash(%d) == Hash(%d)", id, prev)
		}
		seen[h] = id
	}
}

func TestHashFormat(t *testing.T) {
	t.Parallel()

	h := identity.Hash(123456789)
	if len(h) != 128 {
		t.Errorf("expected 128 hex characters for SHA-512, got %d", len(h))
	}
	for _, r := range h {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Errorf("unexpected character %q in digest", r)
		}
	}
}
