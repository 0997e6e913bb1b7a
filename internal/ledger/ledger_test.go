package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntheticRef_Shape(t *testing.T) {
	ref := SyntheticRef()

	assert.Len(t, ref, RefLength)
	assert.True(t, strings.HasPrefix(ref, RefPrefix))
	assert.Equal(t, strings.ToLower(ref), ref)

	for _, r := range ref[len(RefPrefix):] {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}

func TestSyntheticRef_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := SyntheticRef()
		assert.False(t, seen[ref], "synthetic refs must not repeat")
		seen[ref] = true
	}
}
