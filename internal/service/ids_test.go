package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIDShapeAndUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := newID()
		require.Len(t, id, 32)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestNewShareTokenAlphabet(t *testing.T) {
	for i := 0; i < 1000; i++ {
		token := newShareToken()
		require.Len(t, token, shareTokenLen)
		for _, r := range token {
			require.True(t, strings.ContainsRune(shareTokenAlphabet, r), "unexpected char %q in %q", r, token)
		}
	}
}
