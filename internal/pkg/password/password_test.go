package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerify(t *testing.T) {
	hash, err := Hash("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hash)

	require.True(t, Verify(hash, "correct horse"))
	require.False(t, Verify(hash, "wrong horse"))
	require.False(t, Verify("not-a-bcrypt-hash", "correct horse"))
}

func TestHashRejectsOverlongInput(t *testing.T) {
	_, err := Hash(strings.Repeat("x", maxLen+1))
	require.ErrorIs(t, err, ErrTooLong)
}
