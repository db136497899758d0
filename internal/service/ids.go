package service

import (
	"crypto/rand"
	"encoding/hex"
)

const shareTokenLen = 10

// 64-entry url-safe alphabet, so one random byte maps to one character.
const shareTokenAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func newID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// newShareToken mints a short opaque public token. 64^10 values make
// collisions negligible at this system's scale; the unique index on
// share_link backstops the remainder.
func newShareToken() string {
	bytes := make([]byte, shareTokenLen)
	_, _ = rand.Read(bytes)
	out := make([]byte, shareTokenLen)
	for i, b := range bytes {
		out[i] = shareTokenAlphabet[b&63]
	}
	return string(out)
}
