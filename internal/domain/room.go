// Package domain contains entity without logic, just meta-data
package domain

import (
	"crypto/rand"
	"log"
	"math/big"
	"strings"
)

// CodeAlphabet is the character set room codes are drawn from.
// Uppercase letters plus digits keep codes easy to read out loud.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultCodeLen is the room code length used unless overridden by config.
const DefaultCodeLen = 6

// RoomCode identifies one room for its whole lifetime.
type RoomCode string

// NewRoomCode returns a random code of n characters from CodeAlphabet.
func NewRoomCode(n int) RoomCode {
	if n <= 0 {
		n = DefaultCodeLen
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = CodeAlphabet[randomIndex(len(CodeAlphabet))]
	}
	return RoomCode(b)
}

// NormalizeRoomCode folds client input to the canonical upper-case form.
func NormalizeRoomCode(raw string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// randomIndex returns a cryptographically secure random index for a slice of given length.
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		log.Panic("Failed to generate random index:", err)
	}
	return int(n.Int64())
}
