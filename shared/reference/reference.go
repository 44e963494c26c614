package reference

import (
	"crypto/rand"
	"fmt"
)

// Alphabet excludes characters that read ambiguously on a printed
// voucher (0/O, 1/I).
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	DefaultLength = 6
	Separator     = "-"
)

// Generate returns a booking reference like "PP-7XKQ4M" using a
// cryptographically strong random source.
func Generate(prefix string, length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	buf := make([]byte, length)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}

	if prefix == "" {
		return string(buf), nil
	}

	return prefix + Separator + string(buf), nil
}
