package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PinSaltSize is the number of random salt bytes generated for each
	// stored PIN digest.
	PinSaltSize = 16

	// PinDigestSize is the PBKDF2 output length in bytes.
	PinDigestSize = 32

	// DefaultPinKDFIterations is the PBKDF2-SHA256 iteration count used when
	// the configuration does not override it.
	DefaultPinKDFIterations = 100_000
)

// NewPinSalt generates a fresh random salt for PIN hashing.
//
// Returns an error only if the operating system's entropy source fails.
func NewPinSalt() ([]byte, error) {
	salt := make([]byte, PinSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("error generating PIN salt: %w", err)
	}
	return salt, nil
}

// DerivePinHash derives the stored digest for the given plaintext PIN and
// salt using PBKDF2-SHA256.
//
// The caller is responsible for discarding the plaintext after this call.
// An iteration count of zero selects [DefaultPinKDFIterations].
func DerivePinHash(pin string, salt []byte, iterations int) []byte {
	if iterations <= 0 {
		iterations = DefaultPinKDFIterations
	}
	return pbkdf2.Key([]byte(pin), salt, iterations, PinDigestSize, sha256.New)
}

// ComparePinHash reports whether the candidate digest matches the stored one.
//
// The comparison runs in constant time so the match length is not observable
// through response timing.
func ComparePinHash(stored, candidate []byte) bool {
	if len(stored) == 0 || len(stored) != len(candidate) {
		return false
	}
	return subtle.ConstantTimeCompare(stored, candidate) == 1
}
