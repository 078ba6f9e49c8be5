package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPinSalt_LengthAndUniqueness(t *testing.T) {
	a, err := NewPinSalt()
	require.NoError(t, err)
	b, err := NewPinSalt()
	require.NoError(t, err)

	assert.Len(t, a, PinSaltSize)
	assert.NotEqual(t, a, b, "two generated salts should differ")
}

func TestDerivePinHash_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")

	first := DerivePinHash("1234", salt, 1000)
	second := DerivePinHash("1234", salt, 1000)

	assert.Equal(t, first, second)
	assert.Len(t, first, PinDigestSize)
}

func TestDerivePinHash_SaltChangesDigest(t *testing.T) {
	first := DerivePinHash("1234", []byte("salt-one________"), 1000)
	second := DerivePinHash("1234", []byte("salt-two________"), 1000)

	assert.NotEqual(t, first, second)
}

func TestDerivePinHash_ZeroIterationsUsesDefault(t *testing.T) {
	salt := []byte("0123456789abcdef")

	byDefault := DerivePinHash("1234", salt, 0)
	explicit := DerivePinHash("1234", salt, DefaultPinKDFIterations)

	assert.Equal(t, explicit, byDefault)
}

func TestComparePinHash_Match(t *testing.T) {
	salt := []byte("0123456789abcdef")
	digest := DerivePinHash("1234", salt, 1000)

	assert.True(t, ComparePinHash(digest, DerivePinHash("1234", salt, 1000)))
}

func TestComparePinHash_Mismatch(t *testing.T) {
	salt := []byte("0123456789abcdef")
	digest := DerivePinHash("1234", salt, 1000)

	assert.False(t, ComparePinHash(digest, DerivePinHash("0000", salt, 1000)))
}

func TestComparePinHash_EmptyStored(t *testing.T) {
	assert.False(t, ComparePinHash(nil, DerivePinHash("1234", []byte("salt"), 1000)))
}
