package utils

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionSeed(t *testing.T) {
	seed := SelectionSeed("Construction")

	sum := sha256.Sum256([]byte("Construction"))
	want := new(big.Int).Mod(new(big.Int).SetBytes(sum[:]), big.NewInt(100_000_000)).Int64()

	assert.Equal(t, want, seed)
	assert.GreaterOrEqual(t, seed, int64(0))
	assert.Less(t, seed, int64(100_000_000))
	assert.Equal(t, seed, SelectionSeed("Construction"))
	assert.NotEqual(t, seed, SelectionSeed("Agriculture"))
}

func TestNewRand(t *testing.T) {
	a := NewRand("Retail")
	b := NewRand("Retail")
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}

	assert.NotNil(t, NewRand(""))
}
