package utils

import (
	"crypto/sha256"
	"math/big"
	"math/rand/v2"
)

const seedModulus = 100_000_000

// SelectionSeed - стабильный seed выбора (отрасль, стартап): sha256 ключа
// как большое целое по модулю 10^8
func SelectionSeed(key string) int64 {
	sum := sha256.Sum256([]byte(key))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, big.NewInt(seedModulus)).Int64()
}

// NewRand создает отдельный источник случайных чисел на запрос.
// Пустой ключ даёт случайно засеянный источник.
func NewRand(selection string) *rand.Rand {
	if selection == "" {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return NewSeededRand(SelectionSeed(selection))
}

// NewSeededRand создает источник с явным seed
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
