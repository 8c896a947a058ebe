package crypto_util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateKeccak256(t *testing.T) {
	// keccak256("") 是以太坊中常见的空数据哈希
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", CalculateKeccak256(nil))
	assert.Equal(t, Keccak256([]byte("ab")), Keccak256([]byte("a"), []byte("b")))
}

func TestCalculateBlake3(t *testing.T) {
	a := CalculateBlake3([]byte("savings"))
	b := CalculateBlake3([]byte("savings"))
	c := CalculateBlake3([]byte("savings!"))

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
