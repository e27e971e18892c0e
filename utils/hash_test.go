package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingHashDeterministic(t *testing.T) {
	a := ReadingHash(55.5, 22.3, 0, 80.1)
	b := ReadingHash(55.5, 22.3, 0, 80.1)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestReadingHashChangesPerField(t *testing.T) {
	base := ReadingHash(55.5, 22.3, 0, 80.1)

	assert.NotEqual(t, base, ReadingHash(55.6, 22.3, 0, 80.1))
	assert.NotEqual(t, base, ReadingHash(55.5, 22.4, 0, 80.1))
	assert.NotEqual(t, base, ReadingHash(55.5, 22.3, 1, 80.1))
	assert.NotEqual(t, base, ReadingHash(55.5, 22.3, 0, 80.2))
}

func TestReadingHashFieldOrderMatters(t *testing.T) {
	// Swapping two values must not produce the same digest.
	assert.NotEqual(t, ReadingHash(10, 20, 0, 0), ReadingHash(20, 10, 0, 0))
}
