package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ReadingHash fingerprints a reading for deduplication. Field order and
// float formatting are fixed so the digest is stable across restarts.
func ReadingHash(humedad, temperatura, lluvia, sol float64) string {
	fields := []string{
		strconv.FormatFloat(humedad, 'f', -1, 64),
		strconv.FormatFloat(temperatura, 'f', -1, 64),
		strconv.FormatFloat(lluvia, 'f', -1, 64),
		strconv.FormatFloat(sol, 'f', -1, 64),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(sum[:])
}
