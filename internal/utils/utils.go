package utils

import (
	"math"
	"strings"
)

// maskedPrefixLength is how many leading characters of a secret stay visible in logs.
const maskedPrefixLength = 6

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// MaskSecret keeps the first few characters of a secret and replaces the rest with asterisks.
// Short secrets are masked entirely.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= maskedPrefixLength {
		return strings.Repeat("*", len(secret))
	}

	return secret[:maskedPrefixLength] + strings.Repeat("*", len(secret)-maskedPrefixLength)
}
