//nolint:nolintlint,revive // utils is a common and acceptable package name for utility functions.
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSafeUint64ToInt64 tests the SafeUint64ToInt64 function.
func TestSafeUint64ToInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    uint64
		expected int64
	}{
		{
			name:     "normal value",
			input:    100,
			expected: 100,
		},
		{
			name:     "zero value",
			input:    0,
			expected: 0,
		},
		{
			name:     "max int64 value",
			input:    9223372036854775807,
			expected: 9223372036854775807,
		},
		{
			name:     "value exceeding max int64",
			input:    9223372036854775808,
			expected: 9223372036854775807,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := SafeUint64ToInt64(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestMaskSecret tests the MaskSecret function.
func TestMaskSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty secret",
			input:    "",
			expected: "",
		},
		{
			name:     "short secret is fully masked",
			input:    "abc",
			expected: "***",
		},
		{
			name:     "secret of prefix length is fully masked",
			input:    "abc123",
			expected: "******",
		},
		{
			name:     "long secret keeps prefix",
			input:    "eyJhbGciOi",
			expected: "eyJhbG****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, MaskSecret(tt.input))
		})
	}
}
