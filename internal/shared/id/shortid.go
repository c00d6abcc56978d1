package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixTenant         = "tn"
	PrefixOrganization   = "org"
	PrefixDailyMetric    = "dm"
	PrefixMonthlyMetric  = "mm"
	PrefixEnrollmentData = "ed"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
// This follows the Stripe-style ID pattern for human-readable identifiers.
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// NewDailyMetricID generates a Stripe-style ID for a daily metric record.
func NewDailyMetricID() (string, error) {
	return GenerateWithPrefix(PrefixDailyMetric, DefaultLength)
}

// NewMonthlyMetricID generates a Stripe-style ID for a monthly metric record.
func NewMonthlyMetricID() (string, error) {
	return GenerateWithPrefix(PrefixMonthlyMetric, DefaultLength)
}

// NewEnrollmentDataID generates a Stripe-style ID for an enrollment snapshot.
func NewEnrollmentDataID() (string, error) {
	return GenerateWithPrefix(PrefixEnrollmentData, DefaultLength)
}

// HasPrefix reports whether the short ID carries the given type prefix.
func HasPrefix(sid, prefix string) bool {
	return strings.HasPrefix(sid, prefix+"_")
}
