// Package otp issues short-lived numeric one-time passcodes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Length is the number of digits in a generated code.
const Length = 6

// Code pairs a passcode with its expiry instant.
type Code struct {
	Value     string
	ExpiresAt time.Time
}

// Generate produces a random 6-digit code valid for ttl from now.
func Generate(ttl time.Duration) (Code, error) {
	// Random number in [0, 999999], formatted with leading zeros so the
	// code is always exactly six digits.
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return Code{}, fmt.Errorf("generate otp: %w", err)
	}
	return Code{
		Value:     fmt.Sprintf("%06d", n.Int64()),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Expired reports whether the expiry instant has passed.
func Expired(expiresAt time.Time, now time.Time) bool {
	return now.After(expiresAt)
}
