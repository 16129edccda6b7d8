package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// OTPDigits is the length of the job-completion code emailed on confirmation.
const OTPDigits = 6

// GenerateNumericOTP returns a uniformly random code with exactly OTPDigits
// digits (no leading zero).
func GenerateNumericOTP() (int, error) {
	lower := int64(1)
	for i := 1; i < OTPDigits; i++ {
		lower *= 10
	}
	span := big.NewInt(lower*10 - lower)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("failed to generate OTP: %w", err)
	}
	return int(n.Int64() + lower), nil
}

// HashOTP stores only a bcrypt digest of the code.
func HashOTP(code int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(fmt.Sprintf("%d", code)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP: %w", err)
	}
	return string(hash), nil
}

// VerifyOTP compares a provided code with the stored digest.
func VerifyOTP(hash, provided string) bool {
	if hash == "" || provided == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(provided)) == nil
}
