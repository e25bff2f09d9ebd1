package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	digits = "0123456789"
	// no 0/O or 1/l/I so the password survives being read off an email
	passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// RandomString draws n characters from alphabet using crypto/rand
func RandomString(n int, alphabet string) string {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("generate random string failed")
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

// RandomDigits returns n random decimal digits, used for OTP codes
func RandomDigits(n int) string {
	return RandomString(n, digits)
}

// TemporaryPassword returns a random credential of length n
func TemporaryPassword(n int) string {
	return RandomString(n, passwordAlphabet)
}
