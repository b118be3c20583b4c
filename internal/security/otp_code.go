package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const digits = "0123456789"

var errInvalidLength = errors.New("length must be positive")

// NumericCode returns a cryptographically secure, unbiased numeric string
// of the requested length. Leading zeros are allowed.
func NumericCode(length int) (string, error) {
	if length <= 0 {
		return "", errInvalidLength
	}

	limit := big.NewInt(int64(len(digits)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = digits[position.Int64()]
	}

	return string(value), nil
}
