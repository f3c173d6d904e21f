package encoding

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	base     = 62
	maxLen   = 11 // digits of math.MaxUint64
)

var (
	ErrInvalidBase62 = errors.New("encoding: invalid character in base62 string")
	ErrBase62Range   = errors.New("encoding: base62 value overflows uint64")
)

// Base62Encode converts an integer to a Base62 string
func Base62Encode(id uint64) string {
	if id == 0 {
		return string(alphabet[0])
	}

	var chars [maxLen]byte
	k := maxLen
	for n := id; n > 0; n /= base {
		k--
		chars[k] = alphabet[n%base]
	}
	return string(chars[k:])
}

// Base62Decode converts a Base62 string back to an integer
func Base62Decode(s string) (uint64, error) {
	if s == "" {
		return 0, errors.Wrap(ErrInvalidBase62, "empty string")
	}

	var id uint64
	for _, char := range s {
		index := strings.IndexRune(alphabet, char)
		if index == -1 {
			return 0, errors.Wrapf(ErrInvalidBase62, "%q", char)
		}
		if id > (math.MaxUint64-uint64(index))/base {
			return 0, errors.Wrap(ErrBase62Range, s)
		}
		id = id*base + uint64(index)
	}
	return id, nil
}
