package utils

import (
	"errors"
	"strings"
)

// CEPLength is the number of digits in a Brazilian postal code.
const CEPLength = 8

var ErrInvalidCEP = errors.New("CEP must have exactly 8 digits")

// NormalizeCEP strips non-digit characters and validates the length.
// Partial input is an error; no lookup should be attempted for it.
func NormalizeCEP(cep string) (string, error) {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) != CEPLength {
		return "", ErrInvalidCEP
	}
	return clean, nil
}

// FormatCEP renders an 8-digit CEP in the conventional 87047-000 form.
func FormatCEP(clean string) string {
	if len(clean) != CEPLength {
		return clean
	}
	return clean[:5] + "-" + clean[5:]
}
