package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCEP(t *testing.T) {
	t.Run("Formatted", func(t *testing.T) {
		clean, err := NormalizeCEP("87047-000")
		assert.NoError(t, err)
		assert.Equal(t, "87047000", clean)
	})

	t.Run("Bare", func(t *testing.T) {
		clean, err := NormalizeCEP("87111000")
		assert.NoError(t, err)
		assert.Equal(t, "87111000", clean)
	})

	t.Run("Partial", func(t *testing.T) {
		_, err := NormalizeCEP("87047")
		assert.ErrorIs(t, err, ErrInvalidCEP)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := NormalizeCEP("abcde-fgh")
		assert.ErrorIs(t, err, ErrInvalidCEP)
	})
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "87047-000", FormatCEP("87047000"))
	assert.Equal(t, "87047", FormatCEP("87047"))
}
