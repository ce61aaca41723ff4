package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", NormalizeCPF("52998224725"))
	assert.Equal(t, "", NormalizeCPF("abc"))
}

func TestValidCPF(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, ValidCPF("529.982.247-25"))
		assert.True(t, ValidCPF("52998224725"))
		assert.True(t, ValidCPF("111.444.777-35"))
	})

	t.Run("Wrong Check Digits", func(t *testing.T) {
		assert.False(t, ValidCPF("529.982.247-26"))
		assert.False(t, ValidCPF("12345678900"))
	})

	t.Run("Repeated Digits", func(t *testing.T) {
		// These pass the checksum but are not issued CPFs
		assert.False(t, ValidCPF("111.111.111-11"))
		assert.False(t, ValidCPF("00000000000"))
	})

	t.Run("Wrong Length", func(t *testing.T) {
		assert.False(t, ValidCPF("5299822472"))
		assert.False(t, ValidCPF(""))
	})
}
