package cnpj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formatted", "12.345.678/0001-99", "12345678000199"},
		{"digits only", "12345678000199", "12345678000199"},
		{"spaces", " 12 345 678 0001 99 ", "12345678000199"},
		{"empty", "", ""},
		{"letters stripped", "12a34b5678000199", "12345678000199"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Valid("12345678000199"))
	assert.False(t, Valid("1234567800019"))
	assert.False(t, Valid("123456780001999"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("12.345.678/0001-99"))
}
