package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100"},
		{"12.5", "12.5"},
		{"12,50", "12.5"},
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"-588,74", "-588.74"},
		{"250 ₺", "250"},
		{"1.250,00 TL", "1250"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := parseAmount("abc")
	assert.Error(t, err)

	_, err = parseAmount("")
	assert.Error(t, err)
}
