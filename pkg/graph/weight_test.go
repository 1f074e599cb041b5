package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeight(t *testing.T) {
	valid := map[string]float64{
		"10":     10,
		" 2.5 ":  2.5,
		"1e3":    1000,
		"0.0001": 0.0001,
	}
	for in, want := range valid {
		got, err := ParseWeight(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "  ", "0", "-4", "abc", "NaN", "Inf", "-Inf", "1e400", "delete"} {
		_, err := ParseWeight(in)
		assert.ErrorIs(t, err, ErrInvalidWeight, in)
	}
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "14", FormatWeight(14))
	assert.Equal(t, "2.5", FormatWeight(2.5))
}
