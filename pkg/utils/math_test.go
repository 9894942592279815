package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDecimal(t *testing.T) {
	assert.Equal(t, 3.14, RoundDecimal(3.14159, 2))
	assert.Equal(t, 0.000123, RoundDecimal(0.0001234, 6))
	assert.Equal(t, -2.5, RoundDecimal(-2.46, 1))
	assert.Equal(t, 12345.0, RoundDecimal(12345.4, 0))
}
