package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt(5))
	assert.Equal(t, 5, ToInt(int64(5)))
	assert.Equal(t, 5, ToInt(5.9))
	assert.Equal(t, 5, ToInt("5"))
	assert.Equal(t, 5, ToInt([]byte("5")))
	assert.Equal(t, 0, ToInt("not a number"))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("TRUE"))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}

func TestRoundPrice(t *testing.T) {
	assert.Equal(t, 10.56, RoundPrice(10.555))
	assert.Equal(t, 10.0, RoundPrice(10.004))
	assert.Equal(t, 0.0, RoundPrice(0))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10.56", FormatPrice(10.555))
	assert.Equal(t, "10.00", FormatPrice(10))
	assert.Equal(t, "0.10", FormatPrice(0.1))
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 10.56, ParsePrice("10.56"))
	assert.Equal(t, 10.56, ParsePrice(" 10.56 "))
	assert.Equal(t, 0.0, ParsePrice(""))
	assert.Equal(t, 0.0, ParsePrice("garbage"))
}
