package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	v, ok := ParseFloat("7.29")
	assert.True(t, ok)
	assert.Equal(t, 7.29, v)

	v, ok = ParseFloat(" 100 ")
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)

	_, ok = ParseFloat("-")
	assert.False(t, ok)
	_, ok = ParseFloat("")
	assert.False(t, ok)
	_, ok = ParseFloat("abc")
	assert.False(t, ok)
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, 1.5, ToFloat64(1.5))
	assert.Equal(t, 3.0, ToFloat64(3))
	assert.Equal(t, 2.25, ToFloat64("2.25"))
	assert.Equal(t, 0.0, ToFloat64(nil))
	assert.Equal(t, 0.0, ToFloat64(struct{}{}))
}
