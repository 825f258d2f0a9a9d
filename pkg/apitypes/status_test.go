package apitypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFormatAndParse(t *testing.T) {
	lines := []StatusLine{
		{Class: ClassKeyboard, Path: "/sys/devices/virtual/input/input12", Attrs: []Attr{{"type-delay", "40ms"}}},
		{Class: ClassMouse, Path: "/sys/devices/virtual/input/input13", Attrs: []Attr{{"x-max", "1024"}, {"y-max", "768"}}},
	}
	text := FormatStatus(lines)
	assert.Equal(t,
		"kbd: /sys/devices/virtual/input/input12 type-delay=40ms\n"+
			"mouse: /sys/devices/virtual/input/input13 x-max=1024 y-max=768\n",
		text)

	parsed, err := ParseStatus(text)
	require.NoError(t, err)
	assert.Equal(t, lines, parsed)
}

func TestParseStatusErrors(t *testing.T) {
	for _, in := range []string{"garbage", "joystick: /sys/x", "kbd:"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseStatus(in)
			assert.Error(t, err)
		})
	}

	out, err := ParseStatus("")
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseClass(t *testing.T) {
	c, err := ParseClass("Touch")
	require.NoError(t, err)
	assert.Equal(t, ClassTouch, c)

	_, err = ParseClass("tablet")
	assert.ErrorIs(t, err, ErrUnknownClass)
}
