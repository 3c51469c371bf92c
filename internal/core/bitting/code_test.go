package bitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	t.Run("mixed specials", func(t *testing.T) {
		values := ParseCode("1A?", 3, 4)
		assert.Equal(t, []Value{Depth(1), Half(HalfA), Unknown()}, values)
		assert.Equal(t, "1A?", FormatCode(values))
	})

	t.Run("pads with blanks", func(t *testing.T) {
		values := ParseCode("12", 4, 4)
		require.Len(t, values, 4)
		assert.Equal(t, Blank(), values[2])
		assert.Equal(t, Blank(), values[3])
		assert.Equal(t, "12", FormatCode(values))
	})

	t.Run("truncates extra characters", func(t *testing.T) {
		values := ParseCode("123456", 3, 6)
		assert.Equal(t, "123", FormatCode(values))
	})

	t.Run("clamps digits above max depth", func(t *testing.T) {
		values := ParseCode("19", 2, 4)
		assert.Equal(t, []Value{Depth(1), Depth(4)}, values)
	})

	t.Run("invalid characters become blank", func(t *testing.T) {
		values := ParseCode("1-3", 3, 4)
		assert.Equal(t, Blank(), values[1])
	})

	t.Run("lowercase specials", func(t *testing.T) {
		assert.Equal(t, "XBT", FormatCode(ParseCode("xbt", 3, 4)))
	})
}

func TestFormatParseRoundTrip(t *testing.T) {
	codes := []Code{
		{1, 2, 3, 4},
		{5, 5, 5, 5, 5, 5, 5, 5},
		{9, 1},
		{3},
	}
	for _, c := range codes {
		t.Run(c.String(), func(t *testing.T) {
			values := c.Values()
			parsed := ParseCode(FormatCode(values), len(values), 9)
			assert.Equal(t, values, parsed)
		})
	}
}

func TestCodeMarshalText(t *testing.T) {
	text, err := Code{2, 4, 1}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "241", string(text))

	var code Code
	require.NoError(t, code.UnmarshalText(text))
	assert.Equal(t, Code{2, 4, 1}, code)

	assert.Error(t, code.UnmarshalText([]byte("2?1")))
}
