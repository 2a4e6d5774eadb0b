package timeutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"9:05", 545},
		{" 23:59 ", 1439},
		{"24:00", 1440},
		{"12:00 AM", 0},
		{"12:30 pm", 750},
		{"7pm", 1140},
	}
	for _, tc := range cases {
		got, err := ParseHHMM(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseHHMMRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "noon", "25:00", "10:60", "13:00 pm", "24:30", "10"} {
		_, err := ParseHHMM(in)
		assert.True(t, errors.Is(err, ErrInvalidTime), "input %q", in)
	}
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "08:05", FormatHHMM(485))
	assert.Equal(t, "00:10", FormatHHMM(MinutesPerDay+10))
	assert.Equal(t, "23:00", FormatHHMM(-60))
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("09:30", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 90, r.Minutes())
	assert.True(t, r.Contains(570))
	assert.False(t, r.Contains(660))

	_, err = ParseRange("11:00", "11:00")
	assert.ErrorIs(t, err, ErrInvalidTime)

	w, err := ParseWindow("11:00-14:00")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 660, End: 840}, w)
}
