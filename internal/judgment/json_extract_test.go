package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"raw object", `{"a":1}`, `{"a":1}`},
		{"fenced json", "Here:\n```json\n{\"a\":[1,2]}\n```\nbye", `{"a":[1,2]}`},
		{"untagged fence", "```\n[1,2]\n```", `[1,2]`},
		{"prose around", `The answer is {"s":"brace } inside"} as asked.`, `{"s":"brace } inside"}`},
		{"skips invalid first bracket", `[see note] {"ok":true}`, `{"ok":true}`},
		{"other language fence ignored", "```python\nprint(1)\n```\n{\"x\":1}", `{"x":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, got)
		})
	}

	_, err := ExtractJSON("nothing here {")
	assert.ErrorIs(t, err, errNoJSON)
}

func TestDecodeResults(t *testing.T) {
	type item struct {
		Index int `json:"index"`
	}
	got := decodeResults[item](`{"results":[{"index":1},{"index":"bad"},{"index":3}]}`)
	assert.Equal(t, []item{{1}, {3}}, got)

	assert.Len(t, decodeResults[item](`[{"index":1}]`), 1)
	assert.Empty(t, decodeResults[item](`{"results":"nope"}`))
	assert.Empty(t, decodeResults[item](`no json`))
}

func TestSimilarNames(t *testing.T) {
	assert.True(t, similarNames("Senso-ji Temple", "senso-ji temple (Asakusa)"))
	assert.True(t, similarNames("Tsukiji Outer Market Food Tour", "Outer Market at Tsukiji"))
	assert.False(t, similarNames("Tokyo Tower", "Tokyo Skytree"))
	assert.False(t, similarNames("Visit the Temple", "Tour the Temple"), "stopwords do not count")
	assert.False(t, similarNames("", "Ueno Park"))
}
