package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/regextester/internal/engine"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		text  string
		limit int
		want  []string
	}{
		{"keeps inner empties", ",", "a,b,,c", 0, []string{"a", "b", "", "c"}},
		{"drops trailing empties", ",", "a,b,,", 0, []string{"a", "b"}},
		{"negative keeps trailing", ",", "a,b,,", -1, []string{"a", "b", "", ""}},
		{"limit caps parts", ",", "a,b,c", 2, []string{"a", "b,c"}},
		{"leading positive match", ",", ",a", 0, []string{"", "a"}},
		{"zero width at start", "", "abc", 0, []string{"a", "b", "c"}},
		{"no match", ";", "abc", 0, []string{"abc"}},
		{"only delimiters", ",", ",,", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compile(t, engine.DialectJava, tt.expr, 0)
			got, err := engine.Split(p, tt.text, tt.limit)
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitWithDelimiters(t *testing.T) {
	p := compile(t, engine.DialectJava, "[,;]", 0)

	parts, delims, err := engine.SplitWithDelimiters(p, "a,b;c,", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", ""}, parts)
	assert.Equal(t, []string{",", ";", ","}, delims)

	parts, delims, err = engine.SplitWithDelimiters(p, "a,b;c", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b;c"}, parts)
	assert.Equal(t, []string{","}, delims)

	parts, delims, err = engine.SplitWithDelimiters(p, "abc", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, parts)
	assert.Empty(t, delims)
}
