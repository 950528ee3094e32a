package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/regextester/internal/engine"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name     string
		dialect  engine.Dialect
		expr     string
		text     string
		template string
		first    bool
		want     string
	}{
		{"all", engine.DialectJava, "a", "banana", "X", false, "bXnXnX"},
		{"first", engine.DialectJava, "a", "banana", "X", true, "bXnana"},
		{"numbered groups", engine.DialectJava, `([a-z])(\d)`, "a1b2", "$2$1", false, "1a2b"},
		{"named group", engine.DialectJava, `(?<l>[a-z])`, "ab", "${l}!", false, "a!b!"},
		{"greedy number stops at count", engine.DialectJava, "(a)", "a", "$10", false, "a0"},
		{"escaped dollar", engine.DialectJava, "a", "a", `\$1`, false, "$1"},
		{"no match leaves text", engine.DialectJava, "z", "abc", "$9", false, "abc"},
		{"re2 unicode", engine.DialectRE2, "é", "aéb", "e", false, "aeb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compile(t, tt.dialect, tt.expr, 0)
			var got string
			var err error
			if tt.first {
				got, err = engine.ReplaceFirst(p, tt.text, tt.template)
			} else {
				got, err = engine.ReplaceAll(p, tt.text, tt.template)
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplace_TemplateErrors(t *testing.T) {
	p := compile(t, engine.DialectJava, "(a)", 0)
	for _, template := range []string{`x\`, "$", "$x", "${nope}", "${}", "${a", "$2"} {
		_, err := engine.ReplaceAll(p, "a", template)
		var te *engine.TemplateError
		assert.ErrorAs(t, err, &te, "template %q", template)
	}
}
