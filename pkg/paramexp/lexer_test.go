package paramexp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

func texts(toks []paramexp.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}

	return out
}

func joinRaw(toks []paramexp.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Raw)
	}

	return sb.String()
}

func TestTokenize_PreservesSpaces(t *testing.T) {
	s := " - $parameter/$aa/${bb}   - \t- \n ${parameter/ aa /   - zz }- "

	toks, err := paramexp.Tokenize(s).All()
	require.NoError(t, err)

	want := []string{
		" ", "-", " ", "$", "parameter", "/", "$", "aa", "/", "$", "{", "bb", "}",
		"   ", "-", " \t", "-", " \n ", "$", "{", "parameter", "/", " ", "aa", " ",
		"/", "   ", "-", " ", "zz", " ", "}", "-", " ",
	}
	assert.Equal(t, want, texts(toks))
	assert.Equal(t, s, strings.Join(texts(toks), ""))
}

func TestTokenize_Kinds(t *testing.T) {
	toks, err := paramexp.Tokenize("a.b ${#x}").All()
	require.NoError(t, err)

	kinds := make([]paramexp.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []paramexp.Kind{
		paramexp.Word, paramexp.Space, paramexp.Symbol, paramexp.Symbol,
		paramexp.Symbol, paramexp.Word, paramexp.Symbol,
	}, kinds)
	assert.True(t, toks[2].Is('$'))
	assert.True(t, toks[4].Is('#'), "# is not a comment")
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  leading and trailing  ",
		"a\tb\nc",
		"${x:-y} $z %#:-=?+/{}",
		`a 'b c' "d $e" \f`,
		`""`,
		`''`,
		`x-"" y`,
		`"quoted ${x}"`,
		"line\\\ncontinued",
		`trailing\`,
		"unicode ✓ ${é}",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			toks, err := paramexp.Tokenize(in).All()
			require.NoError(t, err)
			assert.Equal(t, in, joinRaw(toks))
		})
	}
}

func TestTokenize_Quoting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		kinds map[int]paramexp.Kind
	}{
		{
			name:  "single quotes are literal",
			input: `'$x {y}'`,
			want:  []string{"$x {y}"},
			kinds: map[int]paramexp.Kind{0: paramexp.Literal},
		},
		{
			name:  "double quotes keep structure",
			input: `"$x y"`,
			want:  []string{"$", "x", " ", "y"},
			kinds: map[int]paramexp.Kind{0: paramexp.Symbol},
		},
		{
			name:  "backslash escapes a symbol",
			input: `\$x`,
			want:  []string{"$", "x"},
			kinds: map[int]paramexp.Kind{0: paramexp.Literal},
		},
		{
			name:  "backslash inside double quotes",
			input: `"\$ \a"`,
			want:  []string{"$", " ", `\`, "a"},
		},
		{
			name:  "single quote inside double quotes",
			input: `"it's"`,
			want:  []string{"it's"},
		},
		{
			name:  "line continuation",
			input: "a\\\nb",
			want:  []string{"ab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := paramexp.Tokenize(tt.input).All()
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(toks))
			for i, kind := range tt.kinds {
				assert.Equal(t, kind, toks[i].Kind, "token %d", i)
			}
			assert.Equal(t, tt.input, joinRaw(toks))
		})
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	for _, in := range []string{`'abc`, `"abc`, `ok "x`} {
		lx := paramexp.Tokenize(in)
		for lx.Scan() {
		}

		var parseErr *paramexp.ParseError
		require.ErrorAs(t, lx.Err(), &parseErr, in)
		assert.False(t, lx.Scan(), "lexer is not restartable")
	}
}

func TestKind_Text(t *testing.T) {
	for _, k := range []paramexp.Kind{paramexp.Word, paramexp.Space, paramexp.Symbol, paramexp.Literal} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got paramexp.Kind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	_, err := paramexp.Kind(9).MarshalText()
	require.Error(t, err)

	var k paramexp.Kind
	require.Error(t, k.UnmarshalText([]byte("comment")))
}
