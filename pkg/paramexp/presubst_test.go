package paramexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresubstitute(t *testing.T) {
	env := Env{"pkg": "P", "pkgver": "1.0", "empty": ""}

	tests := []struct {
		name string
		text string
		want []segment
	}{
		{
			name: "longest name",
			text: "$pkgver-$pkg",
			want: []segment{{text: "1.0", lit: true}, {text: "-"}, {text: "P", lit: true}},
		},
		{
			name: "braced",
			text: "a${pkg}b",
			want: []segment{{text: "a"}, {text: "P", lit: true}, {text: "b"}},
		},
		{
			name: "operators untouched",
			text: "${pkg:-x}${#pkg}",
			want: []segment{{text: "${pkg:-x}${#pkg}"}},
		},
		{
			name: "unset untouched",
			text: "$missing ${missing}",
			want: []segment{{text: "$missing ${missing}"}},
		},
		{
			name: "empty value",
			text: "[$empty]",
			want: []segment{{text: "["}, {text: "", lit: true}, {text: "]"}},
		},
		{
			name: "single quotes and escapes",
			text: `'$pkg' \$pkg "$pkg"`,
			want: []segment{{text: `'$pkg' \$pkg "`}, {text: "P", lit: true}, {text: `"`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := presubstitute(tt.text, env, true, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPresubstitute_LiteralQuotes(t *testing.T) {
	got, err := presubstitute(`'$a' \$a`, Env{"a": "1"}, false, false)
	require.NoError(t, err)

	assert.Equal(t, []segment{
		{text: "'"}, {text: "1", lit: true}, {text: `' \`}, {text: "1", lit: true},
	}, got)
}

func TestPresubstitute_Strict(t *testing.T) {
	env := Env{"a": "1"}

	for _, text := range []string{`$x`, `${x}`, `"$x"`, `${a:-$x}`} {
		_, err := presubstitute(text, env, true, true)

		var nullErr *NullError
		require.ErrorAs(t, err, &nullErr, text)
		assert.Equal(t, "x", nullErr.Name)
	}

	for _, text := range []string{`'$x'`, `\$x`, `${x:-1}`, `${#x}`, `$a`} {
		_, err := presubstitute(text, env, true, true)
		require.NoError(t, err, text)
	}

	_, err := presubstitute(`'$x'`, env, false, true)
	require.Error(t, err, "quotes are ordinary characters without quoting")
}

func TestEnvLookup(t *testing.T) {
	env := Env{"set": "v", "null": ""}

	tests := []struct {
		name  string
		value string
		state State
	}{
		{"set", "v", SetNotNull},
		{"null", "", SetNull},
		{"missing", "", Unset},
	}
	for _, tt := range tests {
		value, state := env.Lookup(tt.name)
		assert.Equal(t, tt.value, value)
		assert.Equal(t, tt.state, state, tt.name)
		assert.Equal(t, tt.state, env.State(tt.name))
	}

	assert.Equal(t, "set-but-null", SetNull.String())
	assert.True(t, IsName("_a1"))
	assert.False(t, IsName("1a"))
	assert.False(t, IsName("a-b"))
	assert.False(t, IsName(""))
}

func TestOperatorString(t *testing.T) {
	assert.Equal(t, "trim-longest-prefix", OpTrimLongestPrefix.String())
	assert.Equal(t, "Operator(99)", Operator(99).String())
}
