package tokens_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command/tokens"
	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := &cli.Command{
		Name:     "pexpand",
		Reader:   strings.NewReader(stdin),
		Writer:   &out,
		Commands: []*cli.Command{tokens.NewCommand()},
	}
	err := root.Run(context.Background(), append([]string{"pexpand", "tokens"}, args...))

	return out.String(), err
}

var want = []paramexp.Token{
	{Kind: paramexp.Symbol, Text: "$", Raw: "$"},
	{Kind: paramexp.Symbol, Text: "{", Raw: "{"},
	{Kind: paramexp.Word, Text: "a", Raw: "a"},
	{Kind: paramexp.Symbol, Text: "}", Raw: "}"},
	{Kind: paramexp.Space, Text: " ", Raw: " "},
	{Kind: paramexp.Literal, Text: "b c", Raw: "'b c'"},
}

func TestTokens_YAML(t *testing.T) {
	out, err := run(t, "", "--format", "yaml", "${a} 'b c'")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: symbol")

	var got []paramexp.Token
	require.NoError(t, yamlv3.Unmarshal([]byte(out), &got))
	assert.Equal(t, want, got)
}

func TestTokens_JSONFromStdin(t *testing.T) {
	out, err := run(t, "${a} 'b c'", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "literal"`)

	var got []paramexp.Token
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, want, got)
}

func TestTokens_Text(t *testing.T) {
	out, err := run(t, "", "${a} 'b c'")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, len(want))
	assert.True(t, strings.HasPrefix(lines[0], "symbol"))
	assert.Contains(t, lines[5], `"'b c'"`)
}

func TestTokens_Errors(t *testing.T) {
	_, err := run(t, "", "--format", "xml", "a")
	require.Error(t, err)

	_, err = run(t, "", `"open`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated quote")
}
