package command_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command"
	"github.com/lwmacct/251207-go-pkg-paramexp/internal/config"
	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

func TestBuildEnv(t *testing.T) {
	t.Setenv("PEXPAND_TEST_BUILD", "from-environ")

	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte("a: first\nb: first\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("b: second\nc: second\n"), 0o600))

	t.Run("layers override in order", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.EnvFiles = []string{first, second}
		cfg.Vars = map[string]string{"c": "var"}

		env, err := command.BuildEnv(&cfg)
		require.NoError(t, err)

		assert.Equal(t, "first", env["a"])
		assert.Equal(t, "second", env["b"])
		assert.Equal(t, "var", env["c"])
		assert.Equal(t, "from-environ", env["PEXPAND_TEST_BUILD"])
	})

	t.Run("without environ", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Environ = false
		cfg.Vars = map[string]string{"x": ""}

		env, err := command.BuildEnv(&cfg)
		require.NoError(t, err)
		assert.Equal(t, paramexp.Env{"x": ""}, env)
	})

	t.Run("missing env file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.EnvFiles = []string{filepath.Join(dir, "missing.yaml")}

		_, err := command.BuildEnv(&cfg)
		require.Error(t, err)
	})

	t.Run("invalid var name", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Vars = map[string]string{"1x": "v"}

		_, err := command.BuildEnv(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"1x"`)
	})
}

func TestSuggest(t *testing.T) {
	candidates := []string{"HOME", "PATH", "pkgver", "pkgname"}

	tests := []struct {
		name string
		want string
	}{
		{"HOM", "HOME"},
		{"HOEM", "HOME"},
		{"home", "HOME"},
		{"pkgvr", "pkgver"},
		{"zzzzzz", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, command.Suggest(tt.name, candidates))
		})
	}
}

func TestExplain(t *testing.T) {
	env := paramexp.Env{"HOME": "/root"}

	_, err := paramexp.Expand("$HOEM", env, paramexp.WithStrict())
	require.Error(t, err)

	explained := command.Explain(err, env)
	assert.Contains(t, explained.Error(), `did you mean "HOME"?`)

	var nullErr *paramexp.NullError
	require.ErrorAs(t, explained, &nullErr, "wrapped error stays matchable")
	assert.Equal(t, "HOEM", nullErr.Name)

	_, err = paramexp.Expand("${HOME", env)
	require.Error(t, err)
	assert.Equal(t, err, command.Explain(err, env), "parse errors pass through")
}
