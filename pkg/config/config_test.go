package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dojoctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DOJO_URL", "DOJO_TOKEN", "DOJO_USERNAME", "DOJO_PASSWORD", "DOJO_API_SPEC", "DOJO_CONFIG"} {
		t.Setenv(key, "")
	}
}

func TestResolveFlagsWinOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOJO_URL", "https://env.example")
	t.Setenv("DOJO_TOKEN", "env-token")

	s, err := Resolve(Settings{URL: "https://flag.example"}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", s.URL)
	assert.Equal(t, "env-token", s.Token)
}

func TestResolveEnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "url: https://file.example\ntoken: file-token\nusername: file-user\n")
	t.Setenv("DOJO_TOKEN", "env-token")

	s, err := Resolve(Settings{}, path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example", s.URL)
	assert.Equal(t, "env-token", s.Token)
	assert.Equal(t, "file-user", s.Username)
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "url: https://file.example\napi_spec: /tmp/openapi.json\n")
	t.Setenv("DOJO_CONFIG", path)

	s, err := Resolve(Settings{}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://file.example", s.URL)
	assert.Equal(t, "/tmp/openapi.json", s.APISpec)
}

func TestResolveTrimsTrailingSlash(t *testing.T) {
	clearEnv(t)
	s, err := Resolve(Settings{URL: "https://dojo.example/"}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://dojo.example", s.URL)
}

func TestResolveFileErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Resolve(Settings{}, filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unparsable file", func(t *testing.T) {
		path := writeConfigFile(t, "url: [broken\n")
		_, err := Resolve(Settings{}, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	err := Settings{}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequired)
	assert.Contains(t, err.Error(), "DOJO_URL")

	assert.NoError(t, Settings{URL: "https://dojo.example"}.Validate())
}
