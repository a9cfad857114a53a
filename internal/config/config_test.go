package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
listen: "127.0.0.1:4000"
session_key: "s3cret"
api:
  base_url: " https://api.example.com/ "
gravatar:
  enabled: true
  size: 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:4000", cfg.Listen)
	assert.Equal(t, "s3cret", cfg.SessionKey)
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	require.NotNil(t, cfg.Gravatar)
	assert.True(t, cfg.Gravatar.Enabled)
	assert.Equal(t, 120, cfg.Gravatar.Size)
	assert.Equal(t, "identicon", cfg.Gravatar.DefaultImage)
}

func TestLoad_DefaultBaseURL(t *testing.T) {
	path := writeConfig(t, `session_key: "s3cret"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "0.0.0.0:3000", cfg.Listen)
}

func TestLoad_EnvOverridesBaseURL(t *testing.T) {
	path := writeConfig(t, `session_key: "s3cret"`)
	t.Setenv("LINKBIO_API_BASE_URL", "http://backend:9000/")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.API.BaseURL)
}

func TestLoad_SessionKeyFromEnv(t *testing.T) {
	path := writeConfig(t, `listen: ":3000"`)
	t.Setenv("LINKBIO_SESSION_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SessionKey)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LINKBIO_API_BASE_URL=http://dotenv:8000\n"), 0o600))
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`session_key: "s3cret"`), 0o600))
	t.Chdir(dir)
	// godotenv sets the variable for the whole process; register it for cleanup.
	t.Setenv("LINKBIO_API_BASE_URL", "")
	require.NoError(t, os.Unsetenv("LINKBIO_API_BASE_URL"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:8000", cfg.API.BaseURL)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing session key",
			content: `listen: ":3000"`,
			wantErr: "session key is required",
		},
		{
			name: "invalid base url scheme",
			content: `
session_key: "s3cret"
api:
  base_url: "ftp://example.com"
`,
			wantErr: "api base URL must start with http:// or https://",
		},
		{
			name: "gravatar size out of range",
			content: `
session_key: "s3cret"
gravatar:
  enabled: true
  size: 4096
`,
			wantErr: "gravatar size must be between 1 and 2048",
		},
		{
			name: "non positive session max age",
			content: `
session_key: "s3cret"
session_max_age: 0
`,
			wantErr: "session max age must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestURLSanitize(t *testing.T) {
	assert.Equal(t, "http://localhost:8000", urlSanitize("  http://localhost:8000/ "))
	assert.Equal(t, "http://localhost:8000", urlSanitize("http://localhost:8000"))
}
