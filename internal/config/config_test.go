package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyyoichi/watermark_lf/mark"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func unsetStrength(t *testing.T) {
	t.Helper()
	// t.Setenv restores the previous value when the test ends.
	t.Setenv(EnvStrength, "")
	require.NoError(t, os.Unsetenv(EnvStrength))
}

func TestLoad_Defaults(t *testing.T) {
	unsetStrength(t)
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, mark.DefaultStrength, cfg.StrengthValue())
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 95, cfg.Quality)
	assert.NotEmpty(t, cfg.CacheDir)
}

func TestLoad_File(t *testing.T) {
	unsetStrength(t)
	path := writeFile(t, "lfmark.yaml", "strength: \"0.02\"\nworkers: 4\nformat: png\njpeg_quality: 80\ncache_dir: /var/cache/lfmark\n")
	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, float32(0.02), cfg.StrengthValue())
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 80, cfg.Quality)
	assert.Equal(t, "/var/cache/lfmark", cfg.CacheDir)
}

func TestLoad_Env(t *testing.T) {
	path := writeFile(t, "lfmark.yaml", "strength: 0.02\n")

	t.Setenv(EnvStrength, "0.5")
	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), cfg.StrengthValue())
}

func TestLoad_EnvFile(t *testing.T) {
	unsetStrength(t)
	envFile := writeFile(t, ".env", EnvStrength+"=0.25\n")
	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), cfg.StrengthValue())

	t.Run("missing_env_file", func(t *testing.T) {
		unsetStrength(t)
		cfg, err := Load("", filepath.Join(t.TempDir(), "none.env"))
		require.NoError(t, err)
		assert.Equal(t, mark.DefaultStrength, cfg.StrengthValue())
	})
}

func TestLoad_Errors(t *testing.T) {
	unsetStrength(t)
	test := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad_strength", "strength: loud\n", mark.ErrInvalidStrength},
		{"negative_workers", "workers: -1\n", ErrInvalidConfig},
		{"bad_quality", "jpeg_quality: 0\n", ErrInvalidConfig},
		{"empty_cache_dir", "cache_dir: \"\"\n", ErrInvalidConfig},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "lfmark.yaml", tt.content), "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"), "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad_yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "lfmark.yaml", "workers: [1\n"), "")
		assert.Error(t, err)
	})
	t.Run("bad_env", func(t *testing.T) {
		t.Setenv(EnvStrength, "NaN")
		_, err := Load("", "")
		var pe *mark.ParseError
		assert.ErrorAs(t, err, &pe)
	})
}
