package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable FromEnv reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORAGE_KIND", "STORAGE_DIR", "STORAGE_KEY", "DATABASE_URL", "REDIS_ADDR",
		"REDIS_TTL", "MEMORY_QUOTA", "GEMINI_API_KEY", llm.EnvModelLite, llm.EnvModelStandard,
		llm.EnvModelAdvanced, "RESUME_TEMPLATE", "CHROME_PATH", "PDF_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"storage_kind": "redis",
		"redis_addr": "localhost:6379",
		"redis_ttl": "24h",
		"template": "classic",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageKind)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "classic", cfg.Template)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Default(), ""},
		{"empty", Config{}, ""},
		{"bad port", Config{Port: 70000}, "port"},
		{"negative quota", Config{MemoryQuota: -1}, "memory_quota"},
		{"postgres without url", Config{StorageKind: "postgres"}, "database_url"},
		{"redis without addr", Config{StorageKind: "redis"}, "redis_addr"},
		{"unknown storage", Config{StorageKind: "s3"}, "unknown storage kind"},
		{"unknown template", Config{Template: "retro"}, "unknown template"},
		{"bad ttl", Config{RedisTTL: "forever"}, "redis_ttl"},
		{"negative timeout", Config{PDFTimeout: "-1s"}, "pdf_timeout"},
		{"postgres ok", Config{StorageKind: "postgres", DatabaseURL: "postgres://localhost/resumes"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		StorageKind: "memory",
		APIKey:      "custom-key",
	}

	merged := partial.MergeWithDefaults(Default())

	assert.Equal(t, "memory", merged.StorageKind)
	assert.Equal(t, "custom-key", merged.APIKey)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultStorageDir, merged.StorageDir)
	assert.Equal(t, "modern", merged.Template)
	assert.Equal(t, "30s", merged.PDFTimeout)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: 1234, StorageDir: "x"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 1234, merged.Port)
	assert.Equal(t, "x", merged.StorageDir)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("STORAGE_KIND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://db/resumes")
	t.Setenv("MEMORY_QUOTA", "5242880")
	t.Setenv(llm.EnvModelLite, "gemini-custom-lite")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "postgres", cfg.StorageKind)
	assert.Equal(t, "postgres://db/resumes", cfg.DatabaseURL)
	assert.Equal(t, 5242880, cfg.MemoryQuota)
	assert.Equal(t, "gemini-custom-lite", cfg.ModelLite)

	t.Setenv("PORT", "eighty")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "invalid PORT")
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DIR", "/var/lib/resumes")
	path := writeConfig(t, `{"port": 9000, "storage_dir": "from-file", "template": "creative"}`)

	cfg, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/var/lib/resumes", cfg.StorageDir)
	assert.Equal(t, "creative", cfg.Template)
	assert.Equal(t, DefaultStorageKind, cfg.StorageKind)
}

func TestResolve_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_KIND", "redis")

	_, err := Resolve("")
	assert.ErrorContains(t, err, "redis_addr")
}

func TestDerivedConfigs(t *testing.T) {
	cfg := Config{
		StorageKind:   "redis",
		RedisAddr:     "cache:6379",
		RedisTTL:      "2h",
		ModelAdvanced: "gemini-experimental",
		ChromePath:    "/usr/bin/chromium",
		PDFTimeout:    "45s",
	}

	sc := cfg.StorageConfig()
	assert.Equal(t, storage.KindRedis, sc.Kind)
	assert.Equal(t, 2*time.Hour, sc.RedisTTL)

	lc := cfg.LLMConfig()
	assert.Equal(t, "gemini-experimental", lc.GetModel(llm.TierAdvanced))
	assert.Equal(t, llm.DefaultConfig().GetModel(llm.TierLite), lc.GetModel(llm.TierLite))

	printer := cfg.PDFPrinter()
	assert.Equal(t, "/usr/bin/chromium", printer.ExecPath)
	assert.Equal(t, 45*time.Second, printer.Timeout)
}
