package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"port": 8080, "data": {"subjects_file": "data.json"}}`))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, "gemini", cfg.AI.Provider)
	require.Equal(t, "diagram", cfg.AI.MindMapFormat)
	require.Equal(t, "auto", cfg.AI.ScopePolicy)
	require.Equal(t, "none", cfg.GenCache.Type)
	require.Equal(t, "chrome", cfg.Rasterizer.Type)
	require.Equal(t, "local", cfg.Staging.Type)
	require.NotNil(t, cfg.Staging.Data)
	require.Equal(t, "*/10 * * * *", cfg.StagingSweep.Cron)
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
  "port": 9000,
  "data": {"subjects_file": "subjects.yaml", "pyqs_file": "pyqs.json", "cache_ttl_seconds": 30},
  "ai": {
    "provider": "openai", "model": "gpt-4o-mini", "data": {"api_key": "k"},
    "fallbacks": [{"provider": "anthropic", "model": "claude-3-5-haiku-latest"}],
    "mindmap_format": "Tree", "scope_policy": "label"
  },
  "gen_cache": {"type": "lru", "ttl_seconds": 60},
  "rasterizer": {"type": "none"}
}`))
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.AI.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	require.Len(t, cfg.AI.Fallbacks, 1)
	require.Equal(t, "tree", cfg.AI.MindMapFormat)
	require.Equal(t, "label", cfg.AI.ScopePolicy)
	require.Equal(t, 1000, cfg.GenCache.Size)
	require.Equal(t, 60, cfg.GenCache.TTLSeconds)
	require.Equal(t, 30, cfg.Data.CacheTTLSeconds)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"port", `{}`, "port is required"},
		{"subjects", `{"port": 1}`, "data.subjects_file is required"},
		{"mindmap", `{"port": 1, "data": {"subjects_file": "x"}, "ai": {"mindmap_format": "svg"}}`, "ai.mindmap_format must be diagram or tree"},
		{"policy", `{"port": 1, "data": {"subjects_file": "x"}, "ai": {"scope_policy": "random"}}`, "ai.scope_policy"},
		{"redis", `{"port": 1, "data": {"subjects_file": "x"}, "gen_cache": {"type": "redis"}}`, "gen_cache.redis_url is required"},
		{"fallback", `{"port": 1, "data": {"subjects_file": "x"}, "ai": {"fallbacks": [{}]}}`, "ai.fallbacks[0].provider is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
