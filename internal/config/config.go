package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/common/logger"

	"github.com/xxxsen/examprep/internal/curriculum"
	"github.com/xxxsen/examprep/internal/filestore"
	"github.com/xxxsen/examprep/internal/gencache"
	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/render"
)

type Config struct {
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Data          DataConfig       `json:"data"`
	AI            AIConfig         `json:"ai"`
	GenCache      gencache.Config  `json:"gen_cache"`
	Rasterizer    render.Config    `json:"rasterizer"`
	Staging       filestore.Config `json:"staging"`
	StagingSweep  SweepConfig      `json:"staging_sweep"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	RateLimitMs   int              `json:"rate_limit_ms"`
	MermaidScript string           `json:"mermaid_script"`
}

type DataConfig struct {
	SubjectsFile    string `json:"subjects_file"`
	PYQsFile        string `json:"pyqs_file"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`
}

// ProviderConfig names one generation backend; Data is handed to the
// provider factory as-is.
type ProviderConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Data     interface{} `json:"data"`
}

type AIConfig struct {
	ProviderConfig
	Timeout        int              `json:"timeout"`
	StreamTimeout  int              `json:"stream_timeout"`
	FragmentBuffer int              `json:"fragment_buffer"`
	Fallbacks      []ProviderConfig `json:"fallbacks"`
	MindMapFormat  string           `json:"mindmap_format"`
	ScopePolicy    string           `json:"scope_policy"`
}

type SweepConfig struct {
	Cron          string `json:"cron"`
	MaxAgeSeconds int    `json:"max_age_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	if cfg.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Data.SubjectsFile == "" {
		return fmt.Errorf("data.subjects_file is required")
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 60
	}
	if cfg.AI.StreamTimeout == 0 {
		cfg.AI.StreamTimeout = 300
	}
	for i, fb := range cfg.AI.Fallbacks {
		if fb.Provider == "" {
			return fmt.Errorf("ai.fallbacks[%d].provider is required", i)
		}
	}
	switch model.MindMapKind(strings.ToLower(cfg.AI.MindMapFormat)) {
	case "":
		cfg.AI.MindMapFormat = string(model.MindMapDiagram)
	case model.MindMapDiagram, model.MindMapTree:
		cfg.AI.MindMapFormat = strings.ToLower(cfg.AI.MindMapFormat)
	default:
		return fmt.Errorf("ai.mindmap_format must be diagram or tree")
	}
	policy, err := curriculum.ParsePolicy(cfg.AI.ScopePolicy)
	if err != nil {
		return fmt.Errorf("ai.scope_policy: %w", err)
	}
	cfg.AI.ScopePolicy = string(policy)

	switch strings.ToLower(cfg.GenCache.Type) {
	case "", "none":
		cfg.GenCache.Type = "none"
	case "lru":
		if cfg.GenCache.Size <= 0 {
			cfg.GenCache.Size = 1000
		}
	case "redis":
		if cfg.GenCache.RedisURL == "" {
			return fmt.Errorf("gen_cache.redis_url is required for redis cache")
		}
	default:
		return fmt.Errorf("gen_cache.type must be none, lru or redis")
	}
	if cfg.GenCache.TTLSeconds <= 0 {
		cfg.GenCache.TTLSeconds = 3600
	}

	if cfg.Rasterizer.Type == "" {
		cfg.Rasterizer.Type = "chrome"
	}
	if cfg.Staging.Type == "" {
		cfg.Staging.Type = "local"
	}
	if cfg.Staging.Type == "local" && cfg.Staging.Data == nil {
		cfg.Staging.Data = map[string]interface{}{"dir": filepath.Join(os.TempDir(), "examprep-staging")}
	}
	if cfg.StagingSweep.Cron == "" {
		cfg.StagingSweep.Cron = "*/10 * * * *"
	}
	if cfg.StagingSweep.MaxAgeSeconds <= 0 {
		cfg.StagingSweep.MaxAgeSeconds = 3600
	}
	if cfg.RateLimitMs < 0 {
		return fmt.Errorf("rate_limit_ms must not be negative")
	}
	return nil
}
