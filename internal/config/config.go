package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the lexedge API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
	Storage StorageConfig `yaml:"storage"`
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CacheConfig holds Redis cache settings. The cache is an accelerator,
// not a store of record: TTLs bound staleness after an asset republish.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	IndexTTLSec      int      `yaml:"index_ttl_sec"`
	DetailTTLSec     int      `yaml:"detail_ttl_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// StorageConfig holds R2 object-store settings. AccessKeyID and
// SecretAccessKey are normally injected via ${R2_ACCESS_KEY_ID} /
// ${R2_SECRET_ACCESS_KEY} expansion.
type StorageConfig struct {
	AccountID       string `yaml:"account_id"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"` // overrides the R2 endpoint (tests, MinIO)
	DataBucket      string `yaml:"data_bucket"`
	AudioBucket     string `yaml:"audio_bucket"`
	DetailsPrefix   string `yaml:"details_prefix"`
	IndexKey        string `yaml:"index_key"`
	SearchIndexKey  string `yaml:"search_index_key"`
	SentenceAudio   string `yaml:"sentence_audio_prefix"`
}

// APIConfig holds pagination and quiz limits.
type APIConfig struct {
	DefaultPageSize  int `yaml:"default_page_size"`
	MaxPageSize      int `yaml:"max_page_size"`
	QuizDefaultCount int `yaml:"quiz_default_count"`
	QuizMaxCount     int `yaml:"quiz_max_count"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Cache.IndexTTLSec <= 0 {
		c.Cache.IndexTTLSec = 3600
	}
	if c.Cache.DetailTTLSec <= 0 {
		c.Cache.DetailTTLSec = 86400
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "lexedge:"
	}
	if c.Storage.DataBucket == "" {
		c.Storage.DataBucket = "vocab-data"
	}
	if c.Storage.AudioBucket == "" {
		c.Storage.AudioBucket = "vocab-audio"
	}
	if c.Storage.DetailsPrefix == "" {
		c.Storage.DetailsPrefix = "vocab_details/"
	}
	if c.Storage.IndexKey == "" {
		c.Storage.IndexKey = "vocab_index.json"
	}
	if c.Storage.SearchIndexKey == "" {
		c.Storage.SearchIndexKey = "search_index.json"
	}
	if c.Storage.SentenceAudio == "" {
		c.Storage.SentenceAudio = "sentences/"
	}
	if c.API.DefaultPageSize <= 0 {
		c.API.DefaultPageSize = 50
	}
	if c.API.MaxPageSize <= 0 {
		c.API.MaxPageSize = 200
	}
	if c.API.QuizDefaultCount <= 0 {
		c.API.QuizDefaultCount = 10
	}
	if c.API.QuizMaxCount <= 0 {
		c.API.QuizMaxCount = 50
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required")
	}
	if c.Storage.AccountID == "" && c.Storage.Endpoint == "" {
		return fmt.Errorf("storage.account_id or storage.endpoint is required")
	}
	if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
		return fmt.Errorf("storage.access_key_id and storage.secret_access_key are required")
	}
	if !strings.HasSuffix(c.Storage.DetailsPrefix, "/") {
		return fmt.Errorf("storage.details_prefix must end with \"/\", got %q", c.Storage.DetailsPrefix)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf(
			"api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
