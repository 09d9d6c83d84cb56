package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:  HTTPConfig{Port: 8080},
		Cache: CacheConfig{Addrs: []string{"localhost:6379"}},
		Storage: StorageConfig{
			AccountID:       "acc",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			DetailsPrefix:   "vocab_details/",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingCacheAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing cache addrs")
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.SecretAccessKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestValidate_EndpointWithoutAccountID(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.AccountID = ""
	cfg.Storage.Endpoint = "http://localhost:9000"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DetailsPrefixMissingSlash(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DetailsPrefix = "vocab_details"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for prefix without trailing slash")
	}
	if !strings.Contains(err.Error(), "details_prefix") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidate_PageSizeOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.API.DefaultPageSize = 100
	cfg.API.MaxPageSize = 50

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max_page_size < default_page_size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Cache.KeyPrefix != "lexedge:" {
		t.Errorf("unexpected key prefix: %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Storage.DataBucket != "vocab-data" {
		t.Errorf("unexpected data bucket: %q", cfg.Storage.DataBucket)
	}
	if cfg.Storage.IndexKey != "vocab_index.json" {
		t.Errorf("unexpected index key: %q", cfg.Storage.IndexKey)
	}
	if cfg.Cache.IndexTTLSec != 3600 || cfg.Cache.DetailTTLSec != 86400 {
		t.Errorf("unexpected TTL defaults: %d/%d", cfg.Cache.IndexTTLSec, cfg.Cache.DetailTTLSec)
	}
	if cfg.API.QuizDefaultCount != 10 {
		t.Errorf("unexpected quiz default: %d", cfg.API.QuizDefaultCount)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LEXEDGE_TEST_SECRET", "s3cr3t")

	in := []byte("secret_access_key: ${LEXEDGE_TEST_SECRET}\nport: ${LEXEDGE_TEST_PORT:-8080}\n")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "s3cr3t") {
		t.Errorf("env var not expanded: %s", out)
	}
	if !strings.Contains(out, "8080") {
		t.Errorf("default not applied: %s", out)
	}
}
