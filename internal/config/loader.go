package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	kenv "github.com/knadh/koanf/providers/env"
	kfile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// PathEnv names the variable that overrides the config file location.
	PathEnv     = "PINECONE_CONFIG_PATH"
	defaultPath = "pinecone.yaml"
	envPrefix   = "PINECONE__"
	rootKey     = "pinecone"
)

// ProviderConfig is the file/env form of the provider settings.
type ProviderConfig struct {
	BaseURL string `koanf:"base_url"`
	// Deprecated: use BaseURL.
	BaseUrl        string            `koanf:"baseurl"`
	APIKey         string            `koanf:"api_key"`
	AssistantName  string            `koanf:"assistant_name"`
	Headers        map[string]string `koanf:"headers"`
	TimeoutSeconds int               `koanf:"timeout_seconds"`
}

var (
	loadOnce sync.Once
	loaded   *ProviderConfig
	loadErr  error
)

// Load loads configuration from the default locations. Load is safe for repeated calls.
//
// Priority:
// 1. PINECONE_CONFIG_PATH if set (the file must exist)
// 2. ./pinecone.yaml (optional)
//
// A ./.env file is read first; it never overrides variables already set.
// PINECONE__<KEY> variables override file values, e.g. PINECONE__BASE_URL.
func Load() (*ProviderConfig, error) {
	loadOnce.Do(func() {
		if err := loadDotEnv(".env"); err != nil {
			loadErr = err
			return
		}
		path, required := os.Getenv(PathEnv), true
		if path == "" {
			path, required = defaultPath, false
		}
		loaded, loadErr = load(path, required)
	})
	return loaded, loadErr
}

// LoadFile loads path plus environment overrides without caching.
func LoadFile(path string) (*ProviderConfig, error) {
	return load(path, true)
}

func load(path string, required bool) (*ProviderConfig, error) {
	k := koanf.New(".")

	if err := k.Load(kfile.Provider(path), yaml.Parser()); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	// Double underscore splits levels: PINECONE__HEADERS__X_TRACE -> pinecone.headers.x_trace
	if err := k.Load(kenv.Provider(envPrefix, "__", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg ProviderConfig
	if err := k.Unmarshal(rootKey, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", rootKey, err)
	}
	resolveEnvVars(&cfg)
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// resolveEnvVars resolves ${VAR} patterns in config string fields
func resolveEnvVars(cfg *ProviderConfig) {
	cfg.BaseURL = resolveEnvString(cfg.BaseURL)
	cfg.BaseUrl = resolveEnvString(cfg.BaseUrl)
	cfg.APIKey = resolveEnvString(cfg.APIKey)
	cfg.AssistantName = resolveEnvString(cfg.AssistantName)
	for k, v := range cfg.Headers {
		cfg.Headers[k] = resolveEnvString(v)
	}
}

// resolveEnvString replaces ${VAR} with the variable's value, or "" when unset.
func resolveEnvString(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}
