// Package config loads productdesk settings from built-in defaults, a YAML
// file, a .env file and the environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from environment variables, e.g. PRODUCTDESK_API_BASEURL.
	EnvPrefix = "PRODUCTDESK_"
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile    = "productdesk.yaml"
	defaultEnvFile = ".env"
)

// Config is the full application configuration.
type Config struct {
	API struct {
		BaseURL string        `koanf:"baseurl" validate:"required,url"`
		Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
	} `koanf:"api"`

	Log struct {
		Level string `koanf:"level" validate:"oneof=debug info warn error"`
		File  string `koanf:"file" validate:"required"`
	} `koanf:"log"`

	Telemetry struct {
		Endpoint    string `koanf:"endpoint"`
		ServiceName string `koanf:"servicename" validate:"required"`
		Insecure    bool   `koanf:"insecure"`
	} `koanf:"telemetry"`

	MockAPI struct {
		Addr string `koanf:"addr" validate:"required"`
	} `koanf:"mockapi"`
}

func (c Config) String() string {
	endpoint := c.Telemetry.Endpoint
	if endpoint == "" {
		endpoint = "<disabled>"
	}
	return fmt.Sprintf("api.baseUrl=%s, api.timeout=%v, log.level=%s, log.file=%s, telemetry.endpoint=%s, telemetry.serviceName=%s, mockapi.addr=%s",
		c.API.BaseURL,
		c.API.Timeout,
		c.Log.Level,
		c.Log.File,
		endpoint,
		c.Telemetry.ServiceName,
		c.MockAPI.Addr)
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// Defaults returns the built-in values, flattened with "." as in koanf keys.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"api.baseurl":           "http://localhost:8080",
		"api.timeout":           "10s",
		"log.level":             "info",
		"log.file":              "productdesk.log",
		"telemetry.endpoint":    "",
		"telemetry.servicename": "productdesk",
		"telemetry.insecure":    false,
		"mockapi.addr":          ":8080",
	}
}

// Options controls where Load looks. Empty fields use the defaults.
type Options struct {
	File    string // YAML config path; DefaultFile when empty
	EnvFile string // dotenv path; ".env" when empty
}

// Load builds a Config. Missing files are skipped; malformed ones are errors.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. YAML file
	path := opts.File
	if path == "" {
		path = DefaultFile
	}
	if err := loadLowercased(k, file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	// 3. .env file
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if envFileMap, err := godotenv.Read(envFile); err == nil {
		envMap := make(map[string]interface{})
		for key, value := range envFileMap {
			if !hasEnvPrefix(key) {
				continue
			}
			envMap[keyTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	// 4. Environment, highest priority
	if err := k.Load(env.Provider(EnvPrefix, ".", keyTransformer), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadDefault loads from the working directory and the process environment.
func LoadDefault() (*Config, error) {
	return Load(Options{})
}

// loadLowercased loads p into k with every key lowercased, so "api.baseUrl"
// in YAML and "api.baseurl" from the environment address the same setting.
func loadLowercased(k *koanf.Koanf, p koanf.Provider, pa koanf.Parser) error {
	tmp := koanf.New(".")
	if err := tmp.Load(p, pa); err != nil {
		return err
	}
	lowered := make(map[string]interface{})
	for key, value := range tmp.All() {
		lowered[strings.ToLower(key)] = value
	}
	return k.Load(confmap.Provider(lowered, "."), nil)
}

func hasEnvPrefix(key string) bool {
	return strings.HasPrefix(strings.ToUpper(key), EnvPrefix)
}

// keyTransformer maps PRODUCTDESK_API_BASEURL to api.baseurl.
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(key, "_", ".")
}
