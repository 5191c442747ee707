// Package config loads entigraph configuration from environment variables,
// an optional .env file and an optional TOML file.
//
// Precedence, highest first: process environment, .env file (never
// overriding variables already set), TOML file, built-in defaults.
// Credentials are only read from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/entigraph/internal/adapters/driven/config/file"
	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

// Global environment variables.
const (
	EnvEnvironments       = "ENVIRONMENTS"
	EnvRelativeTime       = "RELATIVE_TIME"
	EnvProcessFields      = "PROCESS_FIELDS"
	EnvProcessGroupFields = "PROCESS_GROUP_FIELDS"
	EnvHostFields         = "HOST_FIELDS"
	EnvPageSize           = "PAGE_SIZE"
	EnvMaxPages           = "MAX_PAGES"
	EnvRequestsPerSecond  = "REQUESTS_PER_SECOND"
	EnvOutputDir          = "OUTPUT_DIR"
)

// Per-environment variable suffixes, read as <PREFIX>_<SUFFIX>.
const (
	SuffixName         = "NAME"
	SuffixBaseURL      = "BASE_URL"
	SuffixAPIToken     = "API_TOKEN"
	SuffixAuthURL      = "AUTH_URL"
	SuffixClientID     = "AUTH_CLIENT_ID"
	SuffixClientSecret = "AUTH_CLIENT_SECRET"
	SuffixScope        = "AUTH_SCOPE"
	SuffixResource     = "AUTH_RESOURCE"
	SuffixAudience     = "AUTH_AUDIENCE"
)

// TOML keys.
const (
	KeyEnvironments       = "environments"
	KeyRelativeTime       = "relative_time"
	KeyPageSize           = "page_size"
	KeyMaxPages           = "max_pages"
	KeyRequestsPerSecond  = "requests_per_second"
	KeyOutputDir          = "output_dir"
	KeyProcessFields      = "fields.process"
	KeyProcessGroupFields = "fields.process_group"
	KeyHostFields         = "fields.host"
)

// Defaults.
const (
	DefaultRelativeTime = "now-1h"
	DefaultPageSize     = 50
	DefaultMaxPages     = 1000
	DefaultOutputDir    = "."
	DefaultEnvFile      = ".env"
)

// DefaultEnvironments returns the environment prefixes used when none are configured.
func DefaultEnvironments() []string {
	return []string{"PA", "PROD"}
}

// LookupFunc reads a variable, reporting whether it is set.
type LookupFunc func(key string) (string, bool)

// Config is the resolved application configuration.
type Config struct {
	// EnvironmentNames are the configured environment prefixes, in order.
	EnvironmentNames []string

	// Settings are the collection settings shared by every environment.
	Settings domain.CollectSettings

	// OutputDir is where snapshots and topology files are written.
	OutputDir string

	// ConfigFile is the TOML file that was read, if any.
	ConfigFile string

	lookup LookupFunc
}

// Load reads .env and the TOML config file, then resolves the configuration
// from the process environment. An empty envFile means ./.env, which may be
// absent; an explicit envFile must exist. An empty configPath reads
// ~/.entigraph/config.toml when present; an explicit path must exist.
func Load(configPath, envFile string) (*Config, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	store, err := openConfigStore(configPath)
	if err != nil {
		return nil, err
	}

	return FromLookup(os.LookupEnv, store)
}

// LoadDotEnv loads variables from a dotenv file without overriding
// variables that are already set.
func LoadDotEnv(path string) error {
	required := path != ""
	if !required {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func openConfigStore(path string) (driven.ConfigStore, error) {
	if path == "" {
		defaultPath, err := file.DefaultPath()
		if err != nil {
			return nil, nil
		}
		store, err := file.NewConfigStore(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		if !store.Exists() {
			return nil, nil
		}
		return store, nil
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		return nil, fmt.Errorf("load config file: %w", err)
	}
	if !store.Exists() {
		return nil, fmt.Errorf("%w: config file %s", domain.ErrNotFound, path)
	}
	return store, nil
}

// FromLookup resolves the configuration from lookup, falling back to store
// (which may be nil) and then to defaults.
func FromLookup(lookup LookupFunc, store driven.ConfigStore) (*Config, error) {
	r := resolver{lookup: lookup, store: store}

	pageSize, err := r.intValue(EnvPageSize, KeyPageSize, DefaultPageSize)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", domain.ErrInvalidInput, EnvPageSize, pageSize)
	}

	maxPages, err := r.intValue(EnvMaxPages, KeyMaxPages, DefaultMaxPages)
	if err != nil {
		return nil, err
	}
	if maxPages < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative, got %d", domain.ErrInvalidInput, EnvMaxPages, maxPages)
	}

	rps, err := r.floatValue(EnvRequestsPerSecond, KeyRequestsPerSecond, 0)
	if err != nil {
		return nil, err
	}
	if rps < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative, got %g", domain.ErrInvalidInput, EnvRequestsPerSecond, rps)
	}

	cfg := &Config{
		EnvironmentNames: r.listValue(EnvEnvironments, KeyEnvironments, DefaultEnvironments()),
		Settings: domain.CollectSettings{
			RelativeTime: r.stringValue(EnvRelativeTime, KeyRelativeTime, DefaultRelativeTime),
			PageSize:     pageSize,
			Fields: map[domain.EntityType]string{
				domain.EntityProcess:      r.stringValue(EnvProcessFields, KeyProcessFields, domain.DefaultFields),
				domain.EntityProcessGroup: r.stringValue(EnvProcessGroupFields, KeyProcessGroupFields, domain.DefaultFields),
				domain.EntityHost:         r.stringValue(EnvHostFields, KeyHostFields, domain.DefaultFields),
			},
			MaxPages:          maxPages,
			RequestsPerSecond: rps,
		},
		OutputDir: r.stringValue(EnvOutputDir, KeyOutputDir, DefaultOutputDir),
		lookup:    lookup,
	}
	if store != nil {
		cfg.ConfigFile = store.Path()
	}
	return cfg, nil
}

// Environments resolves every configured environment. All missing
// variables are reported together.
func (c *Config) Environments() ([]domain.Environment, error) {
	envs := make([]domain.Environment, 0, len(c.EnvironmentNames))
	var missing []string

	for _, prefix := range c.EnvironmentNames {
		env, envMissing := c.environment(prefix)
		missing = append(missing, envMissing...)
		envs = append(envs, env)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s must be configured in the environment",
			domain.ErrMissingConfig, strings.Join(missing, ", "))
	}
	return envs, nil
}

func (c *Config) environment(prefix string) (domain.Environment, []string) {
	var missing []string
	get := func(suffix string) string {
		v, _ := c.lookup(prefix + "_" + suffix)
		return strings.TrimSpace(v)
	}
	require := func(suffix string) string {
		v := get(suffix)
		if v == "" {
			missing = append(missing, prefix+"_"+suffix)
		}
		return v
	}

	env := domain.Environment{
		Name:    get(SuffixName),
		BaseURL: require(SuffixBaseURL),
	}
	if env.Name == "" {
		env.Name = prefix
	}

	if token := get(SuffixAPIToken); token != "" {
		env.Auth = domain.AuthSettings{
			Method:   domain.AuthMethodStatic,
			APIToken: token,
		}
		return env, missing
	}

	env.Auth = domain.AuthSettings{
		Method:       domain.AuthMethodOAuth,
		TokenURL:     require(SuffixAuthURL),
		ClientID:     require(SuffixClientID),
		ClientSecret: require(SuffixClientSecret),
		Scope:        get(SuffixScope),
		Resource:     get(SuffixResource),
		Audience:     get(SuffixAudience),
	}
	return env, missing
}

// resolver reads a value from the environment, then the config store.
type resolver struct {
	lookup LookupFunc
	store  driven.ConfigStore
}

func (r resolver) env(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r resolver) fileValue(key string) (any, bool) {
	if r.store == nil {
		return nil, false
	}
	return r.store.Get(key)
}

func (r resolver) stringValue(envKey, fileKey, def string) string {
	if v, ok := r.env(envKey); ok {
		return v
	}
	if _, ok := r.fileValue(fileKey); ok {
		if v := r.store.GetString(fileKey); v != "" {
			return v
		}
	}
	return def
}

func (r resolver) intValue(envKey, fileKey string, def int) (int, error) {
	if v, ok := r.env(envKey); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s has invalid integer %q", domain.ErrInvalidInput, envKey, v)
		}
		return n, nil
	}
	if raw, ok := r.fileValue(fileKey); ok {
		switch raw.(type) {
		case int, int64:
			return r.store.GetInt(fileKey), nil
		default:
			return 0, fmt.Errorf("%w: %s in config file must be an integer", domain.ErrInvalidInput, fileKey)
		}
	}
	return def, nil
}

func (r resolver) floatValue(envKey, fileKey string, def float64) (float64, error) {
	if v, ok := r.env(envKey); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s has invalid number %q", domain.ErrInvalidInput, envKey, v)
		}
		return f, nil
	}
	if raw, ok := r.fileValue(fileKey); ok {
		switch raw.(type) {
		case int, int64, float64:
			return r.store.GetFloat(fileKey), nil
		default:
			return 0, fmt.Errorf("%w: %s in config file must be a number", domain.ErrInvalidInput, fileKey)
		}
	}
	return def, nil
}

func (r resolver) listValue(envKey, fileKey string, def []string) []string {
	var values []string
	if v, ok := r.env(envKey); ok {
		values = strings.Split(v, ",")
	} else if _, ok := r.fileValue(fileKey); ok {
		values = r.store.GetStringSlice(fileKey)
	}

	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
