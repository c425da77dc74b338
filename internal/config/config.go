package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"issuegrip/internal/domain"
)

// Backend names
const (
	BackendProxy  = "proxy"
	BackendGitHub = "github"
)

// Config represents the application configuration
type Config struct {
	Version         int           `toml:"version" yaml:"version"`
	Backend         string        `toml:"backend" yaml:"backend"`
	Endpoint        string        `toml:"endpoint" yaml:"endpoint"`
	Preset          string        `toml:"preset,omitempty" yaml:"preset,omitempty"`
	RawDebounce     string        `toml:"debounce" yaml:"debounce"`
	Debounce        time.Duration `toml:"-" yaml:"-"`
	MaxResults      int           `toml:"max_results" yaml:"max_results"`
	ShowFilterPanel bool          `toml:"show_filter_panel" yaml:"show_filter_panel"`
	RawTimeout      string        `toml:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`
	RequestTimeout  time.Duration `toml:"-" yaml:"-"`
	GitHub          GitHubConfig  `toml:"github" yaml:"github"`
	HTTP            HTTPConfig    `toml:"http" yaml:"http"`
	Filters         FilterConfig  `toml:"filters" yaml:"filters"`
	Log             LogConfig     `toml:"log" yaml:"log"`
	Metrics         MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// GitHubConfig configures the direct GitHub search backend
type GitHubConfig struct {
	Repo  string `toml:"repo,omitempty" yaml:"repo,omitempty"` // owner/name
	Token string `toml:"token,omitempty" yaml:"token,omitempty"`
}

// HTTPConfig tunes the outgoing HTTP client
type HTTPConfig struct {
	RateLimit      float64       `toml:"rate_limit" yaml:"rate_limit"` // requests per second
	RateBurst      int           `toml:"rate_burst" yaml:"rate_burst"`
	CacheSizeBytes int64         `toml:"cache_size_bytes" yaml:"cache_size_bytes"`
	RawCacheMaxAge string        `toml:"cache_max_age" yaml:"cache_max_age"`
	CacheMaxAge    time.Duration `toml:"-" yaml:"-"`
}

// FilterConfig holds the initial filter panel values
type FilterConfig struct {
	State  string `toml:"state" yaml:"state"`
	Labels string `toml:"labels" yaml:"labels"`
	Limit  int    `toml:"limit" yaml:"limit"`
}

// LogConfig configures the log file
type LogConfig struct {
	File  string `toml:"file,omitempty" yaml:"file,omitempty"`
	Level string `toml:"level" yaml:"level"`
}

// MetricsConfig configures the optional Prometheus endpoint
type MetricsConfig struct {
	Addr string `toml:"addr,omitempty" yaml:"addr,omitempty"`
}

// Preset bundles the widget variants: debounce, result cap and filter panel
type Preset struct {
	Debounce        time.Duration
	MaxResults      int
	ShowFilterPanel bool
}

// Presets are the named widget variants
var Presets = map[string]Preset{
	"instant":  {Debounce: 0, MaxResults: 5},
	"filtered": {Debounce: 350 * time.Millisecond, ShowFilterPanel: true},
	"slow":     {Debounce: 3 * time.Second},
}

// FilterState returns the configured initial filters
func (c *Config) FilterState() domain.FilterState {
	return domain.FilterState{
		State:  domain.IssueState(c.Filters.State),
		Labels: c.Filters.Labels,
		Limit:  c.Filters.Limit,
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "issuegrip", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch formatOf(path) {
	case "yaml":
		data, err = yaml.Marshal(config)
	default:
		data, err = toml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold a GitHub token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes raw config data in the given format ("toml" or "yaml"),
// applies defaults and validates the result
func Parse(data []byte, format string) (*Config, error) {
	var cfg Config
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &cfg)
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// ApplyDefaults fills unset fields and parses the duration strings
func (c *Config) ApplyDefaults() error {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Backend == "" {
		c.Backend = BackendProxy
	}
	if c.Endpoint == "" && c.Backend == BackendProxy {
		c.Endpoint = "http://localhost:3002"
	}

	if c.Preset != "" {
		p, ok := Presets[c.Preset]
		if !ok {
			return fmt.Errorf("unknown preset %q", c.Preset)
		}
		if c.RawDebounce == "" {
			c.RawDebounce = p.Debounce.String()
		}
		if c.MaxResults == 0 {
			c.MaxResults = p.MaxResults
		}
		c.ShowFilterPanel = c.ShowFilterPanel || p.ShowFilterPanel
	}

	if c.RawDebounce == "" {
		c.RawDebounce = "350ms"
	}
	d, err := time.ParseDuration(c.RawDebounce)
	if err != nil {
		return fmt.Errorf("parse debounce %q: %w", c.RawDebounce, err)
	}
	c.Debounce = d

	if c.RawTimeout != "" {
		t, err := time.ParseDuration(c.RawTimeout)
		if err != nil {
			return fmt.Errorf("parse request_timeout %q: %w", c.RawTimeout, err)
		}
		c.RequestTimeout = t
	}

	if c.HTTP.RateLimit == 0 {
		c.HTTP.RateLimit = 10
	}
	if c.HTTP.RateBurst == 0 {
		c.HTTP.RateBurst = 5
	}
	if c.HTTP.CacheSizeBytes == 0 {
		c.HTTP.CacheSizeBytes = 10 << 20
	}
	if c.HTTP.RawCacheMaxAge == "" {
		c.HTTP.RawCacheMaxAge = "5m"
	}
	age, err := time.ParseDuration(c.HTTP.RawCacheMaxAge)
	if err != nil {
		return fmt.Errorf("parse http.cache_max_age %q: %w", c.HTTP.RawCacheMaxAge, err)
	}
	c.HTTP.CacheMaxAge = age

	if c.Filters.State == "" {
		c.Filters.State = string(domain.IssueOpen)
	}
	if c.Filters.Limit == 0 {
		c.Filters.Limit = domain.DefaultFilterState().Limit
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = defaultLogFile()
	}
	return nil
}

// GitHubToken returns the configured token, falling back to
// ISSUEGRIP_GITHUB_TOKEN. The environment value never lands in the config,
// so Save does not persist it.
func (c *Config) GitHubToken() string {
	if c.GitHub.Token != "" {
		return c.GitHub.Token
	}
	return os.Getenv("ISSUEGRIP_GITHUB_TOKEN")
}

// Validate checks the configuration for values the widget cannot run with
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendProxy:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint required for the %s backend", BackendProxy)
		}
	case BackendGitHub:
		if c.GitHub.Repo != "" && strings.Count(c.GitHub.Repo, "/") != 1 {
			return fmt.Errorf("github.repo must be owner/name, got %q", c.GitHub.Repo)
		}
	default:
		return fmt.Errorf("invalid backend %q (%s|%s)", c.Backend, BackendProxy, BackendGitHub)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.RawDebounce)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RawTimeout)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must not be negative, got %d", c.MaxResults)
	}
	if !domain.IssueState(c.Filters.State).Valid() {
		return fmt.Errorf("filters.state must be open or closed, got %q", c.Filters.State)
	}
	if c.Filters.Limit < 1 {
		return fmt.Errorf("filters.limit must be at least 1, got %d", c.Filters.Limit)
	}
	if c.HTTP.RateLimit < 0 || c.HTTP.RateBurst < 1 {
		return fmt.Errorf("http.rate_limit must not be negative and http.rate_burst must be positive")
	}
	return nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "issuegrip.log"
	}
	return filepath.Join(dir, "issuegrip", "issuegrip.log")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Preset: "filtered",
	}
	// Defaults over an empty config cannot fail
	_ = cfg.ApplyDefaults()
	return cfg
}
