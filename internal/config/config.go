package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/recipes/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "recipes.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultEdamamURL is the base URL of the recipe search API.
	DefaultEdamamURL = "https://api.edamam.com"

	// DefaultTimeout bounds one request to the recipe search API.
	DefaultTimeout = "10s"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "5s"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// Config represents recipes.json.
type Config struct {
	// Name is the application name shown in page titles and logs.
	Name string `json:"name,omitempty"`

	Server  ServerConfig  `json:"server"`
	Edamam  EdamamConfig  `json:"edamam"`
	Metrics MetricsConfig `json:"metrics"`
	Log     LogConfig     `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `json:"port,omitempty"`
	Host string `json:"host,omitempty"`

	// URLMode is how search changes reach the browser history: "replace"
	// (default) or "push".
	URLMode string `json:"urlMode,omitempty"`

	// ShutdownTimeout is a Go duration string.
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// EdamamConfig contains recipe search API settings.
type EdamamConfig struct {
	BaseURL string `json:"baseUrl,omitempty"`
	AppID   string `json:"appId,omitempty"`
	AppKey  string `json:"appKey,omitempty"`

	// Timeout is a Go duration string.
	Timeout string `json:"timeout,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled is a pointer so an absent field keeps the default of true.
	Enabled *bool  `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{Name: "recipes"}
	c.applyDefaults()
	return c
}

// Load reads configuration from recipes.json in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No recipes.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'recipes init' to create one")
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse recipes.json: " + err.Error()).
			WithSuggestion("Check that recipes.json is valid JSON")
	}
	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E102").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.New("E102").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "recipes"
	}

	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.URLMode == "" {
		c.Server.URLMode = "replace"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Edamam.BaseURL == "" {
		c.Edamam.BaseURL = DefaultEdamamURL
	}
	if c.Edamam.Timeout == "" {
		c.Edamam.Timeout = DefaultTimeout
	}

	if c.Metrics.Enabled == nil {
		on := true
		c.Metrics.Enabled = &on
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ApplyEnv overrides fields from the environment. getenv is usually
// os.Getenv. An unparsable RECIPES_PORT is kept so Validate reports it.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("EDAMAM_APP_ID"); v != "" {
		c.Edamam.AppID = v
	}
	if v := getenv("EDAMAM_APP_KEY"); v != "" {
		c.Edamam.AppKey = v
	}
	if v := getenv("RECIPES_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			port = -1
		}
		c.Server.Port = port
	}
}

// Validate checks the configuration. It does not require Edamam
// credentials; see RequireCredentials.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E103").
			WithDetailf("Port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if _, err := parsePositive(c.Edamam.Timeout); err != nil {
		return errors.New("E105").Wrap(err)
	}
	if _, err := parsePositive(c.Server.ShutdownTimeout); err != nil {
		return errors.New("E105").
			WithDetail("server.shutdownTimeout must be a positive duration such as \"5s\".").
			Wrap(err)
	}
	u, err := url.Parse(c.Edamam.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("E106").
			WithDetailf("edamam.baseUrl %q is not an absolute http or https URL", c.Edamam.BaseURL)
	}
	switch c.Server.URLMode {
	case "push", "replace":
	default:
		return errors.Newf(errors.CategoryConfig, "server.urlMode must be \"push\" or \"replace\", got %q", c.Server.URLMode)
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.Newf(errors.CategoryConfig, "log.level: %v", err)
	}
	return nil
}

// RequireCredentials reports E104 when the Edamam app id or key is missing.
func (c *Config) RequireCredentials() error {
	if c.Edamam.AppID == "" || c.Edamam.AppKey == "" {
		return errors.New("E104").
			WithSuggestion("Set EDAMAM_APP_ID and EDAMAM_APP_KEY, or edamam.appId and edamam.appKey in recipes.json")
	}
	return nil
}

// Address returns host:port for the HTTP server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// RequestTimeout returns the parsed Edamam timeout, or the default when it
// does not parse.
func (c *Config) RequestTimeout() time.Duration {
	if d, err := parsePositive(c.Edamam.Timeout); err == nil {
		return d
	}
	d, _ := time.ParseDuration(DefaultTimeout)
	return d
}

// ShutdownTimeout returns the parsed shutdown timeout, or the default.
func (c *Config) ShutdownTimeout() time.Duration {
	if d, err := parsePositive(c.Server.ShutdownTimeout); err == nil {
		return d
	}
	d, _ := time.ParseDuration(DefaultShutdownTimeout)
	return d
}

// MetricsEnabled reports whether /metrics is served.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.ToLower(c.Log.Level)))
	return l, err
}

func parsePositive(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.Newf(errors.CategoryConfig, "duration %q is not positive", s)
	}
	return d, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory containing
// recipes.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E101").
				WithDetail("No recipes.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'recipes init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest recipes.json at or above the working
// directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
