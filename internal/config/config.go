package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double underscore:
// SITE_SERVER__ADDR -> server.addr.
const EnvPrefix = "SITE_"

const (
	defaultAddr           = ":8080"
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultHandlerTimeout = 30 * time.Second
	defaultShutdown       = 10 * time.Second
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Env    string       `koanf:"env"`
	Log    LogConfig    `koanf:"log"`
	Server ServerConfig `koanf:"server"`
	Site   SiteConfig   `koanf:"site"`
	Routes RouteConfig  `koanf:"routes"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `koanf:"level"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	HandlerTimeout  time.Duration `koanf:"handler_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SiteConfig holds values surfaced to templates and SEO metadata.
type SiteConfig struct {
	Name    string `koanf:"name"`
	BaseURL string `koanf:"base_url"`
	// Dev reparses templates from disk on each request.
	Dev          bool   `koanf:"dev"`
	TemplatesDir string `koanf:"templates_dir"`
}

// RouteConfig names the prefixes the locale router never handles.
type RouteConfig struct {
	APIPrefix      string `koanf:"api_prefix"`
	InternalPrefix string `koanf:"internal_prefix"`
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() *Config {
	return &Config{
		Env: "local",
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:            defaultAddr,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			HandlerTimeout:  defaultHandlerTimeout,
			ShutdownTimeout: defaultShutdown,
		},
		Site: SiteConfig{
			Name:         "Twelve Principles",
			BaseURL:      "http://localhost:8080",
			TemplatesDir: "templates",
		},
		Routes: RouteConfig{
			APIPrefix:      "/api",
			InternalPrefix: "/_site",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays SITE_*
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// IsProd reports whether cookies should be marked Secure.
func (c *Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod")
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var fields []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		fields = append(fields, "server.addr")
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.handler_timeout":  c.Server.HandlerTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			fields = append(fields, name)
		}
	}
	if !validPrefix(c.Routes.APIPrefix) {
		fields = append(fields, "routes.api_prefix")
	}
	if !validPrefix(c.Routes.InternalPrefix) {
		fields = append(fields, "routes.internal_prefix")
	}
	if strings.TrimSpace(c.Site.Name) == "" {
		fields = append(fields, "site.name")
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	return &ValidationError{fields: fields}
}

// validPrefix requires a rooted prefix that is neither "/" nor a locale segment.
func validPrefix(p string) bool {
	if len(p) < 2 || p[0] != '/' || strings.HasSuffix(p, "/") {
		return false
	}
	switch p {
	case "/en", "/zh":
		return false
	}
	return true
}
