package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/project-labs/project/internal/branding"
	"github.com/project-labs/project/internal/document"
	"github.com/project-labs/project/internal/errdefs"
	"github.com/spf13/viper"
)

// Keys understood by the config file.
const (
	KeyTemplatePath = "templatePath"
	KeyStrategy     = "strategy"
)

const fileType = "json"

// DefaultPath returns the config file path: $PROJECT_CONFIG if set, else
// ~/.config/project/config.json.
func DefaultPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("CONFIG")); v != "" {
		return ExpandPath(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, filepath.FromSlash(branding.ConfigDir()), branding.ConfigFile()), nil
}

// Config is a loaded configuration file plus its environment overlay.
type Config struct {
	v    *viper.Viper
	path string
}

// Load reads the config file at path. A missing file is created as "{}"
// along with its directory; a malformed file is an error.
func Load(path string) (*Config, error) {
	if err := bootstrap(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.IO("reading config", path, err)
	}
	if _, err := document.Parse(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyStrategy, string(document.DefaultStrategy))

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: config file %s: %v", errdefs.ErrParse, path, err)
	}

	return &Config{v: v, path: path}, nil
}

func bootstrap(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return errdefs.IO("stat", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errdefs.IO("creating config directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		return errdefs.IO("creating config file", path, err)
	}
	return nil
}

// Path returns the config file location.
func (c *Config) Path() string { return c.path }

// Viper exposes the underlying instance so commands can bind flags to keys.
func (c *Config) Viper() *viper.Viper { return c.v }

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// TemplatePath returns the configured template directory as an absolute
// path, or "" if none is configured.
func (c *Config) TemplatePath() (string, error) {
	p := c.v.GetString(KeyTemplatePath)
	if p == "" {
		return "", nil
	}
	return ExpandPath(p)
}

// Strategy returns the configured merge strategy.
func (c *Config) Strategy() (document.Strategy, error) {
	return document.ParseStrategy(c.v.GetString(KeyStrategy))
}

// Set writes key = value into the config file, keeping the file's other keys
// and their order.
func (c *Config) Set(key, value string) error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return errdefs.IO("reading config", c.path, err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return fmt.Errorf("config file %s: %w", c.path, err)
	}

	doc.Set(key, value)
	out, err := doc.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, out, 0644); err != nil {
		return errdefs.IO("writing config", c.path, err)
	}

	c.v.Set(key, value)
	return nil
}

// ExpandPath resolves a leading "~" to the home directory and makes p
// absolute against the working directory.
func ExpandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return abs, nil
}
