package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultTimeoutSeconds = 10
	// TokenEnv overrides Server.Token when set, keeps the admin token out of the config file
	TokenEnv    = "SHAREDREPOS_TOKEN"
	appConfDir  = ".sharedrepos"
	appConfFile = "config.toml"
)

type ServerConfig struct {
	// URL of the platform, the admin API lives under URL + "/api/v2.1/admin/"
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type SiteConfig struct {
	// SiteRoot prefixes every navigation link, always ends with "/"
	SiteRoot               string `toml:"site_root"`
	MediaURL               string `toml:"media_url"`
	LoginURL               string `toml:"login_url"`
	IsPro                  bool   `toml:"is_pro"`
	EnableSysAdminViewRepo bool   `toml:"enable_sys_admin_view_repo"`
}

type WebConfig struct {
	Addr     string `toml:"addr"`
	Instance string `toml:"instance"`
	Publish  bool   `toml:"publish"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Site   SiteConfig   `toml:"site"`
	Web    WebConfig    `toml:"web"`
}

// Load loads the configuration from the user's config file.
// if not exists, it creates a new config file with default values.
func Load() (Config, error) {
	f, err := getUserConfigFile()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f, err = createConfigFile()
			if err != nil {
				return Config{}, fmt.Errorf("config file not exists, creating config file: %w", err)
			}
			defer f.Close()

			cfg := defaultConfig()
			if err = writeConfig(f, cfg); err != nil {
				return Config{}, fmt.Errorf("writing default config to app config file: %w", err)
			}
			return withEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	cfg, err := readConfig(f)
	if err != nil {
		return Config{}, err
	}
	return withEnv(cfg), nil
}

// LoadFile loads the configuration from an explicit path, missing keys keep their defaults.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config file %q: %w", path, err)
	}
	defer f.Close()
	cfg, err := readConfig(f)
	if err != nil {
		return Config{}, err
	}
	return withEnv(cfg), nil
}

// Open loads path when set, the user's config file otherwise.
func Open(path string) (Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	return Load()
}

// Save saves the configuration to the user's config file.
func Save(c Config) error {
	f, err := createConfigFile()
	if err != nil {
		return fmt.Errorf("creating/truncating config file: %w", err)
	}
	defer f.Close()
	if err = writeConfig(f, c); err != nil {
		return fmt.Errorf("writing new config to file: %w", err)
	}
	return nil
}

// withEnv applies the environment overrides on top of the file's values
func withEnv(c Config) Config {
	if t := os.Getenv(TokenEnv); t != "" {
		c.Server.Token = t
	}
	return c
}

// Timeout returns the configured request timeout in seconds, falling back to the default
func (c ServerConfig) Timeout() int {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds
	}
	return c.TimeoutSeconds
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:            "http://127.0.0.1:8000",
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Site: SiteConfig{
			SiteRoot: "/",
			MediaURL: "/media/",
			LoginURL: "/accounts/login/",
		},
		Web: WebConfig{
			Addr:     ":8080",
			Instance: "sharedrepos",
		},
	}
}

func getUserConfigFile() (*os.File, error) {
	cfgPath, err := GetDir()
	if err != nil {
		return nil, err
	}
	cfgPath = filepath.Join(cfgPath, appConfFile)
	var f *os.File
	if f, err = os.Open(cfgPath); err != nil {
		return nil, fmt.Errorf("opening app config file: %w", err)
	}
	return f, nil
}

func createConfigFile() (*os.File, error) {
	cfgPath, err := GetDir()
	if err != nil {
		return nil, err
	}
	cfgPath = filepath.Join(cfgPath, appConfFile)
	f, err := os.Create(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("creating app config file: %w", err)
	}
	return f, nil
}

func readConfig(r io.Reader) (Config, error) {
	cfg := defaultConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config file: %w", err)
	}
	cfg.Site.SiteRoot = withTrailingSlash(cfg.Site.SiteRoot)
	cfg.Site.MediaURL = withTrailingSlash(cfg.Site.MediaURL)
	cfg.Server.URL = strings.TrimSuffix(cfg.Server.URL, "/")
	return cfg, nil
}

func writeConfig(w io.Writer, c Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encoding config file: %w", err)
	}
	return nil
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// GetDir returns the user config directory path, if not exists, it creates it.
func GetDir() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config directory look-up: %v", err)
	}
	d = filepath.Join(d, confDirName)
	// "If path is already a directory, MkdirAll does nothing and returns nil"
	if err = os.MkdirAll(d, 0o750); err != nil {
		return "", fmt.Errorf("creating user config directory: %v", err)
	}
	return d, nil
}
