// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	ServerURL             string `toml:"server_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	DefaultMode           string `toml:"default_mode"` // chat, simple
	ShowSavedPanel        bool   `toml:"show_saved_panel"`
	StoragePath           string `toml:"storage_path,omitempty"`
	Theme                 Theme  `toml:"theme_colors"`
	Keys                  KeyMap `toml:"keys"`

	// APIToken is kept in memory for usage
	APIToken string `toml:"-"`
	// EncryptedAPIToken is the one persisted in the config file
	EncryptedAPIToken string `toml:"api_token,omitempty"`

	path    string
	secrets SecretStore
}

// Option customizes Load and LoadFrom
type Option func(*Config)

// WithSecrets sets where the token's master key is kept (default: OS keyring)
func WithSecrets(s SecretStore) Option {
	return func(c *Config) { c.secrets = s }
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
	BorderColor   string `toml:"border_color"`
	SyntaxStyle   string `toml:"syntax_style"` // chroma style name
}

// KeyMap defines key bindings
type KeyMap struct {
	Submit      []string `toml:"submit"`
	Exit        []string `toml:"exit"`
	ToggleMode  []string `toml:"toggle_mode"`
	ToggleSaved []string `toml:"toggle_saved"`
	FocusSaved  []string `toml:"focus_saved"`
	RunSaved    []string `toml:"run_saved"`
	DeleteSaved []string `toml:"delete_saved"`
	Dismiss     []string `toml:"dismiss"`
	Cancel      []string `toml:"cancel"`
	Help        []string `toml:"help"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:             "http://localhost:8000",
		RequestTimeoutSeconds: 60,
		DefaultMode:           "chat",
		ShowSavedPanel:        true,
		Theme: Theme{
			// Nord Theme Defaults
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
			CardBg:        "#434C5E",
			BorderColor:   "#4C566A",
			SyntaxStyle:   "nord",
		},
		Keys: DefaultKeys(),
	}
}

// DefaultKeys returns the default key bindings
func DefaultKeys() KeyMap {
	return KeyMap{
		Submit:      []string{"enter"},
		Exit:        []string{"ctrl+c"},
		ToggleMode:  []string{"ctrl+t"},
		ToggleSaved: []string{"ctrl+s"},
		FocusSaved:  []string{"tab"},
		RunSaved:    []string{"enter", "r"},
		DeleteSaved: []string{"d", "delete"},
		Dismiss:     []string{"esc"},
		Cancel:      []string{"ctrl+x"},
		Help:        []string{"f1"},
	}
}

// RequestTimeout returns the per-request deadline
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate checks fields the client cannot run without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("server_url is empty")
	}
	switch c.DefaultMode {
	case "chat", "simple":
	default:
		return fmt.Errorf("default_mode must be chat or simple, got %q", c.DefaultMode)
	}
	return nil
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("askdb/config.toml")
}

// Load loads the config from disk or creates default
func Load(opts ...Option) (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path, opts...)
}

// LoadFrom loads the config at path, writing defaults on first run
func LoadFrom(path string, opts ...Option) (*Config, error) {
	apply := func(c *Config) {
		c.path = path
		c.secrets = SystemKeyring()
		for _, opt := range opts {
			opt(c)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: create default
		cfg := DefaultConfig()
		apply(cfg)
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	apply(&cfg)

	// Populate defaults for missing fields (migration)
	if cfg.migrate() {
		// Proceed with in-memory defaults even if save fails
		_ = cfg.Save()
	}

	if cfg.EncryptedAPIToken != "" {
		// An unreadable token leaves the client unauthenticated
		if token, err := cfg.decryptToken(); err != nil {
			log.Printf("config: api token: %v", err)
		} else {
			cfg.APIToken = token
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// migrate fills sections that older config files lack
func (c *Config) migrate() bool {
	defaults := DefaultConfig()
	updated := false

	if c.ServerURL == "" {
		c.ServerURL = defaults.ServerURL
		updated = true
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
		updated = true
	}
	if c.DefaultMode == "" {
		c.DefaultMode = defaults.DefaultMode
		updated = true
	}
	if c.Theme.TextPrimary == "" {
		c.Theme = defaults.Theme
		updated = true
	}
	if c.Theme.SyntaxStyle == "" {
		c.Theme.SyntaxStyle = defaults.Theme.SyntaxStyle
		updated = true
	}
	if len(c.Keys.Submit) == 0 {
		c.Keys = defaults.Keys
		updated = true
	}
	return updated
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	// Ensure directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	if c.APIToken != "" {
		sealed, err := c.encryptToken()
		if err != nil {
			return fmt.Errorf("seal api token: %w", err)
		}
		c.EncryptedAPIToken = sealed
	}

	// Create/truncate file with secure permissions (owner read/write only)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// SetAPIToken replaces the bearer token and saves it encrypted. An empty
// token removes it.
func (c *Config) SetAPIToken(token string) error {
	c.APIToken = strings.TrimSpace(token)
	if c.APIToken == "" {
		c.EncryptedAPIToken = ""
	}
	return c.Save()
}

func (c *Config) secretStore() SecretStore {
	if c.secrets == nil {
		c.secrets = SystemKeyring()
	}
	return c.secrets
}

func (c *Config) encryptToken() (string, error) {
	key, err := MasterKey(c.secretStore())
	if err != nil {
		return "", err
	}
	return Encrypt(c.APIToken, key)
}

func (c *Config) decryptToken() (string, error) {
	key, err := MasterKey(c.secretStore())
	if err != nil {
		return "", err
	}
	return Decrypt(c.EncryptedAPIToken, key)
}
