package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// AppName is used for the config directory and the log file name
const AppName = "wix"

// Config holds the application configuration
type Config struct {
	// Editor is the command to use for external editing (defaults to $EDITOR or nvim)
	Editor string `yaml:"editor"`
	// EditorArgs are additional arguments to pass to the editor
	EditorArgs []string `yaml:"editor_args"`
	// DataDir is where the local key-value store lives
	DataDir string `yaml:"data_dir"`
	// LogLevel is a zerolog level name (debug, info, warn, error)
	LogLevel  string          `yaml:"log_level"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Assistant AssistantConfig `yaml:"assistant"`
	Theme     ThemeConfig     `yaml:"theme"`
	Keybinds  KeybindConfig   `yaml:"keybinds"`
	// Chats seeds the chat list. There is no other source of chats.
	Chats []ChatConfig `yaml:"chats"`
}

// EndpointsConfig holds the remote collaborator endpoints
type EndpointsConfig struct {
	AuthURL    string `yaml:"auth_url"`
	PaymentURL string `yaml:"payment_url"`
	// RequestTimeout of zero leaves the transport default in place
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// AssistantConfig holds settings for the Got assistant stub
type AssistantConfig struct {
	ReplyDelay time.Duration `yaml:"reply_delay"`
}

// ChatConfig describes one seeded chat
type ChatConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Avatar      string `yaml:"avatar"`
	LastMessage string `yaml:"last_message"`
	Time        string `yaml:"time"`
	Unread      int    `yaml:"unread"`
}

// KeybindConfig holds keybind-related settings
type KeybindConfig struct {
	// LeaderKey is the global leader key for section navigation (default: "ctrl+space")
	LeaderKey string `yaml:"leader_key"`
	// Navigation keybinds (used after leader key)
	Navigation NavigationKeybinds `yaml:"navigation"`
	// Quit (without leader) only applies while no text field is being edited
	Quit string `yaml:"quit"`
}

// NavigationKeybinds selects a section after the leader key
type NavigationKeybinds struct {
	Got      string `yaml:"got"`      // default: "g"
	Chats    string `yaml:"chats"`    // default: "c"
	Contacts string `yaml:"contacts"` // default: "o"
	Profile  string `yaml:"profile"`  // default: "p"
	Settings string `yaml:"settings"` // default: "s"
	Premium  string `yaml:"premium"`  // default: "m"
}

// ThemeConfig holds theme-related settings
type ThemeConfig struct {
	// PrimaryColor is the main accent color (hex)
	PrimaryColor string `yaml:"primary_color"`
	// SecondaryColor is the secondary accent color (hex)
	SecondaryColor string `yaml:"secondary_color"`
}

// envOverrides are read from WIX_* environment variables after the file
type envOverrides struct {
	AuthURL        string        `envconfig:"AUTH_URL"`
	PaymentURL     string        `envconfig:"PAYMENT_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	AssistantDelay time.Duration `envconfig:"ASSISTANT_DELAY"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	DataDir        string        `envconfig:"DATA_DIR"`
}

const (
	defaultAuthURL    = "https://functions.poehali.dev/5177b43f-2ac2-4e49-9505-46314bd3e396"
	defaultPaymentURL = "https://functions.poehali.dev/fc0ca1b0-e625-494f-8c69-db73c0cadfa4"
)

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "nvim"
	}

	dataDir := ""
	if dir, err := ConfigDir(); err == nil {
		dataDir = filepath.Join(dir, "data")
	}

	return &Config{
		Editor:     editor,
		EditorArgs: []string{},
		DataDir:    dataDir,
		LogLevel:   "info",
		Endpoints: EndpointsConfig{
			AuthURL:    defaultAuthURL,
			PaymentURL: defaultPaymentURL,
		},
		Assistant: AssistantConfig{
			ReplyDelay: time.Second,
		},
		Theme: ThemeConfig{
			PrimaryColor:   "#8B5CF6",
			SecondaryColor: "#0EA5E9",
		},
		Keybinds: DefaultKeybinds(),
	}
}

// DefaultKeybinds returns the default keybind configuration
func DefaultKeybinds() KeybindConfig {
	return KeybindConfig{
		LeaderKey: "ctrl+space",
		Navigation: NavigationKeybinds{
			Got:      "g",
			Chats:    "c",
			Contacts: "o",
			Profile:  "p",
			Settings: "s",
			Premium:  "m",
		},
		Quit: "q",
	}
}

// ConfigDir returns the path to the config directory
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads the configuration from disk, or returns defaults if not found.
// A .env file in the working directory and WIX_* variables override the file.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	c.mergeDefaults()
	return nil
}

// mergeDefaults fills values a config file left empty
func (c *Config) mergeDefaults() {
	defaults := DefaultConfig()
	if c.Editor == "" {
		c.Editor = defaults.Editor
	}
	if c.DataDir == "" {
		c.DataDir = defaults.DataDir
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Endpoints.AuthURL == "" {
		c.Endpoints.AuthURL = defaults.Endpoints.AuthURL
	}
	if c.Endpoints.PaymentURL == "" {
		c.Endpoints.PaymentURL = defaults.Endpoints.PaymentURL
	}
	if c.Assistant.ReplyDelay <= 0 {
		c.Assistant.ReplyDelay = defaults.Assistant.ReplyDelay
	}
	if c.Theme.PrimaryColor == "" {
		c.Theme.PrimaryColor = defaults.Theme.PrimaryColor
	}
	if c.Theme.SecondaryColor == "" {
		c.Theme.SecondaryColor = defaults.Theme.SecondaryColor
	}

	kb := &c.Keybinds
	dk := defaults.Keybinds
	if kb.LeaderKey == "" {
		kb.LeaderKey = dk.LeaderKey
	}
	if kb.Quit == "" {
		kb.Quit = dk.Quit
	}
	nav := &kb.Navigation
	if nav.Got == "" {
		nav.Got = dk.Navigation.Got
	}
	if nav.Chats == "" {
		nav.Chats = dk.Navigation.Chats
	}
	if nav.Contacts == "" {
		nav.Contacts = dk.Navigation.Contacts
	}
	if nav.Profile == "" {
		nav.Profile = dk.Navigation.Profile
	}
	if nav.Settings == "" {
		nav.Settings = dk.Navigation.Settings
	}
	if nav.Premium == "" {
		nav.Premium = dk.Navigation.Premium
	}
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("WIX", &env); err != nil {
		return fmt.Errorf("read WIX_* environment: %w", err)
	}

	if env.AuthURL != "" {
		c.Endpoints.AuthURL = env.AuthURL
	}
	if env.PaymentURL != "" {
		c.Endpoints.PaymentURL = env.PaymentURL
	}
	if env.RequestTimeout > 0 {
		c.Endpoints.RequestTimeout = env.RequestTimeout
	}
	if env.AssistantDelay > 0 {
		c.Assistant.ReplyDelay = env.AssistantDelay
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.DataDir != "" {
		c.DataDir = env.DataDir
	}
	return nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
