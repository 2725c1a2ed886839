package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config is the full docpilot configuration.
type Config struct {
	Model    ModelConfig  `json:"model"`
	Server   ServerConfig `json:"server"`
	GitHub   GitHubConfig `json:"github"`
	LogDebug bool         `json:"logDebug"`
}

// ModelConfig configures the completion provider. APIKey and GroupID are
// credentials and never written to the config file.
type ModelConfig struct {
	Name    string `json:"name"`
	BaseURL string `json:"baseURL,omitempty"`
	APIKey  string `json:"-"`
	GroupID string `json:"-"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// GitHubConfig configures GitHub access. When AppID and PrivateKeyPath are
// set the client authenticates as a GitHub App installation; otherwise Token
// is used as a plain PAT.
type GitHubConfig struct {
	AppID          int64  `json:"appID,omitempty"`
	InstallationID int64  `json:"installationID,omitempty"`
	PrivateKeyPath string `json:"privateKeyPath,omitempty"`
	Token          string `json:"-"`
}

// AppMode reports whether GitHub App installation auth is configured.
func (g GitHubConfig) AppMode() bool {
	return g.AppID != 0 && g.InstallationID != 0 && g.PrivateKeyPath != ""
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model: ModelConfig{
			Name: "MiniMax-Text-01",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for docpilot.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "docpilot"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "docpilot"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "docpilot"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "docpilot"), nil
	default:
		return filepath.Join(home, ".config", "docpilot"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file. Credentials are excluded by
// their json tags and only ever come from the environment.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags; only non-empty values apply.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Model.Name != "" {
		dst.Model.Name = src.Model.Name
	}
	if src.Model.BaseURL != "" {
		dst.Model.BaseURL = src.Model.BaseURL
	}
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
	if src.GitHub.AppID != 0 {
		dst.GitHub.AppID = src.GitHub.AppID
	}
	if src.GitHub.InstallationID != 0 {
		dst.GitHub.InstallationID = src.GitHub.InstallationID
	}
	if src.GitHub.PrivateKeyPath != "" {
		dst.GitHub.PrivateKeyPath = src.GitHub.PrivateKeyPath
	}
	dst.LogDebug = dst.LogDebug || src.LogDebug
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("MINIMAX_API_KEY"); v != "" {
		cfg.Model.APIKey = v
	}
	if v := os.Getenv("MINIMAX_GROUP_ID"); v != "" {
		cfg.Model.GroupID = v
	}
	if v := os.Getenv("DOCPILOT_MODEL"); v != "" {
		cfg.Model.Name = v
	}
	if v := os.Getenv("DOCPILOT_MODEL_BASE_URL"); v != "" {
		cfg.Model.BaseURL = v
	}
	if v := os.Getenv("DOCPILOT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_APP_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.GitHub.AppID = n
		}
	}
	if v := os.Getenv("GITHUB_INSTALLATION_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.GitHub.InstallationID = n
		}
	}
	if v := os.Getenv("GITHUB_PRIVATE_KEY_PATH"); v != "" {
		cfg.GitHub.PrivateKeyPath = v
	}
	if v := os.Getenv("DOCPILOT_DEBUG"); v == "1" || v == "true" {
		cfg.LogDebug = true
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		// Unknown flag keys were already rejected at flag parse time.
		_ = SetField(cfg, key, value)
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "model":
		cfg.Model.Name = value
	case "baseURL":
		cfg.Model.BaseURL = value
	case "addr":
		cfg.Server.Addr = value
	case "appID":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("appID must be an integer: %w", err)
		}
		cfg.GitHub.AppID = n
	case "installationID":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("installationID must be an integer: %w", err)
		}
		cfg.GitHub.InstallationID = n
	case "privateKeyPath":
		cfg.GitHub.PrivateKeyPath = value
	case "debug":
		cfg.LogDebug = value == "true" || value == "1"
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
