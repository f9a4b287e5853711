package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields duka needs to reach the storefront backend.
type Config struct {
	APIURL     string
	StorageDir string
	PollEvery  int // catalog refresh seconds; zero uses the package default
	LogLevel   string
}

const (
	defaultConfigPath = "~/.config/duka/config.toml"
	defaultStorageDir = "~/.local/share/duka"
	defaultAPIURL     = "http://127.0.0.1:8000/api"
	defaultLogLevel   = "info"

	// envAPIURL overrides api_url; handy for pointing at a staging backend.
	envAPIURL = "DUKA_API_URL"
)

// Load locates and parses the duka config, falling back to defaults when the
// file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:     defaultAPIURL,
		StorageDir: defaultStorageDir,
		LogLevel:   defaultLogLevel,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.StorageDir = mustExpand(cfg.StorageDir)
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL     string `toml:"api_url"`
		StorageDir string `toml:"storage_dir"`
		PollEvery  int    `toml:"poll"`
		LogLevel   string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.StorageDir); v != "" {
		cfg.StorageDir = v
	}
	if raw.PollEvery > 0 {
		cfg.PollEvery = raw.PollEvery
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.StorageDir = mustExpand(cfg.StorageDir)
	applyEnv(&cfg)

	return cfg, nil
}

// LogPath returns the path of the client log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.StorageDir) == "" {
		return mustExpand(defaultStorageDir + "/duka.log")
	}
	return filepath.Join(c.StorageDir, "duka.log")
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
