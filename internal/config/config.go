package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tallyhq/tally/internal/constants"
)

// Config is the on-disk application configuration.
type Config struct {
	StorePath  string `toml:"store_path"`
	ArchiveDir string `toml:"archive_dir"` // backup directory name, created beside the store
	MaxBackups int    `toml:"max_backups"`
}

func DefaultConfig() *Config {
	dir, _ := TallyDir()
	return &Config{
		StorePath:  filepath.Join(dir, constants.AppName+".json"),
		ArchiveDir: constants.ArchiveDirName,
		MaxBackups: constants.MaxBackups,
	}
}

// TallyDir returns the application config directory (~/.config/tally).
func TallyDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", constants.AppName), nil
}

func ConfigPath() (string, error) {
	dir, err := TallyDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func EnsureDirectories() error {
	dir, err := TallyDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// Load reads the config file, creating it with defaults on first run.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return LoadFile(configPath)
}

// LoadFile reads a config file from an explicit path, filling in defaults
// for fields the file leaves unset.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	cfg.StorePath = ExpandPath(cfg.StorePath)
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = constants.ArchiveDirName
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = constants.MaxBackups
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
