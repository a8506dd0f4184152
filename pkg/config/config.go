/*
Package config manages TOML config for SylCheck services.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/sylcheck/internal/utils"
	"github.com/bastiangx/sylcheck/pkg/symbol"
	"github.com/bastiangx/sylcheck/pkg/vocab"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Vocab  VocabConfig  `toml:"vocab"`
	Check  CheckConfig  `toml:"check"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// VocabConfig describes where the word lists and suffix table live.
type VocabConfig struct {
	Dir        string   `toml:"dir"`
	Lists      []string `toml:"lists"`
	SuffixFile string   `toml:"suffix_file"`
	Separator  string   `toml:"separator"`
}

// CheckConfig holds tokenizing and segmentation options.
type CheckConfig struct {
	TokenSeparator string `toml:"token_separator"`
	SymbolMode     string `toml:"symbol_mode"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxTokens  int `toml:"max_tokens"`
	MaxWordLen int `toml:"max_word_len"`
	MaxLimit   int `toml:"max_limit"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	NoColor      bool `toml:"no_color"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "sylcheck")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "sylcheck")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/sylcheck/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	src := vocab.DefaultSource("data/syllables")
	return &Config{
		Vocab: VocabConfig{
			Dir:        src.Dir,
			Lists:      src.Lists,
			SuffixFile: src.SuffixFile,
			Separator:  src.Separator,
		},
		Check: CheckConfig{
			TokenSeparator: "་",
			SymbolMode:     symbol.Rune.String(),
		},
		Server: ServerConfig{
			MaxTokens:  512,
			MaxWordLen: 64,
			MaxLimit:   64,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
			NoColor:      false,
		},
	}
}

// Source converts the vocab section into a vocab.Source.
func (c *Config) Source() vocab.Source {
	return vocab.Source{
		Dir:        c.Vocab.Dir,
		Lists:      c.Vocab.Lists,
		SuffixFile: c.Vocab.SuffixFile,
		Separator:  c.Vocab.Separator,
	}
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if len(c.Vocab.Lists) == 0 {
		return fmt.Errorf("vocab.lists must name at least one word list")
	}
	if c.Vocab.Separator == "" {
		return fmt.Errorf("vocab.separator must not be empty")
	}
	if _, err := symbol.ParseMode(c.Check.SymbolMode); err != nil {
		return fmt.Errorf("check.symbol_mode: %w", err)
	}
	if c.Server.MaxTokens < 1 || c.Server.MaxWordLen < 1 || c.Server.MaxLimit < 1 {
		return fmt.Errorf("server limits must be positive")
	}
	return nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every section that still decodes
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "vocab"); ok {
		extractVocabConfig(section, &config.Vocab)
	}
	if section, ok := utils.ExtractSection(tempConfig, "check"); ok {
		extractCheckConfig(section, &config.Check)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractVocabConfig(data map[string]any, v *VocabConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		v.Dir = val
	}
	if val, ok := utils.ExtractStringSlice(data, "lists"); ok {
		v.Lists = val
	}
	if val, ok := utils.ExtractString(data, "suffix_file"); ok {
		v.SuffixFile = val
	}
	if val, ok := utils.ExtractString(data, "separator"); ok {
		v.Separator = val
	}
}

func extractCheckConfig(data map[string]any, check *CheckConfig) {
	if val, ok := utils.ExtractString(data, "token_separator"); ok {
		check.TokenSeparator = val
	}
	if val, ok := utils.ExtractString(data, "symbol_mode"); ok {
		check.SymbolMode = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_tokens"); ok {
		server.MaxTokens = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		server.MaxWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "no_color"); ok {
		cli.NoColor = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
