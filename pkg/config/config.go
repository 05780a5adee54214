/*
Package config manages TOML config for the spellsuggest engine and its
server/CLI front ends.

InitConfig handles automatic config file creation and loading with fallback to defaults.
LoadConfig and SaveConfig provide direct fs for runtime changes.
Update allows targeted parameter changes with persistence.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Dict    DictConfig    `toml:"dict"`
	Suggest SuggestConfig `toml:"suggest"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has server related options for the msgpack IPC front end.
type ServerConfig struct {
	SocketPath     string `toml:"socket_path"`
	MaxConcurrent  int    `toml:"max_concurrent"`
	MaxRequestSize int    `toml:"max_request_size"`
}

// DictConfig holds dictionary loading options.
type DictConfig struct {
	Paths                  []string `toml:"paths"`
	MaxWordCountValidation int      `toml:"max_word_count_validation"`
}

// SuggestConfig holds the suggestion engine's tunables: the default
// 'spellsuggest' option string, score ceilings and per-request safety
// limits. The command reads DefaultMode (when --mode is not given) and
// MaxSuggestions (to size the result cache); the search stages use their
// own built-in ceilings, timeout and break-check interval and do not
// read TimeoutMS, the ScoreSfMax fields or BreakCheckIter.
type SuggestConfig struct {
	DefaultMode    string `toml:"default_mode"` // best | fast | double
	TimeoutMS      int    `toml:"timeout_ms"`
	MaxSuggestions int    `toml:"max_suggestions"`
	ScoreSfMax1    int    `toml:"score_sfmax1"`
	ScoreSfMax2    int    `toml:"score_sfmax2"`
	ScoreSfMax3    int    `toml:"score_sfmax3"`
	BreakCheckIter int    `toml:"break_check_iterations"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultMode  string `toml:"default_mode"`
	ShowScores   bool   `toml:"show_scores"`
	Colorize     bool   `toml:"colorize"`
	HistoryLimit int    `toml:"history_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			SocketPath:     "/tmp/spellsuggest.sock",
			MaxConcurrent:  32,
			MaxRequestSize: 1 << 16,
		},
		Dict: DictConfig{
			Paths:                  nil,
			MaxWordCountValidation: 1000000,
		},
		Suggest: SuggestConfig{
			DefaultMode:    "best",
			TimeoutMS:      5000,
			MaxSuggestions: 15,
			ScoreSfMax1:    200,
			ScoreSfMax2:    300,
			ScoreSfMax3:    400,
			BreakCheckIter: 1000,
		},
		CLI: CliConfig{
			DefaultMode:  "best",
			ShowScores:   false,
			Colorize:     true,
			HistoryLimit: 100,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return config, nil
	}
	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(config)
}

// Update changes the suggest-related config values and saves to file.
func (c *Config) Update(configPath string, mode *string, timeoutMS, maxSuggestions *int) error {
	sug := &c.Suggest
	if mode != nil {
		sug.DefaultMode = *mode
	}
	if timeoutMS != nil {
		sug.TimeoutMS = *timeoutMS
	}
	if maxSuggestions != nil {
		sug.MaxSuggestions = *maxSuggestions
	}
	return SaveConfig(c, configPath)
}
