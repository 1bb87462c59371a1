package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	Indent     int  `json:"indent"`      //nolint:tagliatelle // snake_case for config file
	EscapeHTML bool `json:"escape_html"` //nolint:tagliatelle // snake_case for config file
	Workers    int  `json:"workers"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Indent:  4,
		Workers: 10,
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".jk.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/jk/config.json if set, otherwise
// ~/.config/jk/config.json. Returns empty string if the home directory
// cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "jk", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "jk", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/jk/config.json or $XDG_CONFIG_HOME/jk/config.json)
// 3. Project config file at default location (.jk.json, if exists)
// 4. Explicit config file via configPath (if non-empty)
// CLI flags override on top, handled by the individual commands.
func LoadConfig(workDir, configPath string, env map[string]string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	globalPath := getGlobalConfigPath(env)
	if globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if loaded {
			sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	if projectPath != "" {
		sources.Project = projectPath
		cfg = mergeConfig(cfg, projectCfg)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, ConfigSources{}, err
	}

	return cfg, sources, nil
}

// loadProjectConfig loads the project config file (.jk.json) or an explicit
// config file. Returns the config and the path if loaded.
func loadProjectConfig(workDir, configPath string) (configOverlay, string, error) {
	var (
		cfgFile   string
		mustExist bool
	)

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return configOverlay{}, "", fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	overlay, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return configOverlay{}, "", err
	}

	if !loaded {
		return configOverlay{}, "", nil
	}

	return overlay, cfgFile, nil
}

// configOverlay uses pointer fields so an absent key and an explicit zero
// are distinguishable when merging.
type configOverlay struct {
	Indent     *int  `json:"indent"`      //nolint:tagliatelle // snake_case for config file
	EscapeHTML *bool `json:"escape_html"` //nolint:tagliatelle // snake_case for config file
	Workers    *int  `json:"workers"`
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return an empty overlay.
func loadConfigFile(path string, mustExist bool) (configOverlay, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return configOverlay{}, false, nil
		}

		if mustExist {
			return configOverlay{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
		}

		return configOverlay{}, false, nil
	}

	overlay, parseErr := parseConfig(data)
	if parseErr != nil {
		return configOverlay{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, parseErr)
	}

	return overlay, true, nil
}

func parseConfig(data []byte) (configOverlay, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return configOverlay{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var overlay configOverlay

	unmarshalErr := json.Unmarshal(standardized, &overlay)
	if unmarshalErr != nil {
		return configOverlay{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return overlay, nil
}

func mergeConfig(base Config, overlay configOverlay) Config {
	if overlay.Indent != nil {
		base.Indent = *overlay.Indent
	}

	if overlay.EscapeHTML != nil {
		base.EscapeHTML = *overlay.EscapeHTML
	}

	if overlay.Workers != nil {
		base.Workers = *overlay.Workers
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.Indent < 0 {
		return errIndentNegative
	}

	if cfg.Workers < 0 {
		return errWorkersNegative
	}

	return nil
}

// FormatConfig returns the config as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
