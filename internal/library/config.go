package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	LibraryDir string `json:"library_dir"`
	TagDir     string `json:"tag_dir,omitempty"`
	Viewer     string `json:"viewer,omitempty"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration. TagDir left empty means
// "derive <library_dir>/tags" after resolution.
func DefaultConfig() Config {
	return Config{
		LibraryDir: "library",
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".ck.json"

// DefaultTagDir returns the tag directory derived from a resolved library
// directory when no tag_dir is configured.
func DefaultTagDir(libraryDir string) string {
	return filepath.Join(libraryDir, "tags")
}

// globalConfigPath returns the path to the global config file, resolved
// purely from the passed-in env map so embedders and tests stay hermetic.
// Uses $XDG_CONFIG_HOME/ck/config.json if set, otherwise
// $HOME/.config/ck/config.json. Returns empty string when neither is set.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "ck", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "ck", "config.json")
	}

	return ""
}

// Overrides carries CLI-level config overrides into LoadConfig.
type Overrides struct {
	LibraryDir string
	TagDir     string
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/ck/config.json or $XDG_CONFIG_HOME/ck/config.json)
// 3. Project config file at default location (.ck.json, if exists)
// 4. Explicit config file via configPath (if non-empty)
// 5. CLI overrides.
func LoadConfig(workDir, configPath string, overrides Overrides, env map[string]string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	globalCfg, globalPath, err := loadGlobalConfig(env)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if overrides.LibraryDir != "" {
		cfg.LibraryDir = overrides.LibraryDir
	}

	if overrides.TagDir != "" {
		cfg.TagDir = overrides.TagDir
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, ConfigSources{}, validateErr
	}

	return cfg, sources, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := globalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, explicitEmpty, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["library_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, globalCfgPath, ErrLibraryDirEmpty)
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.ck.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		// Default project config file - optional
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, explicitEmpty, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["library_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgFile, ErrLibraryDirEmpty)
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, a map of explicitly empty fields, whether file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// Check which fields were explicitly set to empty
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["library_dir"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["library_dir"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.LibraryDir != "" {
		base.LibraryDir = overlay.LibraryDir
	}

	if overlay.TagDir != "" {
		base.TagDir = overlay.TagDir
	}

	if overlay.Viewer != "" {
		base.Viewer = overlay.Viewer
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.LibraryDir == "" {
		return ErrLibraryDirEmpty
	}

	if cfg.TagDir != "" && strings.TrimSpace(cfg.TagDir) == "" {
		return fmt.Errorf("%w: tag_dir is blank", ErrConfigInvalid)
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
