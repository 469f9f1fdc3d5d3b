package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project directory, without
// extension.
const FileName = "nativebinder"

// EnvPrefix prefixes every environment override, e.g. NATIVEBINDER_WORKERS.
const EnvPrefix = "NATIVEBINDER"

// Config represents the nativebinder configuration
type Config struct {
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	MainModule string `mapstructure:"main_module" yaml:"main_module,omitempty"`
	Snapshot   string `mapstructure:"snapshot" yaml:"snapshot"`
	Extension  string `mapstructure:"extension" yaml:"extension"`
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`

	EngineModules ModuleGenerationSet `mapstructure:"engine_modules" yaml:"engine_modules"`
	GameModules   ModuleGenerationSet `mapstructure:"game_modules" yaml:"game_modules"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		OutputPath: "Intermediate/DotNet/Metadata",
		Snapshot:   "reflection.yaml",
		Extension:  ".umeta",
		Workers:    1,
		LogLevel:   "info",
	}
}

// ModuleSet returns the generation settings for game or engine modules.
func (c *Config) ModuleSet(game bool) *ModuleGenerationSet {
	if game {
		return &c.GameModules
	}
	return &c.EngineModules
}

// Load loads the configuration from nativebinder.yml or nativebinder.yaml in
// the current directory, or from configFile when it is not empty. A .env
// file in the current directory is loaded first so it can supply
// NATIVEBINDER_* overrides.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	def := Default()
	v.SetDefault("output_path", def.OutputPath)
	v.SetDefault("snapshot", def.Snapshot)
	v.SetDefault("extension", def.Extension)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("main_module", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save writes cfg as YAML to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}
	return nil
}

// GetProjectRoot walks up from the working directory to the first directory
// holding a nativebinder config file.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(filepath.Join(dir, FileName+ext)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a nativebinder project (no %s.yml found)", FileName)
		}
		dir = parent
	}
}

// validateConfig validates the configuration and compiles its patterns
func validateConfig(cfg *Config) error {
	if cfg.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		return fmt.Errorf("extension must start with '.', got: %s", cfg.Extension)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got: %d", cfg.Workers)
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if err := cfg.EngineModules.Compile(); err != nil {
		return fmt.Errorf("engine_modules: %w", err)
	}
	if err := cfg.GameModules.Compile(); err != nil {
		return fmt.Errorf("game_modules: %w", err)
	}
	return nil
}
