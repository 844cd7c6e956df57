// Package config loads and validates ironDB configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full configuration for the storage engine.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig holds buffer pool and heap file settings.
type StorageConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	PageSize   int    `mapstructure:"page_size"`
	PoolFrames int    `mapstructure:"pool_frames"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func defaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:    "./data",
			PageSize:   4096,
			PoolFrames: 64,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads configuration from path, falling back to irondb.yaml in the
// working directory, environment variables (IRONDB_ prefix), then defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := defaultConfig()
	v.SetDefault("storage.data_dir", def.Storage.DataDir)
	v.SetDefault("storage.page_size", def.Storage.PageSize)
	v.SetDefault("storage.pool_frames", def.Storage.PoolFrames)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.output", def.Log.Output)

	v.SetEnvPrefix("IRONDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("irondb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the storage core cannot run with.
func (c *Config) Validate() error {
	if c.Storage.PageSize <= 0 {
		return fmt.Errorf("storage.page_size must be positive, got %d", c.Storage.PageSize)
	}
	if c.Storage.PoolFrames <= 0 {
		return fmt.Errorf("storage.pool_frames must be positive, got %d", c.Storage.PoolFrames)
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}
	return nil
}

// InitDataDir creates the data directory if it does not exist.
func InitDataDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access data dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", dir)
	}
	return nil
}

// CreateDefaultConfig writes a commented default config file next to dir.
func CreateDefaultConfig(path, dataDir string) error {
	def := defaultConfig()
	content := fmt.Sprintf(`storage:
  data_dir: %s
  page_size: %d
  pool_frames: %d

log:
  level: %s
  format: %s
  output: %s
`, filepath.ToSlash(dataDir), def.Storage.PageSize, def.Storage.PoolFrames,
		def.Log.Level, def.Log.Format, def.Log.Output)
	return os.WriteFile(path, []byte(content), 0644)
}
