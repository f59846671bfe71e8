package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to keep files readable.
// TOML and YAML share the same keys.
type FileConfig struct {
	SourceImage  string `toml:"source_image" yaml:"source_image"`
	OutputDir    string `toml:"output_dir" yaml:"output_dir"`
	OutputPrefix string `toml:"output_prefix" yaml:"output_prefix"`
	OutputFormat string `toml:"output_format" yaml:"output_format"`
	MaskColor    string `toml:"mask_color" yaml:"mask_color"`

	StateFile   string `toml:"state_file" yaml:"state_file"`
	ActivityLog string `toml:"activity_log" yaml:"activity_log"`
	EnvFile     string `toml:"env_file" yaml:"env_file"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`

	Timezone         string `toml:"timezone" yaml:"timezone"`
	CaptionTimestamp *bool  `toml:"caption_timestamp" yaml:"caption_timestamp"`

	APIKey            string `toml:"api_key" yaml:"api_key"`
	APISecret         string `toml:"api_secret" yaml:"api_secret"`
	AccessToken       string `toml:"access_token" yaml:"access_token"`
	AccessTokenSecret string `toml:"access_token_secret" yaml:"access_token_secret"`
	BearerToken       string `toml:"bearer_token" yaml:"bearer_token"`

	UploadURL   string `toml:"upload_url" yaml:"upload_url"`
	APIURL      string `toml:"api_url" yaml:"api_url"`
	HTTPTimeout string `toml:"http_timeout" yaml:"http_timeout"`

	Schedule string `toml:"schedule" yaml:"schedule"`
	Once     *bool  `toml:"once" yaml:"once"`
	DryRun   *bool  `toml:"dry_run" yaml:"dry_run"`

	Archive ArchiveFileConfig `toml:"archive" yaml:"archive"`
	Lock    LockFileConfig    `toml:"lock" yaml:"lock"`
}

// ArchiveFileConfig is the [archive] table.
type ArchiveFileConfig struct {
	Endpoint  string `toml:"endpoint" yaml:"endpoint"`
	Bucket    string `toml:"bucket" yaml:"bucket"`
	AccessKey string `toml:"access_key" yaml:"access_key"`
	SecretKey string `toml:"secret_key" yaml:"secret_key"`
	Region    string `toml:"region" yaml:"region"`
	UseSSL    *bool  `toml:"use_ssl" yaml:"use_ssl"`
}

// LockFileConfig is the [lock] table.
type LockFileConfig struct {
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	Key      string `toml:"key" yaml:"key"`
	TTL      string `toml:"ttl" yaml:"ttl"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.bananascale/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".bananascale", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source-image", fc.SourceImage, &cfg.SourceImage)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("output-prefix", fc.OutputPrefix, &cfg.OutputPrefix)
	s.setString("output-format", fc.OutputFormat, &cfg.OutputFormat)
	s.setString("mask-color", fc.MaskColor, &cfg.MaskColor)
	s.setString("state-file", fc.StateFile, &cfg.StateFile)
	s.setString("activity-log", fc.ActivityLog, &cfg.ActivityLog)
	s.setString("env-file", fc.EnvFile, &cfg.EnvFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("timezone", fc.Timezone, &cfg.Timezone)

	s.setString("api-key", fc.APIKey, &cfg.APIKey)
	s.setString("api-secret", fc.APISecret, &cfg.APISecret)
	s.setString("access-token", fc.AccessToken, &cfg.AccessToken)
	s.setString("access-token-secret", fc.AccessTokenSecret, &cfg.AccessTokenSecret)
	s.setString("bearer-token", fc.BearerToken, &cfg.BearerToken)

	s.setString("upload-url", fc.UploadURL, &cfg.UploadURL)
	s.setString("api-url", fc.APIURL, &cfg.APIURL)
	s.setString("schedule", fc.Schedule, &cfg.Schedule)

	s.setString("archive-endpoint", fc.Archive.Endpoint, &cfg.ArchiveEndpoint)
	s.setString("archive-bucket", fc.Archive.Bucket, &cfg.ArchiveBucket)
	s.setString("archive-access-key", fc.Archive.AccessKey, &cfg.ArchiveAccessKey)
	s.setString("archive-secret-key", fc.Archive.SecretKey, &cfg.ArchiveSecretKey)
	s.setString("archive-region", fc.Archive.Region, &cfg.ArchiveRegion)

	s.setString("lock-redis-url", fc.Lock.RedisURL, &cfg.LockRedisURL)
	s.setString("lock-key", fc.Lock.Key, &cfg.LockKey)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("lock-ttl", fc.Lock.TTL, &cfg.LockTTL); err != nil {
		return err
	}

	s.setBool("caption-timestamp", fc.CaptionTimestamp, &cfg.CaptionTimestamp)
	s.setBool("once", fc.Once, &cfg.Once)
	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)
	s.setBool("archive-ssl", fc.Archive.UseSSL, &cfg.ArchiveUseSSL)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
