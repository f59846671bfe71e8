package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"

	"github.com/bft-labs/bananascale/internal/adapters/render"
	"github.com/bft-labs/bananascale/internal/adapters/twitter"
	"github.com/bft-labs/bananascale/internal/domain"
)

// DefaultTimezone is the reference timezone for human-readable timestamps.
const DefaultTimezone = "America/Los_Angeles"

// Config holds CLI configuration for bananascale.
type Config struct {
	SourceImage  string
	OutputDir    string
	OutputPrefix string
	OutputFormat string
	MaskColor    string

	StateFile   string
	ActivityLog string
	EnvFile     string
	LogLevel    string

	Timezone         string
	CaptionTimestamp bool

	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	BearerToken       string

	UploadURL   string
	APIURL      string
	HTTPTimeout time.Duration

	Schedule string
	Once     bool
	DryRun   bool

	ArchiveEndpoint  string
	ArchiveBucket    string
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchiveRegion    string
	ArchiveUseSSL    bool

	LockRedisURL string
	LockKey      string
	LockTTL      time.Duration

	location *time.Location
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SourceImage:   "banana.png",
		OutputDir:     ".",
		OutputPrefix:  "banana_cropped",
		OutputFormat:  render.FormatPNG,
		MaskColor:     "#f6f6f6",
		StateFile:     "progress_state.json",
		ActivityLog:   "activity.log",
		EnvFile:       ".env",
		LogLevel:      "info",
		Timezone:      DefaultTimezone,
		UploadURL:     twitter.DefaultUploadURL,
		APIURL:        twitter.DefaultAPIURL,
		HTTPTimeout:   30 * time.Second,
		ArchiveUseSSL: true,
		LockTTL:       5 * time.Minute,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.SourceImage == "" {
		return invalid("source-image is required")
	}
	if c.OutputPrefix == "" {
		return invalid("output-prefix is required")
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.StateFile == "" {
		return invalid("state-file is required")
	}

	switch strings.ToLower(c.OutputFormat) {
	case "", "png":
		c.OutputFormat = render.FormatPNG
	case "jpg", "jpeg":
		c.OutputFormat = render.FormatJPEG
	default:
		return invalid(fmt.Sprintf("output-format %q: want png or jpeg", c.OutputFormat))
	}

	if _, err := render.ParseHexColor(c.MaskColor); err != nil {
		return invalid(err.Error())
	}

	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return invalid(fmt.Sprintf("timezone %q: %v", c.Timezone, err))
	}
	c.location = loc

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return invalid(fmt.Sprintf("log-level %q: %v", c.LogLevel, err))
	}

	if c.UploadURL == "" {
		c.UploadURL = twitter.DefaultUploadURL
	}
	if c.APIURL == "" {
		c.APIURL = twitter.DefaultAPIURL
	}
	// Ensure no trailing slash
	c.UploadURL = strings.TrimRight(c.UploadURL, "/")
	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.HTTPTimeout <= 0 {
		return invalid("timeout must be positive")
	}

	if !c.DryRun {
		if !c.Credentials().HasUserContext() {
			return invalid("TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_TOKEN_SECRET are required")
		}
	}

	if c.ArchiveEndpoint != "" && c.ArchiveBucket == "" {
		return invalid("archive-bucket is required when archive-endpoint is set")
	}

	if c.LockRedisURL != "" && c.LockTTL <= 0 {
		return invalid("lock-ttl must be positive")
	}

	return nil
}

// Location returns the reference timezone resolved by Validate, or UTC.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Credentials returns the platform credentials.
func (c Config) Credentials() twitter.Credentials {
	return twitter.Credentials{
		APIKey:            c.APIKey,
		APISecret:         c.APISecret,
		AccessToken:       c.AccessToken,
		AccessTokenSecret: c.AccessTokenSecret,
		BearerToken:       c.BearerToken,
	}
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	mask := func(s *string) {
		if *s != "" {
			*s = "*****"
		}
	}
	mask(&c.APIKey)
	mask(&c.APISecret)
	mask(&c.AccessToken)
	mask(&c.AccessTokenSecret)
	mask(&c.BearerToken)
	mask(&c.ArchiveSecretKey)
	if c.LockRedisURL != "" {
		c.LockRedisURL = redactURL(c.LockRedisURL)
	}
	return c
}

// redactURL hides the userinfo part of a URL.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		return scheme + "://*****@" + rest[at+1:]
	}
	return raw
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, msg)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
