package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	// Platform credentials keep their conventional names.
	s.setString("api-key", os.Getenv("TWITTER_API_KEY"), &cfg.APIKey)
	s.setString("api-secret", os.Getenv("TWITTER_API_SECRET"), &cfg.APISecret)
	s.setString("access-token", os.Getenv("TWITTER_ACCESS_TOKEN"), &cfg.AccessToken)
	s.setString("access-token-secret", os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"), &cfg.AccessTokenSecret)
	s.setString("bearer-token", os.Getenv("TWITTER_BEARER_TOKEN"), &cfg.BearerToken)

	s.setString("source-image", os.Getenv("BANANASCALE_SOURCE_IMAGE"), &cfg.SourceImage)
	s.setString("output-dir", os.Getenv("BANANASCALE_OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("output-prefix", os.Getenv("BANANASCALE_OUTPUT_PREFIX"), &cfg.OutputPrefix)
	s.setString("output-format", os.Getenv("BANANASCALE_OUTPUT_FORMAT"), &cfg.OutputFormat)
	s.setString("mask-color", os.Getenv("BANANASCALE_MASK_COLOR"), &cfg.MaskColor)
	s.setString("state-file", os.Getenv("BANANASCALE_STATE_FILE"), &cfg.StateFile)
	s.setString("activity-log", os.Getenv("BANANASCALE_ACTIVITY_LOG"), &cfg.ActivityLog)
	s.setString("log-level", os.Getenv("BANANASCALE_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("timezone", os.Getenv("BANANASCALE_TIMEZONE"), &cfg.Timezone)
	s.setString("upload-url", os.Getenv("BANANASCALE_UPLOAD_URL"), &cfg.UploadURL)
	s.setString("api-url", os.Getenv("BANANASCALE_API_URL"), &cfg.APIURL)
	s.setString("schedule", os.Getenv("BANANASCALE_SCHEDULE"), &cfg.Schedule)

	s.setString("archive-endpoint", os.Getenv("BANANASCALE_ARCHIVE_ENDPOINT"), &cfg.ArchiveEndpoint)
	s.setString("archive-bucket", os.Getenv("BANANASCALE_ARCHIVE_BUCKET"), &cfg.ArchiveBucket)
	s.setString("archive-access-key", os.Getenv("BANANASCALE_ARCHIVE_ACCESS_KEY"), &cfg.ArchiveAccessKey)
	s.setString("archive-secret-key", os.Getenv("BANANASCALE_ARCHIVE_SECRET_KEY"), &cfg.ArchiveSecretKey)
	s.setString("archive-region", os.Getenv("BANANASCALE_ARCHIVE_REGION"), &cfg.ArchiveRegion)

	s.setString("lock-redis-url", os.Getenv("BANANASCALE_LOCK_REDIS_URL"), &cfg.LockRedisURL)
	s.setString("lock-key", os.Getenv("BANANASCALE_LOCK_KEY"), &cfg.LockKey)

	if err := s.setDuration("timeout", os.Getenv("BANANASCALE_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("lock-ttl", os.Getenv("BANANASCALE_LOCK_TTL"), &cfg.LockTTL); err != nil {
		return err
	}

	if err := s.setBoolFromString("caption-timestamp", os.Getenv("BANANASCALE_CAPTION_TIMESTAMP"), &cfg.CaptionTimestamp); err != nil {
		return err
	}
	if err := s.setBoolFromString("dry-run", os.Getenv("BANANASCALE_DRY_RUN"), &cfg.DryRun); err != nil {
		return err
	}
	if err := s.setBoolFromString("once", os.Getenv("BANANASCALE_ONCE"), &cfg.Once); err != nil {
		return err
	}
	if err := s.setBoolFromString("archive-ssl", os.Getenv("BANANASCALE_ARCHIVE_SSL"), &cfg.ArchiveUseSSL); err != nil {
		return err
	}

	return nil
}
