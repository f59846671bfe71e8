package cliconfig

import (
	"os"
	"testing"
	"time"
)

var envKeys = []string{
	"TWITTER_API_KEY",
	"TWITTER_API_SECRET",
	"TWITTER_ACCESS_TOKEN",
	"TWITTER_ACCESS_TOKEN_SECRET",
	"TWITTER_BEARER_TOKEN",
	"BANANASCALE_SOURCE_IMAGE",
	"BANANASCALE_OUTPUT_DIR",
	"BANANASCALE_OUTPUT_PREFIX",
	"BANANASCALE_OUTPUT_FORMAT",
	"BANANASCALE_MASK_COLOR",
	"BANANASCALE_STATE_FILE",
	"BANANASCALE_ACTIVITY_LOG",
	"BANANASCALE_LOG_LEVEL",
	"BANANASCALE_TIMEZONE",
	"BANANASCALE_UPLOAD_URL",
	"BANANASCALE_API_URL",
	"BANANASCALE_SCHEDULE",
	"BANANASCALE_ARCHIVE_ENDPOINT",
	"BANANASCALE_ARCHIVE_BUCKET",
	"BANANASCALE_ARCHIVE_ACCESS_KEY",
	"BANANASCALE_ARCHIVE_SECRET_KEY",
	"BANANASCALE_ARCHIVE_REGION",
	"BANANASCALE_LOCK_REDIS_URL",
	"BANANASCALE_LOCK_KEY",
	"BANANASCALE_HTTP_TIMEOUT",
	"BANANASCALE_LOCK_TTL",
	"BANANASCALE_CAPTION_TIMESTAMP",
	"BANANASCALE_DRY_RUN",
	"BANANASCALE_ONCE",
	"BANANASCALE_ARCHIVE_SSL",
}

// clearEnv blanks every variable ApplyEnvConfig reads so the host environment
// cannot leak into a test case.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"TWITTER_API_KEY":               "env-key",
				"TWITTER_ACCESS_TOKEN_SECRET":   "env-token-secret",
				"BANANASCALE_SOURCE_IMAGE":      "/env/banana.png",
				"BANANASCALE_TIMEZONE":          "Europe/Berlin",
				"BANANASCALE_HTTP_TIMEOUT":      "10s",
				"BANANASCALE_CAPTION_TIMESTAMP": "true",
				"BANANASCALE_LOCK_TTL":          "2m",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				APIKey:            "env-key",
				AccessTokenSecret: "env-token-secret",
				SourceImage:       "/env/banana.png",
				Timezone:          "Europe/Berlin",
				HTTPTimeout:       10 * time.Second,
				CaptionTimestamp:  true,
				LockTTL:           2 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"BANANASCALE_SOURCE_IMAGE": "/env/banana.png",
				"BANANASCALE_STATE_FILE":   "/env/state.json",
			},
			changed: map[string]bool{"source-image": true},
			initial: Config{
				SourceImage: "flag.png",
			},
			expected: Config{
				SourceImage: "flag.png",
				StateFile:   "/env/state.json",
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"BANANASCALE_HTTP_TIMEOUT": "not-a-duration",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
		{
			name: "returns error for invalid bool",
			envVars: map[string]string{
				"BANANASCALE_DRY_RUN": "not-a-bool",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() got = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
