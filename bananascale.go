// Package bananascale posts how much of the current year has elapsed as a
// progressively revealed banana image.
//
// Example usage:
//
//	cfg := bananascale.DefaultConfig()
//	cfg.SourceImage = "/srv/banana.png"
//	cfg.DryRun = true
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	inst, err := bananascale.New(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := inst.RunOnce(context.Background())
package bananascale

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bft-labs/bananascale/internal/adapters/fs"
	"github.com/bft-labs/bananascale/internal/adapters/redislock"
	"github.com/bft-labs/bananascale/internal/adapters/render"
	"github.com/bft-labs/bananascale/internal/adapters/s3"
	"github.com/bft-labs/bananascale/internal/adapters/twitter"
	"github.com/bft-labs/bananascale/internal/app"
	"github.com/bft-labs/bananascale/internal/cliconfig"
	"github.com/bft-labs/bananascale/internal/domain"
	"github.com/bft-labs/bananascale/internal/ports"
	"github.com/bft-labs/bananascale/pkg/log"
)

// Config holds the configuration for a bot instance.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// RunReport summarises one invocation.
type RunReport = domain.RunReport

// DefaultConfig returns a Config with sensible default values.
// Credentials must be set before Validate unless DryRun is true.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Errors callers may want to match with errors.Is.
var (
	ErrStatePersist  = domain.ErrStatePersist
	ErrInvalidConfig = domain.ErrInvalidConfig
)

// Instance is a fully wired bot.
type Instance struct {
	bot *app.Bot
}

// New wires the state file, renderer, platform clients and optional archive
// and run lock described by cfg. cfg must already be validated.
func New(cfg Config, logger log.Logger) (*Instance, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	mask, err := render.ParseHexColor(cfg.MaskColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	renderer := render.NewEdgeWipe(render.Config{
		SourceImage: cfg.SourceImage,
		OutputDir:   cfg.OutputDir,
		Prefix:      cfg.OutputPrefix,
		Format:      cfg.OutputFormat,
		Mask:        mask,
	}, logger)

	stateRepo := fs.NewStateFileRepository(cfg.StateFile)
	publisher := newPublisher(cfg, logger)

	var opts []app.BotOption
	archiveCfg := s3.Config{
		Endpoint:  cfg.ArchiveEndpoint,
		Bucket:    cfg.ArchiveBucket,
		AccessKey: cfg.ArchiveAccessKey,
		SecretKey: cfg.ArchiveSecretKey,
		UseSSL:    cfg.ArchiveUseSSL,
		Region:    cfg.ArchiveRegion,
	}
	if archiveCfg.Enabled() {
		archive, err := s3.New(archiveCfg, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithArchive(archive))
	}
	if cfg.LockRedisURL != "" {
		lock := redislock.New(redislock.URLDialer(cfg.LockRedisURL), cfg.LockKey, cfg.LockTTL, logger)
		opts = append(opts, app.WithRunLock(lock))
	}

	bot := app.NewBot(app.BotConfig{
		Location:         cfg.Location(),
		CaptionTimestamp: cfg.CaptionTimestamp,
		DryRun:           cfg.DryRun,
	}, stateRepo, renderer, publisher, logger, opts...)

	return &Instance{bot: bot}, nil
}

// newPublisher builds the upload and post clients. Media upload always needs
// OAuth 1.0a user context; post creation falls back to the Bearer token.
func newPublisher(cfg Config, logger log.Logger) *app.Publisher {
	creds := cfg.Credentials()
	base := &http.Client{Timeout: cfg.HTTPTimeout}

	var uploadClient, postClient ports.HTTPClient = base, base
	if creds.HasUserContext() {
		user := twitter.NewUserClient(creds, base, cfg.HTTPTimeout)
		uploadClient, postClient = user, user
	} else if creds.BearerToken != "" {
		postClient = twitter.NewBearerClient(creds.BearerToken, base)
	}

	return app.NewPublisher(
		twitter.NewMediaClient(cfg.UploadURL, uploadClient, logger),
		twitter.NewPostClient(cfg.APIURL, postClient, logger),
		logger,
	)
}

// RunOnce performs a single compute, render, publish, record cycle.
func (i *Instance) RunOnce(ctx context.Context) (RunReport, error) {
	return i.bot.RunOnce(ctx)
}

// Bot exposes the application-level bot, e.g. for a scheduler.
func (i *Instance) Bot() *app.Bot {
	return i.bot
}

// IsStatePersistFailure reports whether err only means the post succeeded
// but the new percent could not be recorded.
func IsStatePersistFailure(err error) bool {
	return errors.Is(err, domain.ErrStatePersist)
}
