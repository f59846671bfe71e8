package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bft-labs/bananascale/internal/domain"
	"github.com/bft-labs/bananascale/internal/ports"
)

// LocalTimeLayout formats the reference-timezone timestamp in the activity log.
const LocalTimeLayout = "2006-01-02 15:04:05 MST"

// BotConfig contains configuration for a single run.
type BotConfig struct {
	// Location is the reference timezone for log and caption timestamps.
	// It never affects the percent, which is anchored to UTC.
	Location *time.Location

	// CaptionTimestamp appends the local time to the caption.
	CaptionTimestamp bool

	// DryRun renders the image but neither publishes nor records state.
	DryRun bool
}

// Bot runs the compute, render, publish, record sequence once per call.
type Bot struct {
	config    BotConfig
	now       func() time.Time
	stateRepo ports.StateRepository
	renderer  ports.ImageRenderer
	publisher *Publisher
	archive   ports.ImageArchive
	lock      ports.RunLock
	logger    ports.Logger
}

// BotOption configures optional Bot collaborators.
type BotOption func(*Bot)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) BotOption {
	return func(b *Bot) { b.now = now }
}

// WithArchive copies every posted image to archive.
func WithArchive(archive ports.ImageArchive) BotOption {
	return func(b *Bot) { b.archive = archive }
}

// WithRunLock guards each run with lock.
func WithRunLock(lock ports.RunLock) BotOption {
	return func(b *Bot) { b.lock = lock }
}

// NewBot creates a bot with the given dependencies.
func NewBot(
	config BotConfig,
	stateRepo ports.StateRepository,
	renderer ports.ImageRenderer,
	publisher *Publisher,
	logger ports.Logger,
	opts ...BotOption,
) *Bot {
	if config.Location == nil {
		config.Location = time.UTC
	}
	b := &Bot{
		config:    config,
		now:       time.Now,
		stateRepo: stateRepo,
		renderer:  renderer,
		publisher: publisher,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RunOnce performs a single invocation and logs exactly one summary line.
//
// A percent that does not exceed the recorded one ends the run without side
// effects. Render and publish failures leave the state untouched. A failed
// state write after a successful post is returned wrapped in
// domain.ErrStatePersist with the report still marked as posted.
func (b *Bot) RunOnce(ctx context.Context) (report domain.RunReport, err error) {
	now := b.now()
	report.LocalTime = now.In(b.config.Location).Format(LocalTimeLayout)
	defer func() { b.logReport(report, err) }()

	if b.lock != nil {
		release, lockErr := b.lock.Acquire(ctx)
		if errors.Is(lockErr, domain.ErrLockHeld) {
			report.Action = domain.ActionSkipped
			report.Reason = "another run holds the lock"
			return report, nil
		}
		if lockErr != nil {
			report.Action = domain.ActionFailed
			report.Stage = "lock"
			report.Reason = lockErr.Error()
			return report, fmt.Errorf("acquire run lock: %w", lockErr)
		}
		defer release()
	}

	progress := domain.YearProgress(now)
	report.Percent = progress.Percent
	report.Fraction = progress.Fraction

	state, err := b.stateRepo.Load(ctx)
	if err != nil {
		report.Action = domain.ActionFailed
		report.Stage = "load"
		report.Reason = err.Error()
		return report, fmt.Errorf("load state: %w", err)
	}
	report.LastPercent = state.LastPercent

	if !state.ShouldPost(progress.Percent) {
		report.Action = domain.ActionSkipped
		report.Reason = fmt.Sprintf("no new percent (last %d, current %d)", *state.LastPercent, progress.Percent)
		return report, nil
	}

	var suffix string
	if b.config.CaptionTimestamp {
		suffix = now.In(b.config.Location).Format(domain.CaptionSuffixLayout)
	}
	report.Caption = domain.Caption(progress.Year, progress.Percent, suffix)

	path, err := b.renderer.Render(ctx, progress.Percent)
	if err != nil {
		report.Action = domain.ActionFailed
		report.Stage = "render"
		report.Reason = err.Error()
		return report, err
	}
	report.ImagePath = path

	if b.config.DryRun {
		report.Action = domain.ActionDryRun
		return report, nil
	}

	result, err := b.publisher.Publish(ctx, report.Caption, path)
	if err != nil {
		report.Action = domain.ActionFailed
		report.Stage = "publish"
		report.Reason = err.Error()
		return report, err
	}
	report.Action = domain.ActionPosted
	report.MediaID = result.MediaID
	report.PostID = result.PostID

	if saveErr := b.stateRepo.Save(ctx, domain.WithPercent(progress.Percent)); saveErr != nil {
		report.Stage = "save"
		report.Reason = "state not saved, next run may post again: " + saveErr.Error()
		err = fmt.Errorf("%w: %w", domain.ErrStatePersist, saveErr)
	}

	if b.archive != nil {
		location, archiveErr := b.archive.Store(ctx, path)
		if archiveErr != nil {
			report.ArchiveError = archiveErr.Error()
		} else {
			report.ArchiveLocation = location
		}
	}

	return report, err
}

// logReport writes the single activity line for a run.
func (b *Bot) logReport(report domain.RunReport, err error) {
	fields := []ports.Field{
		ports.String("local_time", report.LocalTime),
		ports.String("action", string(report.Action)),
		ports.Int("percent", report.Percent),
		ports.Float64("fraction", report.Fraction),
	}
	if report.LastPercent != nil {
		fields = append(fields, ports.Int("last_percent", *report.LastPercent))
	}
	if report.Caption != "" {
		fields = append(fields, ports.String("caption", report.Caption))
	}
	if report.ImagePath != "" {
		fields = append(fields, ports.String("image", report.ImagePath))
	}
	if report.MediaID != "" {
		fields = append(fields, ports.String("media_id", report.MediaID))
	}
	if report.PostID != "" {
		fields = append(fields, ports.String("post_id", report.PostID))
	}
	if report.ArchiveLocation != "" {
		fields = append(fields, ports.String("archive", report.ArchiveLocation))
	}
	if report.ArchiveError != "" {
		fields = append(fields, ports.String("archive_error", report.ArchiveError))
	}
	if report.Stage != "" {
		fields = append(fields, ports.String("stage", report.Stage))
	}
	if report.Reason != "" {
		fields = append(fields, ports.String("reason", report.Reason))
	}

	if err != nil {
		b.logger.Error("run", append(fields, ports.Err(err))...)
		return
	}
	b.logger.Info("run", fields...)
}
