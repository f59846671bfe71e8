package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/bananascale"
	"github.com/bft-labs/bananascale/internal/app"
	"github.com/bft-labs/bananascale/internal/cliconfig"
	"github.com/bft-labs/bananascale/pkg/log"
	"github.com/bft-labs/bananascale/plugins/configwatcher"
)

const helpDescription = `
Post how much of the year has gone by, measured in bananas.

Each run works out the elapsed share of the current UTC year, reveals that
much of the banana image and posts it with a caption. A state file makes
sure every whole percent is posted at most once, so the command is safe to
run from cron as often as you like, or on its own with --schedule.

Credentials come from TWITTER_API_KEY, TWITTER_API_SECRET,
TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_TOKEN_SECRET (a .env file in the
working directory is read too). Every run appends one JSON line to the
activity log.
`

var exampleUsage = strings.TrimSpace(`
  bananascale
  bananascale --dry-run --source-image ./banana.png
  bananascale --schedule "*/15 * * * *" --config $HOME/.bananascale/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:          "bananascale",
		Short:        "Post the year's progress on the banana scale",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Determine config path
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			loader := &cliconfig.Loader{Path: cfgFile, Base: cfg, Changed: changed}
			runCfg, err := loader.Load()
			if err != nil {
				return err
			}

			zl, closer, err := cliconfig.NewLogger(runCfg.LogLevel, runCfg.ActivityLog)
			if err != nil {
				return err
			}
			defer closer.Close()
			runLog := log.NewZerologLogger(zl)

			zl.Debug().Interface("config", runCfg.Redacted()).Msg("configuration")

			inst, err := bananascale.New(runCfg, runLog)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if runCfg.Schedule == "" || runCfg.Once {
				return runOnce(ctx, inst)
			}
			return runScheduled(ctx, runCfg, inst, loader, runLog)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.bananascale/config.toml)")
	root.Flags().StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "dotenv file with credentials")

	root.Flags().StringVar(&cfg.SourceImage, "source-image", cfg.SourceImage, "full banana image to reveal")
	root.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for rendered images")
	root.Flags().StringVar(&cfg.OutputPrefix, "output-prefix", cfg.OutputPrefix, "file name prefix for rendered images")
	root.Flags().StringVar(&cfg.OutputFormat, "output-format", cfg.OutputFormat, "rendered image format: png or jpeg")
	root.Flags().StringVar(&cfg.MaskColor, "mask-color", cfg.MaskColor, "colour painted over the hidden part (#rrggbb)")

	root.Flags().StringVar(&cfg.StateFile, "state-file", cfg.StateFile, "file recording the last posted percent")
	root.Flags().StringVar(&cfg.ActivityLog, "activity-log", cfg.ActivityLog, "append-only JSON activity log (empty disables)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	root.Flags().StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "reference timezone for log and caption timestamps")
	root.Flags().BoolVar(&cfg.CaptionTimestamp, "caption-timestamp", cfg.CaptionTimestamp, "append the local time to the caption")

	root.Flags().StringVar(&cfg.Schedule, "schedule", cfg.Schedule, "cron expression; keeps running and posts on every activation")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "run a single time even if a schedule is configured")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "render the image but do not post or record state")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")

	root.Flags().StringVar(&cfg.UploadURL, "upload-url", cfg.UploadURL, "media upload base URL")
	root.Flags().StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "API base URL")
	for _, name := range []string{"upload-url", "api-url"} {
		if err := root.Flags().MarkHidden(name); err != nil {
			logger.Info().Err(err).Str("flag", name).Msg("failed to hide flag")
		}
	}

	root.Flags().StringVar(&cfg.ArchiveEndpoint, "archive-endpoint", cfg.ArchiveEndpoint, "S3-compatible endpoint for archiving posted images (optional)")
	root.Flags().StringVar(&cfg.ArchiveBucket, "archive-bucket", cfg.ArchiveBucket, "archive bucket")
	root.Flags().StringVar(&cfg.ArchiveRegion, "archive-region", cfg.ArchiveRegion, "archive region")
	root.Flags().BoolVar(&cfg.ArchiveUseSSL, "archive-ssl", cfg.ArchiveUseSSL, "use TLS for the archive endpoint")

	root.Flags().StringVar(&cfg.LockRedisURL, "lock-redis-url", cfg.LockRedisURL, "redis URL for the run lock (optional)")
	root.Flags().StringVar(&cfg.LockKey, "lock-key", cfg.LockKey, "run lock key")
	root.Flags().DurationVar(&cfg.LockTTL, "lock-ttl", cfg.LockTTL, "run lock expiry")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("bananascale")
		os.Exit(1)
	}
}

// runOnce performs one run. A post whose state could not be recorded still
// counts as success; the run line already carries the warning.
func runOnce(ctx context.Context, inst *bananascale.Instance) error {
	_, err := inst.RunOnce(ctx)
	if err != nil && !bananascale.IsStatePersistFailure(err) {
		return err
	}
	return nil
}

// runScheduled keeps the process alive, running on every schedule activation
// and swapping in a rebuilt bot whenever the config or env file changes.
func runScheduled(ctx context.Context, cfg cliconfig.Config, inst *bananascale.Instance, loader *cliconfig.Loader, logger log.Logger) error {
	sched, err := app.NewScheduler(cfg.Schedule, cfg.Location(), inst.Bot(), logger)
	if err != nil {
		return err
	}

	reload := func(ctx context.Context) error {
		next, err := loader.Load()
		if err != nil {
			return err
		}
		if next.Schedule != cfg.Schedule || next.Timezone != cfg.Timezone {
			logger.Warn("schedule or timezone changed, restart to apply",
				log.String("schedule", next.Schedule), log.String("timezone", next.Timezone))
		}
		rebuilt, err := bananascale.New(next, logger)
		if err != nil {
			return err
		}
		sched.SetRunner(rebuilt.Bot())
		return nil
	}

	watcher := configwatcher.New(configwatcher.Config{
		Files: loader.Files(),
	}, reload, configwatcher.WithLogger(logger))
	if err := watcher.Start(ctx); err != nil {
		logger.Warn("config watcher disabled", log.Err(err))
	} else {
		defer watcher.Shutdown(context.Background())
	}

	return sched.Run(ctx)
}
