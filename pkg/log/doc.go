// Package log provides a logging abstraction for bananascale components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. A zerolog adapter and a no-op logger for tests are
// provided.
//
// # Usage
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//	logger.Info("posted", log.Int("percent", 25))
//
// Or use the no-op logger for testing:
//
//	logger := log.NewNoopLogger()
package log
