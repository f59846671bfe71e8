package configwatcher

import "github.com/bft-labs/bananascale/pkg/log"

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for watch and reload events.
//
// Usage:
//
//	w := configwatcher.New(configwatcher.Config{
//	    Files: []string{cfgPath, envPath},
//	}, reload, configwatcher.WithLogger(logger))
func WithLogger(l log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}
