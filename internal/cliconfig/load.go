package cliconfig

import "fmt"

// Loader resolves the effective configuration from defaults, the config
// file, the env file, the process environment and command-line flags.
// Flags win over env, env over file, file over defaults. Load may be called
// again to pick up edits.
type Loader struct {
	// Path is the config file. A missing file is skipped.
	Path string

	// Base holds defaults with flag values already applied.
	Base Config

	// Changed names the flags set explicitly on the command line.
	Changed map[string]bool

	env *EnvFile
}

// Load returns a validated Config.
func (l *Loader) Load() (Config, error) {
	cfg := l.Base

	if l.Path != "" && FileExists(l.Path) {
		fc, err := LoadFileConfig(l.Path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(&cfg, fc, l.Changed); err != nil {
			return cfg, err
		}
	}

	if l.env == nil || l.env.Path() != cfg.EnvFile {
		l.env = NewEnvFile(cfg.EnvFile)
	}
	if _, err := l.env.Load(); err != nil {
		return cfg, err
	}

	// These override file config but are overridden by flags (checked via changed map)
	if err := ApplyEnvConfig(&cfg, l.Changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Files returns the paths whose edits should trigger a reload.
func (l *Loader) Files() []string {
	files := []string{l.Path}
	if l.env != nil {
		files = append(files, l.env.Path())
	}
	return files
}
