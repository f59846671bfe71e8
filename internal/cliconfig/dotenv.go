package cliconfig

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables already set by the parent process always win;
// variables the file introduced are refreshed on every Load so edits
// show up on reload.
type EnvFile struct {
	path  string
	owned map[string]bool
}

// NewEnvFile returns a loader for path. An empty path disables loading.
func NewEnvFile(path string) *EnvFile {
	return &EnvFile{path: path, owned: make(map[string]bool)}
}

// Path returns the file being loaded.
func (e *EnvFile) Path() string {
	return e.path
}

// Load applies the file. A missing file is not an error and reports false.
func (e *EnvFile) Load() (bool, error) {
	if e.path == "" || !FileExists(e.path) {
		return false, nil
	}
	vars, err := godotenv.Read(e.path)
	if err != nil {
		return false, fmt.Errorf("env file %s: %w", e.path, err)
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set && !e.owned[k] {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return false, fmt.Errorf("env file %s: set %s: %w", e.path, k, err)
		}
		e.owned[k] = true
	}
	return true, nil
}
