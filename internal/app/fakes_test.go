package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/bft-labs/bananascale/internal/domain"
	"github.com/bft-labs/bananascale/internal/ports"
)

// recordingLogger keeps every message for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (l *recordingLogger) add(level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: m})
}

func (l *recordingLogger) Debug(msg string, fields ...ports.Field) { l.add("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields ...ports.Field)  { l.add("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields ...ports.Field)  { l.add("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields ...ports.Field) { l.add("error", msg, fields) }

// atOrAbove returns entries logged at level or higher.
func (l *recordingLogger) atOrAbove(level string) []logEntry {
	rank := map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if rank[e.level] >= rank[level] {
			out = append(out, e)
		}
	}
	return out
}

// has reports whether msg was logged at any level.
func (l *recordingLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.msg == msg {
			return true
		}
	}
	return false
}

// memoryState implements ports.StateRepository in memory.
type memoryState struct {
	state   domain.State
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryState) Load(ctx context.Context) (domain.State, error) {
	return m.state, m.loadErr
}

func (m *memoryState) Save(ctx context.Context, st domain.State) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = st
	return nil
}

// fileRenderer writes a placeholder file per percent.
type fileRenderer struct {
	dir     string
	err     error
	renders []int
}

func (r *fileRenderer) Render(ctx context.Context, percent int) (string, error) {
	r.renders = append(r.renders, percent)
	if r.err != nil {
		return "", r.err
	}
	path := filepath.Join(r.dir, "banana_cropped_"+strconv.Itoa(percent)+".png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeUploader struct {
	calls    int
	filename string
	data     []byte
	err      error
}

func (f *fakeUploader) UploadMedia(ctx context.Context, filename string, data []byte) (string, error) {
	f.calls++
	f.filename = filename
	f.data = data
	if f.err != nil {
		return "", f.err
	}
	return "media-1", nil
}

type fakeCreator struct {
	calls    int
	text     string
	mediaIDs []string
	err      error
}

func (f *fakeCreator) CreatePost(ctx context.Context, text string, mediaIDs []string) (string, error) {
	f.calls++
	f.text = text
	f.mediaIDs = mediaIDs
	if f.err != nil {
		return "", f.err
	}
	return "post-1", nil
}

type fakeArchive struct {
	paths []string
	err   error
}

func (f *fakeArchive) Store(ctx context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return "", f.err
	}
	return "s3://bucket/" + filepath.Base(path), nil
}

type fakeLock struct {
	held     bool
	err      error
	acquired int
	released int
}

func (f *fakeLock) Acquire(ctx context.Context) (func(), error) {
	if f.held {
		return nil, domain.ErrLockHeld
	}
	if f.err != nil {
		return nil, f.err
	}
	f.acquired++
	return func() { f.released++ }, nil
}

var errPlatform = errors.New("503 service unavailable")
