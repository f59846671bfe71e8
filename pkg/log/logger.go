package log

import "time"

// Logger is the sink for bananascale's activity output. The bot writes one
// Info (or Error) line per run; adapters use Debug for detail and Warn for
// conditions that do not fail a run.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key of a log line, such as "percent" or "post_id".
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Float64 is used for the raw year fraction next to the rounded percent.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Time records instants such as the scheduler's next firing.
func Time(key string, value time.Time) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err stores err under "error". A nil err is kept and rendered as null.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Any passes value through to the backend unchanged; cron's key/value
// pairs arrive this way.
func Any(key string, value interface{}) Field { return Field{Key: key, Value: value} }
