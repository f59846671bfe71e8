package domain

import "errors"

// Domain errors represent error conditions in the bananascale domain.
// These errors are wrapped by adapters and can be checked with errors.Is.
var (
	// ErrSourceImage is returned when the source image cannot be read or decoded.
	// No post is attempted after this error.
	ErrSourceImage = errors.New("bananascale: source image unreadable")

	// ErrRender is returned when the revealed image cannot be written.
	ErrRender = errors.New("bananascale: render failed")

	// ErrPublish is returned when the media upload or post creation fails.
	// State is not advanced, so the next invocation retries the same percent.
	ErrPublish = errors.New("bananascale: publish failed")

	// ErrStatePersist is returned when the state file cannot be written after
	// a successful post. The next run may post the same percent again.
	ErrStatePersist = errors.New("bananascale: state not persisted")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("bananascale: invalid configuration")

	// ErrLockHeld is returned by a RunLock when another invocation holds it.
	ErrLockHeld = errors.New("bananascale: run lock held")
)
