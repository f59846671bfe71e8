package ports

import "context"

// ImageArchive keeps a copy of rendered images outside the local disk.
type ImageArchive interface {
	// Store uploads the file at path and returns the object location.
	Store(ctx context.Context, path string) (string, error)
}
