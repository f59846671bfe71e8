package ports

import "context"

// ImageRenderer produces the revealed image for a percent.
type ImageRenderer interface {
	// Render writes the image for percent and returns its path.
	// The same percent always maps to the same path.
	Render(ctx context.Context, percent int) (string, error)
}
