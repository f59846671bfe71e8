package ports

import "context"

// MediaUploader uploads image bytes to the platform's media endpoint.
type MediaUploader interface {
	// UploadMedia uploads data and returns the platform media identifier.
	UploadMedia(ctx context.Context, filename string, data []byte) (string, error)
}

// PostCreator creates posts on the platform.
type PostCreator interface {
	// CreatePost publishes text with the given media attached and returns
	// the post identifier.
	CreatePost(ctx context.Context, text string, mediaIDs []string) (string, error)
}
