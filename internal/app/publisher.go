package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/bananascale/internal/domain"
	"github.com/bft-labs/bananascale/internal/ports"
)

// Publisher uploads a rendered image and posts it with a caption.
// The two platform calls are separate capabilities so either can be swapped.
type Publisher struct {
	uploader ports.MediaUploader
	creator  ports.PostCreator
	logger   ports.Logger
}

// NewPublisher composes a media uploader and a post creator.
func NewPublisher(uploader ports.MediaUploader, creator ports.PostCreator, logger ports.Logger) *Publisher {
	return &Publisher{
		uploader: uploader,
		creator:  creator,
		logger:   logger,
	}
}

// Publish uploads imagePath, then creates a post referencing it.
// Every failure wraps domain.ErrPublish.
func (p *Publisher) Publish(ctx context.Context, caption, imagePath string) (domain.PublishResult, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("%w: read image: %v", domain.ErrPublish, err)
	}

	mediaID, err := p.uploader.UploadMedia(ctx, filepath.Base(imagePath), data)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("%w: upload media: %w", domain.ErrPublish, err)
	}

	postID, err := p.creator.CreatePost(ctx, caption, []string{mediaID})
	if err != nil {
		return domain.PublishResult{MediaID: mediaID}, fmt.Errorf("%w: create post: %w", domain.ErrPublish, err)
	}

	p.logger.Debug("published",
		ports.String("media_id", mediaID),
		ports.String("post_id", postID),
	)
	return domain.PublishResult{MediaID: mediaID, PostID: postID}, nil
}
