package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/bananascale/internal/domain"
)

func TestPublisher_Publish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banana_cropped_7.png")
	if err := os.WriteFile(path, []byte("image-bytes"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	uploader := &fakeUploader{}
	creator := &fakeCreator{}
	p := NewPublisher(uploader, creator, &recordingLogger{})

	result, err := p.Publish(context.Background(), "caption", path)
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if result.MediaID != "media-1" || result.PostID != "post-1" {
		t.Errorf("result = %+v", result)
	}
	if string(uploader.data) != "image-bytes" || uploader.filename != "banana_cropped_7.png" {
		t.Errorf("uploaded %s %q", uploader.filename, uploader.data)
	}
	if creator.text != "caption" {
		t.Errorf("post text = %q", creator.text)
	}
}

func TestPublisher_MissingImage(t *testing.T) {
	uploader := &fakeUploader{}
	p := NewPublisher(uploader, &fakeCreator{}, &recordingLogger{})

	_, err := p.Publish(context.Background(), "caption", filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, domain.ErrPublish) {
		t.Fatalf("error = %v, want ErrPublish", err)
	}
	if uploader.calls != 0 {
		t.Errorf("upload calls = %d, want 0", uploader.calls)
	}
}

func TestPublisher_PostFailureKeepsMediaID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	p := NewPublisher(&fakeUploader{}, &fakeCreator{err: errPlatform}, &recordingLogger{})
	result, err := p.Publish(context.Background(), "caption", path)
	if !errors.Is(err, domain.ErrPublish) || !errors.Is(err, errPlatform) {
		t.Fatalf("error = %v, want ErrPublish wrapping platform error", err)
	}
	if result.MediaID != "media-1" {
		t.Errorf("MediaID = %q, want media-1", result.MediaID)
	}
}

