package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/bft-labs/bananascale/internal/domain"
	"github.com/bft-labs/bananascale/internal/ports"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

const jpegQuality = 95

// Config configures an EdgeWipe renderer.
type Config struct {
	// SourceImage is the image being revealed.
	SourceImage string

	// OutputDir receives one file per rendered percent.
	OutputDir string

	// Prefix starts every output file name.
	Prefix string

	// Format is FormatPNG or FormatJPEG.
	Format string

	// Mask fills the unrevealed columns.
	Mask color.Color
}

// EdgeWipe implements ports.ImageRenderer by revealing the source left to right.
type EdgeWipe struct {
	cfg    Config
	logger ports.Logger
}

// NewEdgeWipe creates an EdgeWipe renderer.
func NewEdgeWipe(cfg Config, logger ports.Logger) *EdgeWipe {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Format == "" {
		cfg.Format = FormatPNG
	}
	if cfg.Mask == nil {
		cfg.Mask = DefaultMaskColor
	}
	return &EdgeWipe{cfg: cfg, logger: logger}
}

// OutputPath returns the file an image for percent is written to.
func (e *EdgeWipe) OutputPath(percent int) string {
	ext := "png"
	if e.cfg.Format == FormatJPEG {
		ext = "jpg"
	}
	return filepath.Join(e.cfg.OutputDir, fmt.Sprintf("%s_%d.%s", e.cfg.Prefix, percent, ext))
}

// Render decodes the source image, applies the reveal and writes the result.
func (e *EdgeWipe) Render(ctx context.Context, percent int) (string, error) {
	src, err := decodeFile(e.cfg.SourceImage)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrSourceImage, e.cfg.SourceImage, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := Reveal(src, percent, e.cfg.Mask)
	path := e.OutputPath(percent)

	if err := e.write(path, out); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrRender, path, err)
	}

	e.logger.Debug("rendered reveal",
		ports.String("path", path),
		ports.Int("percent", percent),
		ports.Int("reveal_width", RevealWidth(out.Bounds().Dx(), percent)),
		ports.Int("width", out.Bounds().Dx()),
	)
	return path, nil
}

func (e *EdgeWipe) write(path string, img image.Image) error {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	switch e.cfg.Format {
	case FormatJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
