// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

// CheckImage reads the header of the file at path and reports an error if
// it is not a decodable, non-empty image.
func CheckImage(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("decoding image header of %s: %w", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return cfg, fmt.Errorf("%s image %s has no pixels", format, path)
	}
	return cfg, nil
}

// Checked wraps r so files that are not readable images fail before the
// backend is invoked.
func Checked(r Recognizer) Recognizer {
	return RecognizerFunc(func(ctx context.Context, imagePath string) ([]types.Fragment, error) {
		if _, err := CheckImage(imagePath); err != nil {
			return nil, err
		}
		return r.Recognize(ctx, imagePath)
	})
}
