// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/ocr-actions/internal/container"
	"github.com/pdiddy/ocr-actions/pkg/types"
)

// DefaultImage is the container image used when none is configured. Its
// entrypoint must be the tesseract binary.
const DefaultImage = "tesseract:latest"

// ContainerRecognizer runs tesseract inside a container, piping the image
// on stdin and parsing TSV from stdout. It depends on a container.Runtime
// (docker or podman) injected at construction time.
type ContainerRecognizer struct {
	runtime   container.Runtime
	image     string
	languages []string
	level     Level
}

// NewContainerRecognizer creates a recognizer for cfg. It verifies that the
// image exists locally before returning.
func NewContainerRecognizer(rt container.Runtime, cfg types.OCRConfig) (*ContainerRecognizer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	image := cfg.Image
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("tesseract image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerRecognizer{
		runtime:   rt,
		image:     image,
		languages: cfg.Languages,
		level:     level,
	}, nil
}

// Recognize implements Recognizer.
func (c *ContainerRecognizer) Recognize(ctx context.Context, imagePath string) ([]types.Fragment, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", imagePath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, c.args(), f, &out); err != nil {
		return nil, fmt.Errorf("recognizing %s: %w", imagePath, err)
	}
	frags, err := ParseTSV(&out, c.level)
	if err != nil {
		return nil, fmt.Errorf("parsing tesseract output for %s: %w", imagePath, err)
	}
	return frags, nil
}

func (c *ContainerRecognizer) args() []string {
	args := []string{"stdin", "stdout"}
	if len(c.languages) > 0 {
		args = append(args, "-l", strings.Join(c.languages, "+"))
	}
	return append(args, "tsv")
}
