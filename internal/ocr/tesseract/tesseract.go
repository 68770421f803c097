// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tesseract implements ocr.Recognizer on the gosseract client
// (cgo bindings to libtesseract).
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/pdiddy/ocr-actions/internal/ocr"
	"github.com/pdiddy/ocr-actions/pkg/types"
)

// Engine recognizes images with an in-process tesseract client. A fresh
// client is created per call, so one Engine is safe for concurrent use.
type Engine struct {
	languages     []string
	level         gosseract.PageIteratorLevel
	clientFactory func() *gosseract.Client
}

// New constructs an engine for cfg.
func New(cfg types.OCRConfig) (*Engine, error) {
	level, err := ocr.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return &Engine{
		languages:     cfg.Languages,
		level:         iteratorLevel(level),
		clientFactory: gosseract.NewClient,
	}, nil
}

// Recognize implements ocr.Recognizer. Tesseract itself cannot be
// interrupted; ctx is checked before the client starts.
func (e *Engine) Recognize(ctx context.Context, imagePath string) ([]types.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image %s: %w", imagePath, err)
	}
	boxes, err := c.GetBoundingBoxes(e.level)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", imagePath, err)
	}
	return toFragments(boxes), nil
}

func toFragments(boxes []gosseract.BoundingBox) []types.Fragment {
	frags := make([]types.Fragment, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		frags = append(frags, types.Fragment{
			Region: types.Region{
				X:      b.Box.Min.X,
				Y:      b.Box.Min.Y,
				Width:  b.Box.Dx(),
				Height: b.Box.Dy(),
			},
			Text:       text,
			Confidence: b.Confidence / 100,
		})
	}
	return frags
}

func iteratorLevel(l ocr.Level) gosseract.PageIteratorLevel {
	switch l {
	case ocr.LevelWord:
		return gosseract.RIL_WORD
	case ocr.LevelBlock:
		return gosseract.RIL_BLOCK
	default:
		return gosseract.RIL_TEXTLINE
	}
}
