// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr defines the OCR capability the extraction pipeline consumes:
// a Recognizer turns one image file into an ordered sequence of fragments.
// Backends are constructed once and injected into the pipeline.
package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

// Recognizer runs OCR on an image and returns its fragments in reading
// order: top to bottom, left to right.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) ([]types.Fragment, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, imagePath string) ([]types.Fragment, error)

// Recognize calls f.
func (f RecognizerFunc) Recognize(ctx context.Context, imagePath string) ([]types.Fragment, error) {
	return f(ctx, imagePath)
}

// Failure reports that OCR failed for one image. The pipeline treats the
// image as having no text and moves on to the next one.
type Failure struct {
	Path string
	Err  error
}

func (e *Failure) Error() string {
	return fmt.Sprintf("ocr failed for %s: %v", e.Path, e.Err)
}

func (e *Failure) Unwrap() error { return e.Err }

// WithTimeout bounds every Recognize call on r by d. A call that runs past
// the deadline returns an error wrapping context.DeadlineExceeded; the
// backend keeps the context and is expected to stop on its own. A
// non-positive d returns r unchanged.
func WithTimeout(r Recognizer, d time.Duration) Recognizer {
	if d <= 0 {
		return r
	}
	return &timeoutRecognizer{next: r, timeout: d}
}

type timeoutRecognizer struct {
	next    Recognizer
	timeout time.Duration
}

type recognizeResult struct {
	fragments []types.Fragment
	err       error
}

func (t *timeoutRecognizer) Recognize(ctx context.Context, imagePath string) ([]types.Fragment, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan recognizeResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- recognizeResult{err: fmt.Errorf("recognizer panic: %v", r)}
			}
		}()
		frags, err := t.next.Recognize(ctx, imagePath)
		done <- recognizeResult{fragments: frags, err: err}
	}()

	select {
	case res := <-done:
		return res.fragments, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("recognizing %s after %v: %w", imagePath, t.timeout, ctx.Err())
	}
}

// Level is the granularity of the fragments a backend reports.
type Level string

const (
	LevelWord  Level = "word"
	LevelLine  Level = "line"
	LevelBlock Level = "block"
)

// ParseLevel validates s as a Level. The empty string selects LevelLine.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case "":
		return LevelLine, nil
	case LevelWord, LevelLine, LevelBlock:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown OCR level %q: want word, line, or block", s)
}
