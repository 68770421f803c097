// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs screenshots through OCR, window selection, and
// record segmentation. Each image is processed independently: an OCR
// failure on one image leaves it with no records and never affects the
// others.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/ocr-actions/internal/ocr"
	"github.com/pdiddy/ocr-actions/internal/segment"
	"github.com/pdiddy/ocr-actions/internal/window"
	"github.com/pdiddy/ocr-actions/pkg/types"
)

// Pipeline holds the injected OCR capability and batch settings.
type Pipeline struct {
	recognizer ocr.Recognizer
	logger     *zap.Logger
	workers    int
}

// New creates a pipeline. A nil logger discards log output; fewer than one
// worker means one.
func New(rec ocr.Recognizer, logger *zap.Logger, cfg types.BatchConfig) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{recognizer: rec, logger: logger, workers: workers}
}

// RawText recognizes imagePath and returns the newline-joined text of its
// extraction window. Any OCR fault, including a panic in the backend, is
// logged and returned as an *ocr.Failure.
func (p *Pipeline) RawText(ctx context.Context, imagePath string) (string, error) {
	frags, err := p.recognize(ctx, imagePath)
	if err != nil {
		p.logger.Error("OCR failed", zap.String("image", imagePath), zap.Error(err))
		return "", &ocr.Failure{Path: imagePath, Err: err}
	}

	w := window.Select(frags)
	p.logger.Debug("Selected window",
		zap.String("image", imagePath),
		zap.Int("fragments", len(frags)),
		zap.Int("start", w.Start),
		zap.Int("end", w.End))
	return w.Text(), nil
}

func (p *Pipeline) recognize(ctx context.Context, imagePath string) (frags []types.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recognizer panic: %v", r)
		}
	}()
	return p.recognizer.Recognize(ctx, imagePath)
}

// ProcessImage extracts the structured records of one screenshot. Groups
// dropped as malformed are logged as warnings and counted in Dropped.
func (p *Pipeline) ProcessImage(ctx context.Context, imagePath string) types.ImageResult {
	text, err := p.RawText(ctx, imagePath)
	if err != nil {
		return types.ImageResult{Path: imagePath, Err: err}
	}

	records, err := segment.Segment(text)
	malformed := segment.Malformed(err)
	for _, m := range malformed {
		p.logger.Warn("Dropped malformed record",
			zap.String("image", imagePath),
			zap.Int("index", m.Index),
			zap.Strings("fields", m.Fields))
	}
	p.logger.Debug("Segmented image",
		zap.String("image", imagePath),
		zap.Int("records", len(records)),
		zap.Int("dropped", len(malformed)))

	return types.ImageResult{Path: imagePath, Records: records, Dropped: len(malformed)}
}

// BatchResult holds the outcome of a batch run, with Images in input order.
type BatchResult struct {
	Images    []types.ImageResult
	Extracted int
	Failed    int
	Dropped   int
}

// Total returns the number of images processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether OCR failed for any image.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Records returns the number of records extracted across all images.
func (r BatchResult) Records() int {
	n := 0
	for _, img := range r.Images {
		n += len(img.Records)
	}
	return n
}

// ProcessBatch processes imagePaths with up to the configured number of
// workers, printing per-image status to w in input order and returning a
// summary. Images are independent, so the worker count changes throughput
// only, never per-image output.
func (p *Pipeline) ProcessBatch(ctx context.Context, imagePaths []string, w io.Writer) BatchResult {
	images := make([]types.ImageResult, len(imagePaths))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, path := range imagePaths {
		i, path := i, path
		g.Go(func() error {
			images[i] = p.ProcessImage(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{Images: images}
	for _, img := range images {
		if img.Failed() {
			fmt.Fprintf(w, "failed:    %s (%v)\n", img.Path, img.Err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "extracted: %s (%d records)\n", img.Path, len(img.Records))
		result.Extracted++
		result.Dropped += img.Dropped
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed, %d records, %d dropped (total: %d)\n",
		result.Extracted, result.Failed, result.Records(), result.Dropped, result.Total())
	return result
}
