// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ocr-actions/internal/container"
	"github.com/pdiddy/ocr-actions/internal/inputs"
	"github.com/pdiddy/ocr-actions/internal/ocr"
	"github.com/pdiddy/ocr-actions/internal/ocr/tesseract"
	"github.com/pdiddy/ocr-actions/internal/pipeline"
	"github.com/pdiddy/ocr-actions/internal/render"
	"github.com/pdiddy/ocr-actions/internal/store"
	"github.com/pdiddy/ocr-actions/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [images, directories, or globs...]",
	Short: "Extract action records from screenshots",
	Long: `Extract runs OCR on each screenshot, keeps the text between the "ACTION"
header and the trailing "Select" button, and rebuilds the action records
from it. Records are written to stdout; per-image status goes to stderr.

An image whose OCR fails produces no records and does not stop the batch.
Use --pattern and --count to follow a numbered naming convention instead of
listing files, e.g. --pattern 'Pictures/0%d.png' --count 5.`,
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.String("engine", "", "OCR engine: tesseract, container, or fixture")
	f.StringSlice("lang", nil, "tesseract language codes (default eng)")
	f.String("level", "", "fragment granularity: word, line, or block (default line)")
	f.String("image", "", "container image for the container engine (default tesseract:latest)")
	f.Duration("timeout", 0, "per-image OCR timeout (default 60s)")
	f.Int("workers", 0, "number of images processed concurrently (default 1)")
	f.StringSlice("ext", nil, "image extensions picked up from directories and globs")
	f.String("pattern", "", "printf pattern for numbered image paths")
	f.Int("count", 0, "number of numbered image paths to generate with --pattern")
	f.StringP("format", "f", "", "output format: text, json, or yaml (default text)")
	f.StringP("output", "o", "", "write records to this file instead of stdout")
	f.Bool("store", false, "save the run to the record store")
	f.Bool("record-fixtures", false, "write each image's fragments to <image>.fragments.yaml")

	for key, flag := range map[string]string{
		"ocr.engine":            "engine",
		"ocr.languages":         "lang",
		"ocr.level":             "level",
		"ocr.image":             "image",
		"ocr.timeout":           "timeout",
		"batch.workers":         "workers",
		"batch.extensions":      "ext",
		"batch.record_fixtures": "record-fixtures",
		"store.enabled":         "store",
		"format":                "format",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(viper.GetViper())
	if err != nil {
		return err
	}

	paths, err := imagePaths(cmd, args, cfg.Batch)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images to process: provide files, directories, globs, or --pattern")
	}

	rec, err := newRecognizer(cfg.OCR)
	if err != nil {
		return err
	}
	if cfg.Batch.RecordFixtures && cfg.OCR.Engine != types.EngineFixture {
		rec = ocr.Recording(rec)
	}
	rec = ocr.WithTimeout(rec, cfg.OCR.Timeout)

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	logger.Info("Starting batch",
		zap.Int("images", len(paths)),
		zap.String("engine", string(cfg.OCR.Engine)),
		zap.Int("workers", cfg.Batch.Workers))

	ctx := cmd.Context()
	started := time.Now()
	p := pipeline.New(rec, logger, cfg.Batch)
	result := p.ProcessBatch(ctx, paths, cmd.ErrOrStderr())
	finished := time.Now()

	if err := render.Write(out, cfg.Format, result.Images); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	if cfg.Store.Enabled {
		if err := saveRun(ctx, cfg, store.Run{StartedAt: started, FinishedAt: finished, Engine: string(cfg.OCR.Engine)}, result, cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d image(s) failed OCR", result.Failed)
	}
	return nil
}

func imagePaths(cmd *cobra.Command, args []string, cfg types.BatchConfig) ([]string, error) {
	pattern, _ := cmd.Flags().GetString("pattern")
	if pattern == "" {
		return inputs.Expand(args, cfg.Extensions)
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("--pattern cannot be combined with image arguments")
	}
	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		return nil, fmt.Errorf("--pattern needs a positive --count")
	}
	return inputs.Numbered(pattern, count)
}

// newRecognizer constructs the configured OCR backend once per run. Live
// engines check the image header first; fixtures never read the image.
func newRecognizer(cfg types.OCRConfig) (ocr.Recognizer, error) {
	switch cfg.Engine {
	case types.EngineTesseract:
		e, err := tesseract.New(cfg)
		if err != nil {
			return nil, err
		}
		return ocr.Checked(e), nil
	case types.EngineContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		c, err := ocr.NewContainerRecognizer(rt, cfg)
		if err != nil {
			return nil, err
		}
		return ocr.Checked(c), nil
	case types.EngineFixture:
		return ocr.FixtureRecognizer{}, nil
	}
	return nil, fmt.Errorf("unknown OCR engine %q", cfg.Engine)
}

func saveRun(ctx context.Context, cfg types.PipelineConfig, run store.Run, result pipeline.BatchResult, w io.Writer) error {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	defer s.Close()

	id, err := s.SaveRun(ctx, run, result.Images)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	fmt.Fprintf(w, "stored run %s\n", id)
	return nil
}
