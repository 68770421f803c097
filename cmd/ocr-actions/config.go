// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/ocr-actions/internal/inputs"
	"github.com/pdiddy/ocr-actions/internal/ocr"
	"github.com/pdiddy/ocr-actions/internal/render"
	"github.com/pdiddy/ocr-actions/pkg/types"
)

const (
	defaultDataDir = ".ocr-actions"
	defaultTimeout = 60 * time.Second
)

// setDefaults registers the default value of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ocr.engine", string(types.EngineTesseract))
	v.SetDefault("ocr.languages", []string{"eng"})
	v.SetDefault("ocr.level", string(ocr.LevelLine))
	v.SetDefault("ocr.image", ocr.DefaultImage)
	v.SetDefault("ocr.timeout", defaultTimeout)
	v.SetDefault("batch.workers", 1)
	v.SetDefault("batch.extensions", inputs.DefaultExtensions)
	v.SetDefault("batch.record_fixtures", false)
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.data_dir", defaultDataDir)
	v.SetDefault("format", string(types.OutputText))
}

// loadPipelineConfig reads and validates the pipeline configuration from
// flags, environment, and config file, in viper's precedence order.
func loadPipelineConfig(v *viper.Viper) (types.PipelineConfig, error) {
	cfg := types.PipelineConfig{
		OCR: types.OCRConfig{
			Engine:    types.OCREngine(v.GetString("ocr.engine")),
			Languages: v.GetStringSlice("ocr.languages"),
			Level:     v.GetString("ocr.level"),
			Image:     v.GetString("ocr.image"),
			Timeout:   v.GetDuration("ocr.timeout"),
		},
		Batch: types.BatchConfig{
			Workers:        v.GetInt("batch.workers"),
			Extensions:     v.GetStringSlice("batch.extensions"),
			RecordFixtures: v.GetBool("batch.record_fixtures"),
		},
		Store: types.StoreConfig{
			Enabled: v.GetBool("store.enabled"),
			DataDir: v.GetString("store.data_dir"),
		},
	}

	switch cfg.OCR.Engine {
	case types.EngineTesseract, types.EngineContainer, types.EngineFixture:
	default:
		return cfg, fmt.Errorf("unknown OCR engine %q: want tesseract, container, or fixture", cfg.OCR.Engine)
	}
	if _, err := ocr.ParseLevel(cfg.OCR.Level); err != nil {
		return cfg, err
	}
	if cfg.OCR.Timeout < 0 {
		return cfg, fmt.Errorf("OCR timeout must not be negative, got %v", cfg.OCR.Timeout)
	}
	if cfg.Batch.Workers < 1 {
		return cfg, fmt.Errorf("workers must be at least 1, got %d", cfg.Batch.Workers)
	}
	format, err := render.ParseFormat(v.GetString("format"))
	if err != nil {
		return cfg, err
	}
	cfg.Format = format
	return cfg, nil
}
