// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

// fixtureSuffix is appended to an image path to name its fragment fixture.
const fixtureSuffix = ".fragments.yaml"

// Fixture is the on-disk form of one image's recognized fragments.
type Fixture struct {
	Image     string           `yaml:"image"`
	Fragments []types.Fragment `yaml:"fragments"`
}

// FixturePath returns the sidecar fixture path for imagePath.
func FixturePath(imagePath string) string {
	return imagePath + fixtureSuffix
}

// FixtureRecognizer replays fragments previously recorded next to each
// image, so extraction can be re-run without an OCR engine.
type FixtureRecognizer struct{}

// Recognize reads the fixture for imagePath.
func (FixtureRecognizer) Recognize(ctx context.Context, imagePath string) ([]types.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := FixturePath(imagePath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return fx.Fragments, nil
}

// WriteFixture records fragments for imagePath in its sidecar fixture.
func WriteFixture(imagePath string, fragments []types.Fragment) error {
	data, err := yaml.Marshal(Fixture{Image: imagePath, Fragments: fragments})
	if err != nil {
		return fmt.Errorf("marshaling fixture: %w", err)
	}
	path := FixturePath(imagePath)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing fixture %s: %w", path, err)
	}
	return nil
}

// Recording wraps r so every successful recognition is also written to the
// image's fixture. A failed write fails the call.
func Recording(r Recognizer) Recognizer {
	return RecognizerFunc(func(ctx context.Context, imagePath string) ([]types.Fragment, error) {
		frags, err := r.Recognize(ctx, imagePath)
		if err != nil {
			return nil, err
		}
		if err := WriteFixture(imagePath, frags); err != nil {
			return nil, err
		}
		return frags, nil
	})
}
