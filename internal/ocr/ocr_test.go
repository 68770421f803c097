// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

func TestWithTimeout(t *testing.T) {
	fast := RecognizerFunc(func(ctx context.Context, path string) ([]types.Fragment, error) {
		return []types.Fragment{{Text: path}}, nil
	})
	stuck := RecognizerFunc(func(ctx context.Context, path string) ([]types.Fragment, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	t.Run("fast call returns result", func(t *testing.T) {
		got, err := WithTimeout(fast, time.Second).Recognize(context.Background(), "a.png")
		require.NoError(t, err)
		assert.Equal(t, []types.Fragment{{Text: "a.png"}}, got)
	})

	t.Run("stuck call times out", func(t *testing.T) {
		_, err := WithTimeout(stuck, 10*time.Millisecond).Recognize(context.Background(), "b.png")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "b.png")
	})

	t.Run("panic becomes an error", func(t *testing.T) {
		panicky := RecognizerFunc(func(ctx context.Context, path string) ([]types.Fragment, error) {
			panic("leptonica: bad header")
		})
		got, err := WithTimeout(panicky, time.Second).Recognize(context.Background(), "c.png")
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "recognizer panic: leptonica: bad header")
	})

	t.Run("zero timeout returns recognizer unchanged", func(t *testing.T) {
		r := WithTimeout(fast, 0)
		_, isTimeout := r.(*timeoutRecognizer)
		assert.False(t, isTimeout)
	})
}

func TestFailure(t *testing.T) {
	cause := errors.New("unsupported image format")
	var err error = &Failure{Path: "02.png", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "ocr failed for 02.png: unsupported image format", err.Error())

	var f *Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, "02.png", f.Path)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: LevelLine},
		{in: "word", want: LevelWord},
		{in: "line", want: LevelLine},
		{in: "block", want: LevelBlock},
		{in: "LINE", wantErr: true},
		{in: "symbol", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
