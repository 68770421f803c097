// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

func frags(texts ...string) []types.Fragment {
	out := make([]types.Fragment, len(texts))
	for i, t := range texts {
		out[i] = types.Fragment{Text: t, Confidence: 0.9}
	}
	return out
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		in        []types.Fragment
		wantStart int
		wantEnd   int
		wantText  string
	}{
		{
			name:      "both markers",
			in:        frags("Rules", "ACTION", "Rename", "If description x", "Select", "Footer"),
			wantStart: 2,
			wantEnd:   4,
			wantText:  "Rename\nIf description x",
		},
		{
			name:      "no markers keeps everything",
			in:        frags("a", "b", "c"),
			wantStart: 0,
			wantEnd:   3,
			wantText:  "a\nb\nc",
		},
		{
			name:      "start marker only",
			in:        frags("chrome", "ACTION", "a", "b"),
			wantStart: 2,
			wantEnd:   4,
			wantText:  "a\nb",
		},
		{
			name:      "end marker only",
			in:        frags("a", "b", "Select", "chrome"),
			wantStart: 0,
			wantEnd:   2,
			wantText:  "a\nb",
		},
		{
			name:      "first ACTION and last Select win",
			in:        frags("ACTION", "a", "ACTION", "Select", "b", "Select"),
			wantStart: 1,
			wantEnd:   5,
			wantText:  "a\nACTION\nSelect\nb",
		},
		{
			name:      "markers match exactly",
			in:        frags("action", "ACTIONS", "a", "select", "Select all"),
			wantStart: 0,
			wantEnd:   5,
			wantText:  "action\nACTIONS\na\nselect\nSelect all",
		},
		{
			name:      "end before start yields empty window",
			in:        frags("Select", "x", "ACTION", "y"),
			wantStart: 3,
			wantEnd:   3,
			wantText:  "",
		},
		{
			name:      "empty input",
			in:        nil,
			wantStart: 0,
			wantEnd:   0,
			wantText:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Select(tt.in)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			assert.Equal(t, tt.wantEnd-tt.wantStart, w.Len())
			assert.Equal(t, tt.wantText, w.Text())
		})
	}
}

func TestSelect_SingleMarkers(t *testing.T) {
	in := frags("x", "y", "ACTION", "p", "q", "r", "Select", "z")
	a, b := 2, 6

	w := Select(in)
	assert.Equal(t, in[a+1:b], w.Fragments)
}

func TestSelect_KeepsRegionAndConfidence(t *testing.T) {
	in := []types.Fragment{
		{Text: "ACTION"},
		{Text: "Rename", Region: types.Region{X: 4, Y: 8, Width: 40, Height: 12}, Confidence: 0.42},
	}
	w := Select(in)
	if assert.Len(t, w.Fragments, 1) {
		assert.Equal(t, types.Region{X: 4, Y: 8, Width: 40, Height: 12}, w.Fragments[0].Region)
		assert.InDelta(t, 0.42, w.Fragments[0].Confidence, 1e-9)
	}
}
