// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package window selects the part of a screenshot's OCR output that holds
// the action list: everything after the "ACTION" column header and before
// the trailing "Select" button. UI chrome outside that range is discarded.
package window

import "github.com/pdiddy/ocr-actions/pkg/types"

const (
	// StartMarker is the column header preceding the action list.
	StartMarker = "ACTION"
	// EndMarker is the button text following the action list.
	EndMarker = "Select"
)

// Select returns the window of fragments bounded by the first StartMarker
// and the last EndMarker. Markers are matched on exact text and are not part
// of the window. A missing start marker leaves the front untrimmed; a missing
// end marker leaves the back untrimmed.
func Select(fragments []types.Fragment) types.Window {
	start, end := Bounds(fragments)
	if end < start {
		end = start
	}
	return types.Window{
		Start:     start,
		End:       end,
		Fragments: fragments[start:end:end],
	}
}

// Bounds returns the raw [start, end) indexes Select would use.
func Bounds(fragments []types.Fragment) (start, end int) {
	start, end = 0, len(fragments)

	for i, f := range fragments {
		if f.Text == StartMarker {
			start = i + 1
			break
		}
	}

	for i := len(fragments) - 1; i >= 0; i-- {
		if fragments[i].Text == EndMarker {
			end = i
			break
		}
	}

	return start, end
}
