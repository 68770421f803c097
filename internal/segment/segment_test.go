// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name          string
		in            string
		want          []types.Record
		wantMalformed []int
	}{
		{
			name: "three records",
			in:   "Rule A\nStep\nName one\nIf description: a\nx\nName two\nIf description: b\ny\nSelect\nz",
			want: []types.Record{
				{"Rule A", "If descriptionStep"},
				{"Name one", "If description: a", "x"},
				{"Name two", "If description: b", "y"},
			},
		},
		{
			name: "select inside a record is stripped",
			in:   "Name\nStep\nMore\nIf description: a\nSelect\nb\nc",
			want: []types.Record{
				{"Name", "If descriptionStep"},
				{"More", "If description: a", "b"},
			},
		},
		{
			name: "short header merged and rename rejoined",
			in: "Tag invoices\nAuto rule\nIf description contains invoice\nRename file\nto Invoice\n2024\nDone\n" +
				"Move receipts\nIf description has receipt\nMove to Receipts\nSelect",
			want: []types.Record{
				{"Tag invoices", "If descriptionAuto rule", "contains invoice", "Rename file to Invoice 2024", "Done"},
				{"Move receipts", "If descriptionhas receipt", "Move to Receipts"},
			},
		},
		{
			name: "split condition rejoined",
			in:   "Name\nStep\nLast\nIf description: amount\nover\nIf total\nend\nNext",
			want: []types.Record{
				{"Name", "If descriptionStep"},
				{"Last", "If description: amount over", "If total", "end"},
			},
		},
		{
			name: "no-break space inside delimiter",
			in:   "Name\nStep\nLast\nIf\u00a0description: a\nx\nNext",
			want: []types.Record{
				{"Name", "If descriptionStep"},
				{"Last", "If description: a", "x"},
			},
		},
		{
			name: "no delimiter yields one record",
			in:   "a\nb\nc",
			want: []types.Record{{"a", "If descriptionb"}},
		},
		{
			name:          "single line is malformed",
			in:            "lonely",
			want:          nil,
			wantMalformed: []int{0},
		},
		{
			name: "empty text",
			in:   "",
			want: nil,
		},
		{
			name: "whitespace only",
			in:   "  \n\t\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Segment(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantMalformed == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantMalformed, malformedIndexes(t, err))
		})
	}
}

// The seam of the second record is the "Select" button line, so stripping
// leaves it a single field and it is dropped.
func TestSegment_SelectSeamDropsRecord(t *testing.T) {
	in := "Header\nJunk\nIf description: X is true\nRename A to B\nExtra\nSelect\nIf description: Y is false\nFinal"

	got, err := Segment(in)

	require.Len(t, got, 1)
	assert.Equal(t, types.Record{"Header", "If descriptionJunk", ": X is true", "Rename A to B", "Extra"}, got[0])
	assert.Equal(t, []string{"Header", "If descriptionJunk"}, []string(got[0][:2]))

	var m *MalformedRecordError
	require.True(t, errors.As(err, &m))
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, []string{": Y is false"}, m.Fields)
}

func TestSegment_IncompleteFirstGroup(t *testing.T) {
	raw := [][]string{{"A", "B"}, {"If description C"}, {"D", "E", "F"}}

	groups := MergeIncompleteFirst(raw)
	groups = ReattachSeams(groups)
	groups = StripMarkers(groups)
	groups, err := RestoreDelimiter(groups)
	require.NoError(t, err)
	groups = ReassembleRename(groups)
	groups = ReassembleConditions(groups)

	assert.Equal(t, [][]string{
		{"A", "If descriptionB"},
		{"If description C", "If descriptionD", "E"},
	}, groups)
}

func TestSegment_Properties(t *testing.T) {
	inputs := []string{
		"Rule A\nStep\nName one\nIf description: a\nx\nName two\nIf description: b\ny\nSelect\nz",
		"Header\nJunk\nIf description: X is true\nRename A to B\nExtra\nSelect\nIf description: Y is false\nFinal",
		"Select\nSelect\nSelect\nIf description\nSelect\nSelect",
		"a\nSelect\nb\nc\nf description d\nRename e\nto\nf\ng\nSelect\nIF DESCRIPTION h\ni\nj",
		"If description\nIf description\nIf description",
	}

	for _, in := range inputs {
		records, _ := Segment(in)
		for i, r := range records {
			require.GreaterOrEqual(t, len(r), 2, "record %d of %q", i, in)
			assert.True(t, strings.HasPrefix(r[1], Delimiter), "record %d field 1 = %q", i, r[1])
			assert.NotContains(t, r, Marker)
		}
	}
}

func TestMalformed(t *testing.T) {
	a := &MalformedRecordError{Index: 0}
	b := &MalformedRecordError{Index: 3}

	assert.Nil(t, Malformed(nil))
	assert.Equal(t, []*MalformedRecordError{a}, Malformed(a))
	assert.Equal(t, []*MalformedRecordError{a, b}, Malformed(errors.Join(a, errors.New("other"), b)))
	assert.Nil(t, Malformed(errors.New("other")))
}
