package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	testCases := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{name: "fits", in: "Oil change", width: 32, want: []string{"Oil change"}},
		{name: "breaks on spaces", in: "full body wash and wax", width: 10, want: []string{"full body", "wash and", "wax"}},
		{name: "splits long words", in: "ABCDEFGHIJKL", width: 5, want: []string{"ABCDE", "FGHIJ", "KL"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrap(tc.in, tc.width))
		})
	}
}

func TestItemLineTruncatesName(t *testing.T) {
	doc := NewDocument(20)
	doc.ItemLine("Synthetic engine oil 5W-30", "1,250.00")

	out := doc.Bytes()
	line := string(out[2 : len(out)-1])
	assert.Len(t, []rune(line), 20)
	assert.Equal(t, "Synthetic.. 1,250.00", line)
}

func TestKeyValuePadsToWidth(t *testing.T) {
	doc := NewDocument(16)
	doc.KeyValue("Total", "99.00")

	assert.True(t, bytes.HasSuffix(doc.Bytes(), []byte("Total"+strings.Repeat(" ", 6)+"99.00\n")))
}
