package extraction_test

import (
	"reflect"
	"testing"

	"github.com/reqsmith/casegen/internal/extraction"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single paragraph",
			text: "The system shall respond within 100ms.",
			want: []string{"The system shall respond within 100ms."},
		},
		{
			name: "blank line separates blocks",
			text: "First requirement.\n\nSecond requirement.",
			want: []string{"First requirement.", "Second requirement."},
		},
		{
			name: "wrapped lines joined with spaces",
			text: "The system shall respond\nwithin 100ms.\n\nSecond requirement.",
			want: []string{"The system shall respond within 100ms.", "Second requirement."},
		},
		{
			name: "windows line endings",
			text: "First requirement.\r\n\r\nSecond requirement.",
			want: []string{"First requirement.", "Second requirement."},
		},
		{
			name: "empty blocks skipped",
			text: "First requirement.\n\n\n\n   \n\nSecond requirement.",
			want: []string{"First requirement.", "Second requirement."},
		},
		{
			name: "leading and trailing whitespace trimmed",
			text: "  First requirement.  \n\n  Second requirement.  ",
			want: []string{"First requirement.", "Second requirement."},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\n \t \n\n  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extraction.SplitParagraphs(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitParagraphs() = %v, want %v", got, tt.want)
			}
		})
	}
}
