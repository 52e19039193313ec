package extraction

import "strings"

// SplitParagraphs breaks document text into paragraph blocks on blank lines.
// Lines within a block are rejoined with single spaces and surrounding
// whitespace is dropped. Empty blocks are skipped.
func SplitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []string
	for _, block := range strings.Split(normalized, "\n\n") {
		lines := make([]string, 0)
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}

		if len(lines) == 0 {
			continue
		}

		blocks = append(blocks, strings.Join(lines, " "))
	}

	return blocks
}
