package document

import (
	"regexp"
	"strings"
)

var (
	fencedCode   = regexp.MustCompile("(?s)```.*?```")
	listMarker   = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	markdownMark = strings.NewReplacer("`", "", "**", "", "*", "", "__", "", "_", "", "~~", "", "#", "", ">", "")
)

// countWords counts the words of a markdown body, ignoring fenced code and
// formatting marks
func countWords(markdown string) int {
	text := fencedCode.ReplaceAllString(markdown, " ")
	text = listMarker.ReplaceAllString(text, "")
	text = markdownMark.Replace(text)

	count := 0
	for _, word := range strings.Fields(text) {
		if strings.Trim(word, "-") != "" {
			count++
		}
	}
	return count
}
