package report

import (
	"strings"
	"unicode"
)

const maxCaptionRunes = 300

// CleanCaption normalizes a raw caption for display: hashtags and mention
// noise go, symbol runes (emoji and friends) go, whitespace collapses, and
// very long captions are cut at a word boundary.
func CleanCaption(caption string) string {
	if caption == "" {
		return ""
	}

	var words []string
	for _, word := range strings.Fields(caption) {
		if strings.HasPrefix(word, "#") {
			continue
		}
		cleaned := strings.Map(func(r rune) rune {
			if unicode.Is(unicode.So, r) || unicode.Is(unicode.Sk, r) {
				return -1
			}
			if !unicode.IsPrint(r) {
				return -1
			}
			return r
		}, word)
		if cleaned == "" {
			continue
		}
		words = append(words, cleaned)
	}

	out := strings.Join(words, " ")
	if len([]rune(out)) <= maxCaptionRunes {
		return out
	}

	runes := []rune(out)
	cut := string(runes[:maxCaptionRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
