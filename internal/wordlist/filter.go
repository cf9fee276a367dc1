package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForText returns the filter applied to a built-in text.
func FilterForText(name string) FilterFunc {
	switch strings.ToLower(strings.TrimSuffix(name, textExt)) {
	case "english", "lorem":
		return filterLowerASCII
	default:
		return FilterPrintable
	}
}

func filterLowerASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// FilterPrintable rejects words containing control or non-printable runes,
// which the terminal cannot show as typing targets.
func FilterPrintable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
