package ingest

import (
	"math"
	"strings"
	"unicode"
)

// wpmAverage is the average adult reading speed in words per minute for
// general prose.
const wpmAverage = 200

// CalculateReadingTime estimates reading time in minutes for the given text.
// Returns a minimum of 1 minute for non-empty text and 0 for empty text.
func CalculateReadingTime(text string) int {
	words := countWords(text)
	if words == 0 {
		return 0
	}

	minutes := math.Ceil(float64(words) / wpmAverage)
	if minutes < 1 {
		minutes = 1
	}
	return int(minutes)
}

// countWords counts whitespace- and punctuation-delimited words in the text.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"'()[]{}—–-", r) {
			if inWord {
				count++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}
