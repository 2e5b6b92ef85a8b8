package pressroom

import (
	"strconv"
	"strings"
)

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 225

// ReadingTimeEstimator estimates how long article content takes to read.
type ReadingTimeEstimator interface {
	// Estimate returns whole minutes, never less than one.
	Estimate(content string) int
}

// CountWords counts whitespace-separated tokens in plain text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes converts a word count into minutes, rounding up.
// The result is at least one.
func ReadingMinutes(words int) int {
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(1, minutes)
}

// FormatReadingTime renders minutes for display, e.g. "3 min read".
func FormatReadingTime(minutes int) string {
	if minutes == 1 {
		return "1 min read"
	}
	return strconv.Itoa(minutes) + " min read"
}
