package pressroom_test

import (
	"testing"

	"github.com/fwojciec/pressroom"
	"github.com/stretchr/testify/assert"
)

func TestReadingMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{225, 1},
		{226, 2},
		{450, 2},
		{451, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pressroom.ReadingMinutes(tt.words), "words=%d", tt.words)
	}
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, pressroom.CountWords(""))
	assert.Equal(t, 0, pressroom.CountWords("  \n\t "))
	assert.Equal(t, 3, pressroom.CountWords("  one\ntwo   three "))
}

func TestFormatReadingTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 min read", pressroom.FormatReadingTime(1))
	assert.Equal(t, "7 min read", pressroom.FormatReadingTime(7))
}
