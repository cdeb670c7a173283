package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Glyph(t *testing.T) {
	for color, glyph := range colorGlyphs {
		assert.Equal(t, glyph, Glyph(color), color)
	}

	assert.Equal(t, "⚫", Glyph("GRAY"))
	assert.Equal(t, "🔵", Glyph("BLUE"))
	assert.Equal(t, "💚", Glyph("GREEN"))
}

func Test_GlyphFallsBackToDefault(t *testing.T) {
	for _, color := range []string{"", "green", "Blue", "NOT_A_COLOR", " RED"} {
		assert.Equal(t, DefaultGlyph, Glyph(color), "%q should resolve to the default glyph", color)
	}
}
