package notifier

// DefaultGlyph is shown for status colors missing from the table
const DefaultGlyph = "⚪"

// colorGlyphs maps Projects v2 single select option colors to a glyph.
// Keys are case-sensitive, GitHub sends them uppercase.
var colorGlyphs = map[string]string{
	"RED":         "🔴",
	"GREEN":       "💚",
	"BLUE":        "🔵",
	"YELLOW":      "🟡",
	"PURPLE":      "🟣",
	"PINK":        "💗",
	"ORANGE":      "🟠",
	"GRAY":        "⚫",
	"WHITE":       "⚪",
	"CYAN":        "🔷",
	"LIME":        "💚",
	"BROWN":       "🟤",
	"TEAL":        "🔹",
	"INDIGO":      "🔸",
	"VIOLET":      "🔺",
	"BLACK":       "⚫",
	"MAGENTA":     "💜",
	"AQUA":        "💠",
	"LAVENDER":    "💜",
	"MAROON":      "🟤",
	"OLIVE":       "🟢",
	"NAVY":        "🔵",
	"CRIMSON":     "🔴",
	"GOLD":        "🟡",
	"SILVER":      "⚪",
	"TURQUOISE":   "🔷",
	"CORAL":       "🔸",
	"TOMATO":      "🔴",
	"CHOCOLATE":   "🟤",
	"SLATE":       "⚫",
	"STEEL":       "⚪",
	"PLUM":        "🟣",
	"SALMON":      "🔸",
	"PERIWINKLE":  "🔷",
	"MINT":        "💚",
	"LEMON":       "🟡",
	"PEACH":       "🔸",
	"ROSE":        "💗",
	"LILAC":       "💜",
	"AUBURN":      "🟤",
	"CERULEAN":    "🔵",
	"VERMILION":   "🔴",
	"AQUAMARINE":  "💠",
	"BURGUNDY":    "🟤",
	"COBALT":      "🔵",
	"EMERALD":     "💚",
	"GARNET":      "🔴",
	"JADE":        "💚",
	"JASPER":      "🟤",
	"LAPIS":       "🔵",
	"MAUVE":       "💜",
	"OCHRE":       "🟡",
	"RUBY":        "🔴",
	"SAPPHIRE":    "🔵",
	"SCARLET":     "🔴",
	"TAN":         "🟤",
	"TAUPE":       "⚫",
	"TOPAZ":       "💠",
	"ULTRAMARINE": "🔵",
	"VERDIGRIS":   "💚",
	"VIRIDIAN":    "💚",
	"WHEAT":       "🟡",
	"ZINC":        "⚪",
	"ZIRCON":      "💠",
}

// Glyph resolves a status color to its display glyph, DefaultGlyph if unknown
func Glyph(color string) string {
	if glyph, ok := colorGlyphs[color]; ok {
		return glyph
	}
	return DefaultGlyph
}
