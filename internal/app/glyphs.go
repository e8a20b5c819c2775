package app

// cardGlyphs maps catalog image tokens to their terminal rendering. Tokens
// missing from the table fall back to the first letter so a data update
// never breaks the board.
var cardGlyphs = map[string]string{
	"cat":     "🐱",
	"dog":     "🐶",
	"rabbit":  "🐰",
	"lion":    "🦁",
	"bear":    "🐻",
	"fox":     "🦊",
	"owl":     "🦉",
	"frog":    "🐸",
	"duck":    "🦆",
	"apple":   "🍎",
	"banana":  "🍌",
	"cherry":  "🍒",
	"grape":   "🍇",
	"lemon":   "🍋",
	"peach":   "🍑",
	"pear":    "🍐",
	"plum":    "🫐",
	"car":     "🚗",
	"bus":     "🚌",
	"train":   "🚂",
	"plane":   "✈️",
	"boat":    "⛵",
	"bike":    "🚲",
	"truck":   "🚚",
	"tractor": "🚜",
}

func glyphFor(token string, ascii bool) string {
	if ascii {
		if token == "" {
			return "?"
		}
		return string([]rune(token)[0:1])
	}
	if g, ok := cardGlyphs[token]; ok {
		return g
	}
	if token == "" {
		return "?"
	}
	return string([]rune(token)[0:1])
}
