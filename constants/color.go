package constants

import (
	"strings"
)

// Color is the closed vehicle-color vocabulary accepted by the order schema.
type Color string

const (
	ColorUnknown Color = "Unknown"
	ColorBlack   Color = "Black"
	ColorWhite   Color = "White"
	ColorGrey    Color = "Grey"
	ColorBlue    Color = "Blue"
	ColorRed     Color = "Red"
	ColorYellow  Color = "Yellow"
	ColorGreen   Color = "Green"
	ColorBrown   Color = "Brown"
)

var allColors = []Color{
	ColorUnknown,
	ColorBlack,
	ColorWhite,
	ColorGrey,
	ColorBlue,
	ColorRed,
	ColorYellow,
	ColorGreen,
	ColorBrown,
}

func ColorsAsStringSlice() []string {
	result := make([]string, len(allColors))
	for i, c := range allColors {
		result[i] = string(c)
	}
	return result
}

// CanonicalizeColor maps free-form color text (including the Spanish captions
// used by the source template) onto the closed vocabulary.
func CanonicalizeColor(input string) (Color, bool) {
	if input == "" {
		return ColorUnknown, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Color{
		"negro":    ColorBlack,
		"blanco":   ColorWhite,
		"gris":     ColorGrey,
		"plata":    ColorGrey,
		"azul":     ColorBlue,
		"rojo":     ColorRed,
		"amarillo": ColorYellow,
		"verde":    ColorGreen,
		"marron":   ColorBrown,
		"marrón":   ColorBrown,
		"gray":     ColorGrey,
	}

	if c, ok := synonyms[normalized]; ok {
		return c, true
	}

	// check if it matches any color string
	for _, c := range allColors {
		if normalized == strings.ToLower(string(c)) {
			return c, true
		}
	}

	return ColorUnknown, false
}
