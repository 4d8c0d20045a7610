package style

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#rrggbb", "#rgb" or a tcell/W3C color name
// Empty string and "default" map to tcell.ColorDefault
func ParseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("color %q: %w", s, err)
		}
		return fromColorful(c), nil
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("color %q: unknown name", s)
	}
	return c, nil
}

// Blend mixes a toward b by t in [0,1] using Lab interpolation
// A default color on either side yields the other side unchanged
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if a == tcell.ColorDefault {
		return b
	}
	if b == tcell.ColorDefault {
		return a
	}
	t = min(max(t, 0), 1)
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t).Clamped())
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
