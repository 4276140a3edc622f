package site

import (
	"fmt"
	"hash/fnv"
)

// Palette is the site's design colors, derived deterministically from the
// site keyword so every deployment of the template gets a stable, distinct
// look without any stored state.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

func NewPalette(keyword string) Palette {
	h := fnv.New32a()
	h.Write([]byte(keyword))
	hue := float64(h.Sum32() % 360)

	return Palette{
		Primary:    hslHex(hue, 0.65, 0.45),
		Secondary:  hslHex(hue, 0.45, 0.30),
		Accent:     hslHex(float64(int(hue+150)%360), 0.60, 0.50),
		Background: hslHex(hue, 0.25, 0.96),
	}
}

// CSS renders the palette as custom properties on :root.
func (p Palette) CSS() string {
	return fmt.Sprintf(":root {\n"+
		"  --color-primary: %s;\n"+
		"  --color-secondary: %s;\n"+
		"  --color-accent: %s;\n"+
		"  --color-background: %s;\n"+
		"}\n", p.Primary, p.Secondary, p.Accent, p.Background)
}

func hslHex(h, s, l float64) string {
	c := (1 - abs(2*l-1)) * s
	x := c * (1 - abs(mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return fmt.Sprintf("#%02x%02x%02x",
		int((r+m)*255+0.5), int((g+m)*255+0.5), int((b+m)*255+0.5))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func mod(v, d float64) float64 {
	for v >= d {
		v -= d
	}
	return v
}
