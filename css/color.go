package css

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// named is a small palette of CSS color keywords.
//
// https://developer.mozilla.org/en-US/docs/Web/CSS/named-color
var named = map[string]color.RGBA{
	"black":       {0, 0, 0, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0, 0, 0xff},
	"green":       {0, 0x80, 0, 0xff},
	"lime":        {0, 0xff, 0, 0xff},
	"blue":        {0, 0, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0, 0xff},
	"orange":      {0xff, 0xa5, 0, 0xff},
	"purple":      {0x80, 0, 0x80, 0xff},
	"gray":        {0x80, 0x80, 0x80, 0xff},
	"grey":        {0x80, 0x80, 0x80, 0xff},
	"silver":      {0xc0, 0xc0, 0xc0, 0xff},
	"navy":        {0, 0, 0x80, 0xff},
	"teal":        {0, 0x80, 0x80, 0xff},
	"maroon":      {0x80, 0, 0, 0xff},
	"powderblue":  {0xb0, 0xe0, 0xe6, 0xff},
	"transparent": {0, 0, 0, 0},
}

// Color interprets a property as a color, either a color keyword or a color
// in hex notation ("#fff", "#ffffff", with optional alpha). Keyword
// "currentcolor" and the inheritence keywords yield a nil color.
func (p Property) Color() (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	switch s {
	case "currentcolor", "inherit", "initial", "unset":
		return nil, nil
	}
	if strings.HasPrefix(s, "#") {
		return hexColor(s[1:])
	}
	if c, ok := named[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("not a color: %q", string(p))
}

func hexColor(h string) (color.Color, error) {
	orig := h
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("not a hex color: #%s", orig)
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("not a hex color: #%s", orig)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// ColorString returns a color in hex notation, "#rrggbb" or "#rrggbbaa" for
// translucent colors.
func ColorString(c color.Color) string {
	if c == nil {
		return "currentcolor"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
