package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2/css"
)

// borderLightness is CIE-Lab lightness above which a swatch is hard to see
// on white background.
const borderLightness = 0.95

// RGBA is a color resolved to 8 bit sRGB channels.
type RGBA struct {
	R, G, B, A uint8
}

// Hex returns #rrggbb, or #rrggbbaa when color is not fully opaque.
func (c RGBA) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// RGBA resolves the color to numeric channels. It returns false for
// currentcolor and for values that did not come from Parse.
func (c Color) RGBA() (RGBA, bool) {
	switch c.Kind {
	case KindHex:
		return hexToRGBA(strings.TrimPrefix(c.Raw, "#"))
	case KindNamed:
		v, ok := namedColors[strings.ToLower(c.Raw)]
		if !ok {
			return RGBA{}, false
		}
		return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	case KindFunction:
		if len(c.args) < 3 {
			return RGBA{}, false
		}
		alpha := uint8(0xff)
		if len(c.args) == 4 {
			alpha = channel(c.args[3], 255)
		}
		switch c.Function {
		case "rgb", "rgba":
			return RGBA{
				R: channel(c.args[0], 1),
				G: channel(c.args[1], 1),
				B: channel(c.args[2], 1),
				A: alpha,
			}, true
		case "hsl", "hsla":
			h, _ := hueDegrees(c.args[0])
			s := clamp01(percentage(c.args[1]))
			l := clamp01(percentage(c.args[2]))
			r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
			return RGBA{R: r, G: g, B: b, A: alpha}, true
		}
	}
	return RGBA{}, false
}

// Hex returns resolved color in hex notation or empty string if color
// cannot be resolved.
func (c Color) Hex() string {
	v, ok := c.RGBA()
	if !ok {
		return ""
	}
	return v.Hex()
}

// NeedsBorder reports whether a swatch for raw color would blend with white
// background. Colors which cannot be resolved or are fully transparent never
// need a border.
func NeedsBorder(raw string) bool {
	c, err := Parse(raw)
	if err != nil {
		return false
	}
	v, ok := c.RGBA()
	if !ok || v.A == 0 {
		return false
	}
	l, _, _ := v.colorful().Lab()
	return l >= borderLightness
}

func hexToRGBA(digits string) (RGBA, bool) {
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGBA{}, false
	}
	switch len(digits) {
	case 3:
		return RGBA{R: nibble(v >> 8), G: nibble(v >> 4), B: nibble(v), A: 0xff}, true
	case 4:
		return RGBA{R: nibble(v >> 12), G: nibble(v >> 8), B: nibble(v >> 4), A: nibble(v)}, true
	case 6:
		return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
	case 8:
		return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	}
	return RGBA{}, false
}

// nibble expands single hex digit to byte: 0xa -> 0xaa.
func nibble(v uint64) uint8 {
	n := uint8(v & 0xf)
	return n<<4 | n
}

// channel converts number (multiplied by scale) or percentage to byte.
func channel(t token, scale float64) uint8 {
	var f float64
	switch t.tt {
	case css.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 64)
		if err != nil {
			return 0
		}
		f = v * 255 / 100
	case css.NumberToken:
		v, err := strconv.ParseFloat(t.data, 64)
		if err != nil {
			return 0
		}
		f = v * scale
	}
	return uint8(math.Round(math.Max(0, math.Min(255, f))))
}

// percentage returns percentage token value as fraction.
func percentage(t token) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 64)
	if err != nil {
		return 0
	}
	return v / 100
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

// hueDegrees converts hue (number or angle) to degrees in [0, 360).
func hueDegrees(t token) (float64, bool) {
	var (
		deg float64
		err error
	)
	switch t.tt {
	case css.NumberToken:
		deg, err = strconv.ParseFloat(t.data, 64)
	case css.DimensionToken:
		num, unit := splitDimension(t.data)
		deg, err = strconv.ParseFloat(num, 64)
		switch strings.ToLower(unit) {
		case "deg":
		case "rad":
			deg = deg * 180 / math.Pi
		case "grad":
			deg = deg * 0.9
		case "turn":
			deg = deg * 360
		default:
			return 0, false
		}
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg, true
}

func splitDimension(s string) (string, string) {
	i := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E')
	})
	if i < 0 {
		return s, ""
	}
	// exponent marker followed by a letter is a unit ("1em" is not 1e-something)
	if i > 0 && (s[i-1] == 'e' || s[i-1] == 'E') {
		i--
	}
	return s[:i], s[i:]
}
