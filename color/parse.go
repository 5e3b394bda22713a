package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Kind is the textual form a color was written in.
type Kind int

const (
	KindUnknown Kind = iota
	KindHex
	KindNamed
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindHex:
		return "hex"
	case KindNamed:
		return "named"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Color is a recognized CSS color value.
type Color struct {
	Raw      string   // normalized text, this is what gets stored
	Kind     Kind     // form the color was written in
	Function string   // lower-cased function name (rgb, rgba, hsl, hsla) for KindFunction
	Args     []string // function arguments as written, alpha (if any) is last

	args []token
}

// ValidationError is returned by Parse for values outside of the supported
// color grammar.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid color %q: %s", e.Input, e.Reason)
}

func invalid(raw, format string, args ...any) error {
	return &ValidationError{Input: raw, Reason: fmt.Sprintf(format, args...)}
}

// Parse normalizes raw and checks it against the supported color grammar:
// hex (3, 4, 6 or 8 digits), CSS named colors, transparent, currentcolor,
// rgb()/rgba() and hsl()/hsla() in either comma or space separated syntax.
func Parse(raw string) (Color, error) {
	toks := tokenize(raw)
	c := Color{Raw: join(toks)}

	if len(toks) == 0 {
		return c, invalid(raw, "empty value")
	}

	first := toks[0]
	switch first.tt {
	case css.HashToken:
		if len(toks) != 1 {
			return c, invalid(raw, "unexpected %q after hex color", join(toks[1:]))
		}
		digits := strings.TrimPrefix(first.data, "#")
		if !isHexDigits(digits) {
			return c, invalid(raw, "bad hex color %q", first.data)
		}
		c.Kind = KindHex

	case css.IdentToken:
		if len(toks) != 1 {
			return c, invalid(raw, "unexpected %q after color name", join(toks[1:]))
		}
		name := strings.ToLower(first.data)
		if _, ok := namedColors[name]; !ok && name != "currentcolor" {
			return c, invalid(raw, "unknown color name %q", first.data)
		}
		c.Kind = KindNamed

	case css.FunctionToken:
		name := strings.ToLower(strings.TrimSuffix(first.data, "("))
		args, err := functionArgs(toks[1:])
		if err != nil {
			return c, invalid(raw, "%s(): %v", name, err)
		}
		switch name {
		case "rgb", "rgba":
			err = checkRGB(args)
		case "hsl", "hsla":
			err = checkHSL(args)
		default:
			err = fmt.Errorf("unsupported color function")
		}
		if err != nil {
			return c, invalid(raw, "%s(): %v", name, err)
		}
		c.Kind = KindFunction
		c.Function = name
		c.args = args
		c.Args = make([]string, len(args))
		for i, a := range args {
			c.Args[i] = a.data
		}

	default:
		return c, invalid(raw, "unexpected %q", first.data)
	}
	return c, nil
}

// IsValid reports whether raw is a color Parse accepts.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

func isHexDigits(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

// functionArgs splits tokens following a function token into arguments.
// Accepts "a,b,c[,d]" and "a b c[/d]", requires closing parenthesis to be
// the last token.
func functionArgs(toks []token) ([]token, error) {
	if len(toks) == 0 || toks[len(toks)-1].tt != css.RightParenthesisToken {
		return nil, fmt.Errorf("missing closing parenthesis")
	}
	toks = toks[:len(toks)-1]

	comma := false
	for _, t := range toks {
		if t.tt == css.CommaToken {
			comma = true
			break
		}
	}

	var args []token
	if comma {
		expectValue := true
		for _, t := range toks {
			switch {
			case t.tt == css.CommaToken && !expectValue:
				expectValue = true
			case t.tt != css.CommaToken && expectValue:
				args = append(args, t)
				expectValue = false
			default:
				return nil, fmt.Errorf("unexpected %q", t.data)
			}
		}
		if expectValue {
			return nil, fmt.Errorf("missing argument")
		}
	} else {
		slash := false
		for i, t := range toks {
			switch {
			case t.tt == css.WhitespaceToken:
			case t.tt == css.DelimToken && t.data == "/" && !slash && len(args) == 3:
				slash = true
			case t.tt == css.DelimToken:
				return nil, fmt.Errorf("unexpected %q", t.data)
			default:
				if i > 0 && toks[i-1].tt != css.WhitespaceToken && toks[i-1].tt != css.DelimToken {
					return nil, fmt.Errorf("unexpected %q", t.data)
				}
				args = append(args, t)
			}
		}
		if slash && len(args) != 4 {
			return nil, fmt.Errorf("missing alpha after '/'")
		}
		if !slash && len(args) == 4 {
			return nil, fmt.Errorf("alpha must follow '/'")
		}
	}

	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("expected 3 or 4 arguments, got %d", len(args))
	}
	return args, nil
}

func checkRGB(args []token) error {
	for _, a := range args[:3] {
		if a.tt != css.NumberToken && a.tt != css.PercentageToken {
			return fmt.Errorf("bad channel value %q", a.data)
		}
	}
	return checkAlpha(args)
}

func checkHSL(args []token) error {
	if _, ok := hueDegrees(args[0]); !ok {
		return fmt.Errorf("bad hue %q", args[0].data)
	}
	for _, a := range args[1:3] {
		if a.tt != css.PercentageToken {
			return fmt.Errorf("saturation and lightness must be percentages, got %q", a.data)
		}
	}
	return checkAlpha(args)
}

func checkAlpha(args []token) error {
	if len(args) < 4 {
		return nil
	}
	if a := args[3]; a.tt != css.NumberToken && a.tt != css.PercentageToken {
		return fmt.Errorf("bad alpha value %q", a.data)
	}
	return nil
}
