// Package color normalizes CSS color values the way they are stored as text
// attributes and written back into inline styles.
//
// Normalization is lexical: the value is tokenized with the CSS lexer and
// re-assembled without insignificant whitespace. Hex and named colors are
// never reinterpreted, function names and parentheses are kept exactly as
// written. Normalize is lenient and accepts anything, Parse applies the
// color grammar and reports what it does not recognize.
package color

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	data string
}

// Normalize returns the canonical form of a CSS color expression as found
// in a color declaration: whitespace around commas, parentheses and slashes
// is removed and the result is trimmed. Whitespace that is the only
// separator between two values (space separated syntax) is collapsed to a
// single space. Normalize is idempotent: normalizing its result again
// gives the same string.
func Normalize(raw string) string {
	return join(tokenize(raw))
}

// Format returns the string to put into a color style declaration for a
// stored attribute value. The stored value is written as is, only
// surrounding whitespace is trimmed: values set directly on the model are
// not rewritten on output.
func Format(stored string) string {
	return strings.TrimSpace(stored)
}

func tokenize(raw string) []token {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	l := css.NewLexer(parse.NewInputString(raw))

	var (
		out []token
		gap bool
	)
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			// io.EOF or garbage, either way we have all we can use
			return out
		case css.WhitespaceToken, css.CommentToken:
			gap = true
			continue
		}
		if gap && len(out) > 0 {
			prev := out[len(out)-1]
			if separatedBySpace(prev.tt, tt) || opensComment(prev.data, data) {
				out = append(out, token{tt: css.WhitespaceToken, data: " "})
			}
		}
		gap = false
		out = append(out, token{tt: tt, data: string(data)})
	}
}

// separatedBySpace reports whether whitespace between two tokens carries
// meaning and has to survive normalization.
func separatedBySpace(prev, next css.TokenType) bool {
	left := isOperand(prev) || prev == css.RightParenthesisToken
	right := isOperand(next) || next == css.FunctionToken
	return left && right
}

// opensComment reports whether joining two tokens would start a comment.
func opensComment(prev string, next []byte) bool {
	return strings.HasSuffix(prev, "/") && len(next) > 0 && next[0] == '*'
}

func isOperand(tt css.TokenType) bool {
	switch tt {
	case css.NumberToken, css.PercentageToken, css.DimensionToken,
		css.IdentToken, css.HashToken, css.StringToken:
		return true
	}
	return false
}

func join(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.data)
	}
	return sb.String()
}
