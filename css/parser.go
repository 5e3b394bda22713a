package css

import (
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses inline CSS (contents of style attributes).
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseInline parses declarations of a style attribute, e.g.
// "font-size: 18px;color: rgb(10, 20, 30);". Custom properties and
// declarations without value are skipped.
func (p *Parser) ParseInline(style string) *Style {
	st := &Style{}
	if strings.TrimSpace(style) == "" {
		return st
	}

	parser := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.String("style", style), zap.Error(parser.Err()))
			}
			return st

		case css.DeclarationGrammar:
			propName := strings.ToLower(string(data))
			values, important := stripImportant(parser.Values())
			if len(values) == 0 {
				p.log.Debug("Skipping declaration without value", zap.String("property", propName))
				continue
			}
			st.Set(Declaration{
				Property:  propName,
				Value:     p.parsePropertyValue(values),
				Important: important,
			})

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) - skip for now
			continue

		default:
			p.log.Debug("Skipping unexpected inline style content", zap.String("style", style), zap.String("data", string(data)))
		}
	}
}

// ParseValue parses a single property value.
func (p *Parser) ParseValue(raw string) Value {
	var tokens []css.Token
	lexer := css.NewLexer(parse.NewInputString(raw))
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, css.Token{TokenType: tt, Data: parse.Copy(data)})
	}
	tokens, _ = stripImportant(tokens)
	return p.parsePropertyValue(tokens)
}

// stripImportant removes trailing "!important" from value tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end == 0 || tokens[end-1].TokenType != css.IdentToken || !strings.EqualFold(string(tokens[end-1].Data), "important") {
		return tokens[:end], false
	}
	i := end - 1
	for i > 0 && tokens[i-1].TokenType == css.WhitespaceToken {
		i--
	}
	if i == 0 || tokens[i-1].TokenType != css.DelimToken || string(tokens[i-1].Data) != "!" {
		return tokens[:end], false
	}
	i--
	for i > 0 && tokens[i-1].TokenType == css.WhitespaceToken {
		i--
	}
	return tokens[:i], true
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	// Leading whitespace is not part of the value
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return Value{}
	}

	// Build raw value string
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			// Add space between non-whitespace tokens
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	val := Value{Raw: raw}

	// Handle single token cases
	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			// Color value
			val.Keyword = string(t.Data)
		}
		return val
	}

	// Function values (rgb(), hsl(), url(), etc.) and multi-value properties
	// are stored as keyword with raw value
	val.Keyword = raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
