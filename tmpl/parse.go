package tmpl

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/ardnew/linelog/style"
	"github.com/ardnew/linelog/textwidth"
)

// Parse compiles template source into an immutable render plan.
//
// Compilation is eager: every declaration is resolved and checked now, so a
// plan that parses never raises a syntax error later. Errors are returned
// as [SyntaxError] values wrapping [ErrSyntax].
func Parse(source string) (*Plan, error) {
	p := &parser{source: source, line: 1, col: 1}

	nodes, _, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}

	return &Plan{nodes: nodes}, nil
}

// parser is a single-pass scanner over template source. It tracks the
// 1-based line and column of the next unread rune for error reporting.
type parser struct {
	source string
	pos    int
	line   int
	col    int
}

// parseNodes compiles declarations until end of input or, inside a
// conditional, until a balancing {end}. The boolean result reports whether
// an {end} terminated the sequence.
func (p *parser) parseNodes(inCond bool) ([]Node, bool, error) {
	var nodes []Node

	for {
		if text := p.scanText(); text != "" {
			nodes = append(nodes, Node{Kind: KindText, Text: text})
		}

		if p.eof() {
			return nodes, false, nil
		}

		declLine, declCol := p.line, p.col

		p.next() // consume '{'
		p.skipSpaces()

		nameLine, nameCol := p.line, p.col

		name := p.scanIdent()
		if name == "" {
			return nil, false, syntaxErrorf(p.source, nameLine, nameCol,
				"expected field name")
		}

		switch name {
		case "end":
			p.skipSpaces()

			if !p.consume('}') {
				return nil, false, syntaxErrorf(p.source, p.line, p.col,
					"expected '}' after end")
			}

			if !inCond {
				return nil, false, syntaxErrorf(p.source, declLine, declCol,
					"unexpected {end} with no open conditional")
			}

			return nodes, true, nil

		case "if":
			node, err := p.parseCond(declLine, declCol)
			if err != nil {
				return nil, false, err
			}

			nodes = append(nodes, node)

		case "pad":
			attrs, err := p.parseDeclTail(KindPad)
			if err != nil {
				return nil, false, err
			}

			nodes = append(nodes, Node{Kind: KindPad, Attrs: attrs})

		default:
			attrs, err := p.parseDeclTail(KindField)
			if err != nil {
				return nil, false, err
			}

			nodes = append(nodes, Node{Kind: KindField, Field: name, Attrs: attrs})
		}
	}
}

// parseCond compiles a conditional group from "{if" through its balancing
// {end}. The declLine and declCol locate the opening brace for errors.
func (p *parser) parseCond(declLine, declCol int) (Node, error) {
	p.skipSpaces()

	guardLine, guardCol := p.line, p.col

	guard := p.scanIdent()
	if guard == "" {
		return Node{}, syntaxErrorf(p.source, guardLine, guardCol,
			"expected field name after if")
	}

	p.skipSpaces()

	if !p.consume('}') {
		return Node{}, syntaxErrorf(p.source, p.line, p.col,
			"expected '}' after conditional guard %q", guard)
	}

	children, terminated, err := p.parseNodes(true)
	if err != nil {
		return Node{}, err
	}

	if !terminated {
		return Node{}, syntaxErrorf(p.source, declLine, declCol,
			"unclosed conditional {if %s}", guard)
	}

	return Node{Kind: KindCond, Field: guard, Nodes: children}, nil
}

// parseDeclTail compiles the remainder of a field or padding declaration
// after its name: either an immediate '}' or a ':' followed by an attribute
// list.
func (p *parser) parseDeclTail(kind Kind) (*Attrs, error) {
	p.skipSpaces()

	switch {
	case p.consume('}'):
		return &Attrs{}, nil
	case p.consume(':'):
		return p.parseAttrs(kind)
	default:
		return nil, syntaxErrorf(p.source, p.line, p.col,
			"expected ':' or '}' in declaration")
	}
}

// parseAttrs compiles a comma-separated attribute list and its closing '}'.
func (p *parser) parseAttrs(kind Kind) (*Attrs, error) {
	attrs := &Attrs{}
	seen := map[string]bool{}

	for {
		p.skipSpaces()

		keyLine, keyCol := p.line, p.col

		key := p.scanIdent()
		if key == "" {
			return nil, syntaxErrorf(p.source, keyLine, keyCol,
				"expected attribute key")
		}

		if seen[key] {
			return nil, syntaxErrorf(p.source, keyLine, keyCol,
				"duplicate attribute %q", key)
		}

		seen[key] = true

		p.skipSpaces()

		if !p.consume('=') {
			return nil, syntaxErrorf(p.source, p.line, p.col,
				"expected '=' after attribute %q", key)
		}

		p.skipSpaces()

		valLine, valCol := p.line, p.col

		value, err := p.scanValue()
		if err != nil {
			return nil, err
		}

		err = p.setAttr(attrs, kind, key, value, keyLine, keyCol, valLine, valCol)
		if err != nil {
			return nil, err
		}

		p.skipSpaces()

		switch {
		case p.consume(','):
			continue
		case p.consume('}'):
			return attrs, nil
		default:
			return nil, syntaxErrorf(p.source, p.line, p.col,
				"expected ',' or '}' in attribute list")
		}
	}
}

// setAttr validates one key=value pair and stores it in attrs.
func (p *parser) setAttr(attrs *Attrs, kind Kind, key, value string, keyLine, keyCol, valLine, valCol int) error {
	if kind == KindPad && key != "fill" && key != "width" {
		return syntaxErrorf(p.source, keyLine, keyCol,
			"unknown padding attribute %q", key)
	}

	switch key {
	case "width":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return syntaxErrorf(p.source, valLine, valCol,
				"attribute width requires a positive integer, got %q", value)
		}

		attrs.Width = n

	case "truncate":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return syntaxErrorf(p.source, valLine, valCol,
				"attribute truncate requires a positive integer, got %q", value)
		}

		attrs.Truncate = n

	case "align":
		a, err := ParseAlign(value)
		if err != nil {
			return syntaxErrorf(p.source, valLine, valCol, "%s", err)
		}

		attrs.Align = a

	case "fill":
		if uniseg.GraphemeClusterCount(value) != 1 || textwidth.String(value) != 1 {
			return syntaxErrorf(p.source, valLine, valCol,
				"attribute fill requires a single-column character, got %q", value)
		}

		attrs.Fill = value

	case "color":
		attrs.Color = value

	case "style":
		attrs.Styles = style.Split(value)

	case "default":
		attrs.Default = value

	default:
		return syntaxErrorf(p.source, keyLine, keyCol,
			"unknown attribute %q", key)
	}

	return nil
}

// scanText consumes literal text up to the next declaration or end of
// input. Doubled braces escape to a single literal brace; a lone '}' is
// kept verbatim.
func (p *parser) scanText() string {
	var b strings.Builder

	for !p.eof() {
		rest := p.source[p.pos:]

		switch {
		case strings.HasPrefix(rest, "{{"):
			p.next()
			p.next()
			b.WriteByte('{')
		case strings.HasPrefix(rest, "}}"):
			p.next()
			p.next()
			b.WriteByte('}')
		case p.peek() == '{':
			return b.String()
		default:
			b.WriteRune(p.next())
		}
	}

	return b.String()
}

// scanValue consumes an attribute value: a double-quoted string with
// backslash escapes, or a bare token extending to the next ',' or '}'.
func (p *parser) scanValue() (string, error) {
	if p.peek() == '"' {
		return p.scanQuoted()
	}

	start := p.pos
	startLine, startCol := p.line, p.col

	for {
		r := p.peek()
		if r == 0 {
			return "", syntaxErrorf(p.source, p.line, p.col,
				"unterminated declaration")
		}

		if r == ',' || r == '}' {
			break
		}

		p.next()
	}

	value := strings.TrimSpace(p.source[start:p.pos])
	if value == "" {
		return "", syntaxErrorf(p.source, startLine, startCol,
			"missing attribute value")
	}

	return value, nil
}

// scanQuoted consumes a double-quoted value, translating the escapes
// \\ \" \n and \t.
func (p *parser) scanQuoted() (string, error) {
	openLine, openCol := p.line, p.col

	p.next() // consume opening quote

	var b strings.Builder

	for {
		r := p.peek()
		if r == 0 {
			return "", syntaxErrorf(p.source, openLine, openCol,
				"unterminated quoted value")
		}

		p.next()

		switch r {
		case '"':
			return b.String(), nil

		case '\\':
			escLine, escCol := p.line, p.col

			esc := p.peek()
			if esc == 0 {
				return "", syntaxErrorf(p.source, openLine, openCol,
					"unterminated quoted value")
			}

			p.next()

			switch esc {
			case '\\', '"':
				b.WriteRune(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return "", syntaxErrorf(p.source, escLine, escCol,
					"invalid escape \\%c in quoted value", esc)
			}

		default:
			b.WriteRune(r)
		}
	}
}

// scanIdent consumes an identifier: a letter or underscore followed by
// letters, digits, underscores, dots, or hyphens. It returns the empty
// string without consuming input when the next rune cannot start one.
func (p *parser) scanIdent() string {
	if !isIdentStart(p.peek()) {
		return ""
	}

	var b strings.Builder

	b.WriteRune(p.next())

	for isIdentPart(p.peek()) {
		b.WriteRune(p.next())
	}

	return b.String()
}

func (p *parser) peek() rune {
	if p.pos >= len(p.source) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.source[p.pos:])

	return r
}

func (p *parser) next() rune {
	if p.pos >= len(p.source) {
		return 0
	}

	r, size := utf8.DecodeRuneInString(p.source[p.pos:])

	p.pos += size

	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}

	return r
}

func (p *parser) eof() bool {
	return p.pos >= len(p.source)
}

func (p *parser) consume(r rune) bool {
	if p.peek() != r {
		return false
	}

	p.next()

	return true
}

func (p *parser) skipSpaces() {
	for {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.next()
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '.' || r == '-'
}
