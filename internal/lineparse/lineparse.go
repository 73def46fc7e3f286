// Package lineparse parses the single-line key-value encoding back into
// typed nodes. It is the inverse of the single-line renderer: \XX escapes
// are decoded, quoted strings unwrapped, and nested {}/[] containers
// recursed. The encoding carries no type information, so bare values are
// classified by shape: true/false, unsigned and signed integers, floats,
// and strings, with a bare key and no value meaning null.
package lineparse

import (
	"fmt"
	"strconv"

	stakkerlog "github.com/uazu/stakker-log"
)

// Kind classifies a parsed node.
type Kind int

const (
	String Kind = iota
	U64
	I64
	F64
	Bool
	Null
	Map
	Arr
)

// Node is one parsed item. HasKey distinguishes keyed items from positional
// array elements; note the encoding cannot distinguish an empty key from a
// single-space key (both render as \20), so either parses as " ".
type Node struct {
	Key    string
	HasKey bool
	Kind   Kind
	Str    string
	U64    uint64
	I64    int64
	F64    float64
	Bool   bool
	Items  []Node
}

// Parse decodes one line of single-line key-value text into nodes. An empty
// line yields no nodes and no error.
func Parse(line string) ([]Node, error) {
	p := &parser{s: line}
	nodes, err := p.items(0, false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.s) {
		return nil, p.errf("unexpected %q", p.s[p.pos])
	}
	return nodes, nil
}

// Scan returns a ScanFunc that replays nodes as visitor events, so a parsed
// line can be re-rendered through either encoder.
func Scan(nodes []Node) stakkerlog.ScanFunc {
	return func(out stakkerlog.Visitor) {
		emitNodes(out, nodes)
	}
}

func emitNodes(out stakkerlog.Visitor, nodes []Node) {
	for _, n := range nodes {
		key := stakkerlog.NoKey
		if n.HasKey {
			key = stakkerlog.K(n.Key)
		}
		switch n.Kind {
		case String:
			out.Str(key, n.Str)
		case U64:
			out.U64(key, n.U64)
		case I64:
			out.I64(key, n.I64)
		case F64:
			out.F64(key, n.F64)
		case Bool:
			out.Bool(key, n.Bool)
		case Null:
			out.Null(key)
		case Map:
			out.Map(key)
			emitNodes(out, n.Items)
			out.MapEnd(key)
		case Arr:
			out.Arr(key)
			emitNodes(out, n.Items)
			out.ArrEnd(key)
		}
	}
}

type parser struct {
	s   string
	pos int
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("col %d: %s", p.pos, fmt.Sprintf(format, args...))
}

// items parses a separator-delimited item list until closing ('}' or ']',
// or 0 for end of line). inArray controls whether bare tokens are values or
// keys.
func (p *parser) items(closing byte, inArray bool) ([]Node, error) {
	var nodes []Node
	first := true
	for {
		if closing != 0 && p.pos < len(p.s) && p.s[p.pos] == closing {
			p.pos++
			return nodes, nil
		}
		if p.pos >= len(p.s) {
			if closing != 0 {
				return nil, p.errf("missing %q", closing)
			}
			return nodes, nil
		}
		if !first {
			if p.s[p.pos] != ' ' {
				return nil, p.errf("expected separator, found %q", p.s[p.pos])
			}
			p.pos++
		}
		first = false
		node, err := p.item(closing, inArray)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// item parses one item. An empty token (two adjacent separators, or a
// separator right before the closing bracket) is a keyless null: that is
// exactly what the renderer emits for a null with no key.
func (p *parser) item(closing byte, inArray bool) (Node, error) {
	if p.atItemEnd(closing) {
		return Node{Kind: Null}, nil
	}
	if p.s[p.pos] == '"' {
		// Keys are never quoted, so a leading quote is a positional
		// string value.
		str, err := p.quoted()
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: String, Str: str}, nil
	}
	if inArray && (p.s[p.pos] == '{' || p.s[p.pos] == '[') {
		return p.container(Node{})
	}
	token, err := p.token()
	if err != nil {
		return Node{}, err
	}
	if p.atItemEnd(closing) {
		if inArray {
			return inferValue(token), nil
		}
		if token == "" {
			return Node{Kind: Null}, nil
		}
		return Node{Key: token, HasKey: true, Kind: Null}, nil
	}
	switch p.s[p.pos] {
	case '=':
		p.pos++
		return p.value(Node{Key: token, HasKey: true}, closing)
	case '{', '[':
		if token == "" {
			return p.container(Node{})
		}
		return p.container(Node{Key: token, HasKey: true})
	}
	return Node{}, p.errf("unexpected %q after %q", p.s[p.pos], token)
}

func (p *parser) container(node Node) (Node, error) {
	open := p.s[p.pos]
	p.pos++
	var err error
	if open == '{' {
		node.Kind = Map
		node.Items, err = p.items('}', false)
	} else {
		node.Kind = Arr
		node.Items, err = p.items(']', true)
	}
	if err != nil {
		return Node{}, err
	}
	return node, nil
}

func (p *parser) value(node Node, closing byte) (Node, error) {
	if p.atItemEnd(closing) {
		// "key=" is an empty unquoted string.
		node.Kind = String
		return node, nil
	}
	if p.s[p.pos] == '"' {
		str, err := p.quoted()
		if err != nil {
			return Node{}, err
		}
		node.Kind = String
		node.Str = str
		return node, nil
	}
	start := p.pos
	for p.pos < len(p.s) && !reserved(p.s[p.pos]) {
		p.pos++
	}
	inferred := inferValue(p.s[start:p.pos])
	inferred.Key = node.Key
	inferred.HasKey = node.HasKey
	return inferred, nil
}

// token reads a key-position token, decoding \XX escapes. It stops at any
// reserved byte other than a backslash escape.
func (p *parser) token() (string, error) {
	var out []byte
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '\\' {
			if out == nil {
				out = append(out, p.s[start:p.pos]...)
			}
			b, err := p.hexEscape()
			if err != nil {
				return "", err
			}
			out = append(out, b)
			continue
		}
		if reserved(c) {
			break
		}
		if out != nil {
			out = append(out, c)
		}
		p.pos++
	}
	if out != nil {
		return string(out), nil
	}
	return p.s[start:p.pos], nil
}

func (p *parser) quoted() (string, error) {
	p.pos++ // opening quote
	var out []byte
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch c {
		case '"':
			p.pos++
			return string(out), nil
		case '\\':
			b, err := p.hexEscape()
			if err != nil {
				return "", err
			}
			out = append(out, b)
		default:
			out = append(out, c)
			p.pos++
		}
	}
	return "", p.errf("unterminated quoted string")
}

// hexEscape consumes a \XX escape at the current position.
func (p *parser) hexEscape() (byte, error) {
	if p.pos+2 >= len(p.s) {
		return 0, p.errf("truncated escape")
	}
	hi, ok1 := hexVal(p.s[p.pos+1])
	lo, ok2 := hexVal(p.s[p.pos+2])
	if !ok1 || !ok2 {
		return 0, p.errf("invalid escape %q", p.s[p.pos:p.pos+3])
	}
	p.pos += 3
	return hi<<4 | lo, nil
}

func (p *parser) atItemEnd(closing byte) bool {
	if p.pos >= len(p.s) {
		return true
	}
	c := p.s[p.pos]
	return c == ' ' || (closing != 0 && c == closing)
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// reserved mirrors the renderer's reserved set.
func reserved(c byte) bool {
	if c <= 0x20 {
		return true
	}
	switch c {
	case '"', '=', '\\', '[', ']', '{', '}':
		return true
	}
	return false
}

// inferValue classifies a bare token. Quoting pins a value to string, and a
// numeric kind is only assigned when re-rendering it would reproduce the
// token byte for byte, so "007" or "1.0" stay strings and a parsed line
// re-renders to exactly the input.
func inferValue(token string) Node {
	switch token {
	case "true":
		return Node{Kind: Bool, Bool: true}
	case "false":
		return Node{Kind: Bool}
	case "":
		return Node{Kind: Null}
	}
	if u, err := strconv.ParseUint(token, 10, 64); err == nil && strconv.FormatUint(u, 10) == token {
		return Node{Kind: U64, U64: u}
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil && strconv.FormatInt(i, 10) == token {
		return Node{Kind: I64, I64: i}
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == token {
		return Node{Kind: F64, F64: f}
	}
	return Node{Kind: String, Str: token}
}
