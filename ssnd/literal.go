// Strict reader for the bracketed integer literals embedded in instance
// files: int lists "[0, 2, 4]", pairs "(2, 1)", nested pairs
// "((a, b), (c, d))", arc lists "[(0, 1), (1, 0)]" and time-expanded arcs
// "((0, 0), (1, 2))". Anything else is rejected.

package ssnd

import (
	"fmt"
	"strconv"
	"strings"
)

// literal is either an integer leaf or a sequence of nested literals.
// Tuples and lists both map to a sequence; the distinction only matters
// when writing, not when reading.
type literal struct {
	num   int
	items []literal
	leaf  bool
}

// parseLiteral reads one complete bracketed literal and rejects trailing
// garbage.
func parseLiteral(s string) (literal, error) {
	p := litParser{src: s}
	lit, err := p.value()
	if err != nil {
		return literal{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return literal{}, fmt.Errorf("trailing characters after literal: %q", p.src[p.pos:])
	}
	return lit, nil
}

type litParser struct {
	src string
	pos int
}

func (p *litParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *litParser) value() (literal, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return literal{}, fmt.Errorf("unexpected end of literal")
	}
	switch c := p.src[p.pos]; {
	case c == '(' || c == '[':
		return p.sequence(c)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	default:
		return literal{}, fmt.Errorf("unexpected character %q at offset %d", c, p.pos)
	}
}

func (p *litParser) sequence(open byte) (literal, error) {
	closer := byte(')')
	if open == '[' {
		closer = ']'
	}
	p.pos++ // consume the opening bracket
	var items []literal
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == closer {
		p.pos++
		return literal{items: items}, nil
	}
	for {
		item, err := p.value()
		if err != nil {
			return literal{}, err
		}
		items = append(items, item)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return literal{}, fmt.Errorf("unterminated %q literal", open)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return literal{items: items}, nil
		default:
			return literal{}, fmt.Errorf("expected %q or %q at offset %d, found %q", ',', closer, p.pos, p.src[p.pos])
		}
	}
}

func (p *litParser) number() (literal, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return literal{}, fmt.Errorf("invalid integer %q", p.src[start:p.pos])
	}
	return literal{num: n, leaf: true}, nil
}

func (l literal) asInt() (int, error) {
	if !l.leaf {
		return 0, fmt.Errorf("expected an integer, found a sequence")
	}
	return l.num, nil
}

func (l literal) asPair() (int, int, error) {
	if l.leaf || len(l.items) != 2 {
		return 0, 0, fmt.Errorf("expected a pair of integers")
	}
	a, err := l.items[0].asInt()
	if err != nil {
		return 0, 0, err
	}
	b, err := l.items[1].asInt()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (l literal) asIntList() ([]int, error) {
	if l.leaf {
		return nil, fmt.Errorf("expected a list of integers")
	}
	out := make([]int, 0, len(l.items))
	for _, item := range l.items {
		n, err := item.asInt()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (l literal) asArc() (Arc, error) {
	from, to, err := l.asPair()
	if err != nil {
		return Arc{}, err
	}
	return Arc{From: from, To: to}, nil
}

func (l literal) asArcList() ([]Arc, error) {
	if l.leaf {
		return nil, fmt.Errorf("expected a list of arcs")
	}
	out := make([]Arc, 0, len(l.items))
	for _, item := range l.items {
		a, err := item.asArc()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (l literal) asTimedNode() (TimedNode, error) {
	n, t, err := l.asPair()
	if err != nil {
		return TimedNode{}, err
	}
	return TimedNode{Node: n, Time: t}, nil
}

func (l literal) asServiceArc() (ServiceArc, error) {
	if l.leaf || len(l.items) != 2 {
		return ServiceArc{}, fmt.Errorf("expected a ((node, time), (node, time)) arc")
	}
	from, err := l.items[0].asTimedNode()
	if err != nil {
		return ServiceArc{}, err
	}
	to, err := l.items[1].asTimedNode()
	if err != nil {
		return ServiceArc{}, err
	}
	return ServiceArc{From: from, To: to}, nil
}

func (l literal) asServiceArcList() ([]ServiceArc, error) {
	if l.leaf {
		return nil, fmt.Errorf("expected a list of time-expanded arcs")
	}
	out := make([]ServiceArc, 0, len(l.items))
	for _, item := range l.items {
		a, err := item.asServiceArc()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (l literal) asRangePair() (Range, Range, error) {
	if l.leaf || len(l.items) != 2 {
		return Range{}, Range{}, fmt.Errorf("expected a pair of ranges")
	}
	lo, err := l.items[0].asRange()
	if err != nil {
		return Range{}, Range{}, err
	}
	hi, err := l.items[1].asRange()
	if err != nil {
		return Range{}, Range{}, err
	}
	return lo, hi, nil
}

func (l literal) asRange() (Range, error) {
	low, high, err := l.asPair()
	if err != nil {
		return Range{}, err
	}
	return Range{Low: low, High: high}, nil
}

// formatIntList renders an int slice the way the generator wrote it:
// "[0, 2, 4]".
func formatIntList(xs []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range xs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", x)
	}
	b.WriteByte(']')
	return b.String()
}

func formatArc(a Arc) string {
	return fmt.Sprintf("(%d, %d)", a.From, a.To)
}

func formatArcList(arcs []Arc) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, a := range arcs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatArc(a))
	}
	b.WriteByte(']')
	return b.String()
}

func formatTimedNode(tn TimedNode) string {
	return fmt.Sprintf("(%d, %d)", tn.Node, tn.Time)
}

func formatServiceArc(a ServiceArc) string {
	return fmt.Sprintf("(%s, %s)", formatTimedNode(a.From), formatTimedNode(a.To))
}

func formatServiceArcList(arcs []ServiceArc) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, a := range arcs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatServiceArc(a))
	}
	b.WriteByte(']')
	return b.String()
}

func formatRange(r Range) string {
	return fmt.Sprintf("(%d, %d)", r.Low, r.High)
}
