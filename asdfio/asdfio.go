// Package asdfio is the concrete YAML event source/sink: it adapts the
// github.com/goccy/go-yaml parser and AST to the yamlevent.Source and
// yamlevent.Sink interfaces the ASDF codec (package asdf) is built and
// tested against, so the library is usable against real ASDF documents and
// not just hand-built event lists.
package asdfio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/skyfield-labs/corefmt/yamlevent"
)

// ParseSource parses a single ASDF YAML document (the tree document, or the
// trailing block-index document) into a yamlevent.Source that replays it as
// the event sequence the decoder expects.
func ParseSource(data []byte) (yamlevent.Source, error) {
	// Comments, including the #ASDF header lines, are dropped by the parser.
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("asdfio: parse: %w", err)
	}
	if len(file.Docs) == 0 {
		return nil, fmt.Errorf("asdfio: no documents in stream")
	}

	events := []yamlevent.Event{
		{Kind: yamlevent.StreamStart},
		{Kind: yamlevent.DocumentStart},
	}
	if err := flattenNode(file.Docs[0].Body, &events); err != nil {
		return nil, err
	}
	events = append(events,
		yamlevent.Event{Kind: yamlevent.DocumentEnd},
		yamlevent.Event{Kind: yamlevent.StreamEnd},
	)
	return yamlevent.NewSliceSource(events), nil
}

func flattenNode(n ast.Node, events *[]yamlevent.Event) error {
	tag := yamlevent.NoTagValue()
	if tn, ok := n.(*ast.TagNode); ok {
		tag = resolveTag(tn.Start.Value)
		n = tn.Value
	}
	switch v := n.(type) {
	case *ast.MappingNode:
		*events = append(*events, yamlevent.Event{Kind: yamlevent.MappingStart, Tag: tag, CollStyle: collStyle(v.IsFlowStyle)})
		for _, mv := range v.Values {
			if err := flattenNode(mv.Key, events); err != nil {
				return err
			}
			if err := flattenNode(mv.Value, events); err != nil {
				return err
			}
		}
		*events = append(*events, yamlevent.Event{Kind: yamlevent.MappingEnd})
	case *ast.MappingValueNode:
		*events = append(*events, yamlevent.Event{Kind: yamlevent.MappingStart, Tag: tag, CollStyle: yamlevent.Block})
		if err := flattenNode(v.Key, events); err != nil {
			return err
		}
		if err := flattenNode(v.Value, events); err != nil {
			return err
		}
		*events = append(*events, yamlevent.Event{Kind: yamlevent.MappingEnd})
	case *ast.SequenceNode:
		*events = append(*events, yamlevent.Event{Kind: yamlevent.SequenceStart, Tag: tag, CollStyle: collStyle(v.IsFlowStyle)})
		for _, e := range v.Values {
			if err := flattenNode(e, events); err != nil {
				return err
			}
		}
		*events = append(*events, yamlevent.Event{Kind: yamlevent.SequenceEnd})
	case *ast.StringNode:
		style := yamlevent.Plain
		if v.Value == "" {
			style = yamlevent.SingleQuoted
		}
		*events = append(*events, yamlevent.Event{Kind: yamlevent.Scalar, Bytes: []byte(v.Value), Style: style, Tag: tag})
	case *ast.IntegerNode:
		*events = append(*events, yamlevent.Event{Kind: yamlevent.Scalar, Bytes: []byte(fmt.Sprint(v.Value)), Tag: tag})
	case *ast.FloatNode:
		*events = append(*events, yamlevent.Event{Kind: yamlevent.Scalar, Bytes: []byte(strconv.FormatFloat(v.Value, 'g', -1, 64)), Tag: tag})
	case *ast.BoolNode:
		s := "false"
		if v.Value {
			s = "true"
		}
		*events = append(*events, yamlevent.Event{Kind: yamlevent.Scalar, Bytes: []byte(s), Tag: tag})
	case *ast.NullNode:
		// The core schema resolves ~ to null; without this the untagged
		// disambiguator would read it back as the string "~".
		if tag.Kind == yamlevent.NoTag {
			tag = yamlevent.NullTagValue()
		}
		*events = append(*events, yamlevent.Event{Kind: yamlevent.Scalar, Bytes: []byte("~"), Tag: tag})
	case *ast.LiteralNode:
		*events = append(*events, yamlevent.Event{Kind: yamlevent.Scalar, Bytes: []byte(v.Value.Value), Style: yamlevent.Literal, Tag: tag})
	default:
		return fmt.Errorf("asdfio: unsupported AST node %T", n)
	}
	return nil
}

func collStyle(flow bool) yamlevent.CollectionStyle {
	if flow {
		return yamlevent.Flow
	}
	return yamlevent.Block
}

func resolveTag(raw string) yamlevent.Tag {
	switch raw {
	case "!!str":
		return yamlevent.StrTagValue()
	case "!!int":
		return yamlevent.IntTagValue()
	case "!!float":
		return yamlevent.FloatTagValue()
	case "!!bool":
		return yamlevent.BoolTagValue()
	case "!!null", "":
		return yamlevent.NullTagValue()
	default:
		return yamlevent.UriTagValue(strings.TrimPrefix(raw, "!"))
	}
}

func wireTag(t yamlevent.Tag) string {
	switch t.Kind {
	case yamlevent.StrTag:
		return "!!str"
	case yamlevent.IntTag:
		return "!!int"
	case yamlevent.FloatTag:
		return "!!float"
	case yamlevent.BoolTag:
		return "!!bool"
	case yamlevent.NullTag:
		return "!!null"
	case yamlevent.UriTag:
		return "!" + t.URI
	default:
		return ""
	}
}

// Sink records emitted events in order and renders them into YAML bytes on
// demand, the inverse of ParseSource. Rendering is a direct event-to-text
// pass: untagged block containers indent, everything else (flow containers
// and tagged containers) renders inline in flow syntax.
type Sink struct {
	events []yamlevent.Event
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Emit(ev yamlevent.Event) error {
	s.events = append(s.events, ev)
	return nil
}

// Bytes renders the recorded event stream as a single YAML document,
// prefixed with the "---" document marker.
func (s *Sink) Bytes() ([]byte, error) {
	ev := s.events
	pos := 0
	if pos >= len(ev) || ev[pos].Kind != yamlevent.StreamStart {
		return nil, fmt.Errorf("asdfio: expected StreamStart")
	}
	pos++
	if pos >= len(ev) || ev[pos].Kind != yamlevent.DocumentStart {
		return nil, fmt.Errorf("asdfio: expected DocumentStart")
	}
	pos++
	var b strings.Builder
	b.WriteString("---\n")
	pos, err := renderNode(&b, ev, pos, 0)
	if err != nil {
		return nil, err
	}
	if pos >= len(ev) || ev[pos].Kind != yamlevent.DocumentEnd {
		return nil, fmt.Errorf("asdfio: expected DocumentEnd")
	}
	return []byte(b.String()), nil
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func tagPrefix(t yamlevent.Tag) string {
	w := wireTag(t)
	if w == "" {
		return ""
	}
	return w + " "
}

func scalarText(ev yamlevent.Event) string {
	s := string(ev.Bytes)
	if ev.Style == yamlevent.SingleQuoted {
		s = "'" + strings.ReplaceAll(s, "'", "''") + "'"
	} else if s == "" {
		s = "''"
	}
	return tagPrefix(ev.Tag) + s
}

// renderInline reports whether the node starting at pos renders on one
// line: scalars, flow containers, and tagged containers (a tag binds
// tighter in flow syntax, so tagged containers always render flow).
func renderInline(ev yamlevent.Event) bool {
	if ev.Kind == yamlevent.Scalar {
		return true
	}
	return ev.CollStyle == yamlevent.Flow || ev.Tag.Kind != yamlevent.NoTag
}

// renderNode writes one node starting at a fresh line indented to depth.
func renderNode(b *strings.Builder, ev []yamlevent.Event, pos, depth int) (int, error) {
	if pos >= len(ev) {
		return pos, fmt.Errorf("asdfio: event stream ended early")
	}
	if renderInline(ev[pos]) {
		text, next, err := flowText(ev, pos)
		if err != nil {
			return pos, err
		}
		b.WriteString(indent(depth) + text + "\n")
		return next, nil
	}
	switch ev[pos].Kind {
	case yamlevent.MappingStart:
		return renderBlockMapping(b, ev, pos, depth)
	case yamlevent.SequenceStart:
		return renderBlockSequence(b, ev, pos, depth)
	default:
		return pos, fmt.Errorf("asdfio: unexpected event %s rendering node", ev[pos].Kind)
	}
}

func renderBlockMapping(b *strings.Builder, ev []yamlevent.Event, pos, depth int) (int, error) {
	pos++
	for pos < len(ev) && ev[pos].Kind != yamlevent.MappingEnd {
		if ev[pos].Kind != yamlevent.Scalar {
			return pos, fmt.Errorf("asdfio: expected scalar mapping key, got %s", ev[pos].Kind)
		}
		key := scalarText(ev[pos])
		pos++
		if pos >= len(ev) {
			return pos, fmt.Errorf("asdfio: event stream ended early")
		}
		if renderInline(ev[pos]) {
			text, next, err := flowText(ev, pos)
			if err != nil {
				return pos, err
			}
			b.WriteString(indent(depth) + key + ": " + text + "\n")
			pos = next
			continue
		}
		b.WriteString(indent(depth) + key + ":\n")
		next, err := renderNode(b, ev, pos, depth+1)
		if err != nil {
			return pos, err
		}
		pos = next
	}
	if pos >= len(ev) {
		return pos, fmt.Errorf("asdfio: missing MappingEnd")
	}
	return pos + 1, nil
}

func renderBlockSequence(b *strings.Builder, ev []yamlevent.Event, pos, depth int) (int, error) {
	pos++
	for pos < len(ev) && ev[pos].Kind != yamlevent.SequenceEnd {
		if renderInline(ev[pos]) {
			text, next, err := flowText(ev, pos)
			if err != nil {
				return pos, err
			}
			b.WriteString(indent(depth) + "- " + text + "\n")
			pos = next
			continue
		}
		b.WriteString(indent(depth) + "-\n")
		next, err := renderNode(b, ev, pos, depth+1)
		if err != nil {
			return pos, err
		}
		pos = next
	}
	if pos >= len(ev) {
		return pos, fmt.Errorf("asdfio: missing SequenceEnd")
	}
	return pos + 1, nil
}

// flowText renders the node starting at pos in flow syntax and returns the
// position just past it.
func flowText(ev []yamlevent.Event, pos int) (string, int, error) {
	if pos >= len(ev) {
		return "", pos, fmt.Errorf("asdfio: event stream ended early")
	}
	switch e := ev[pos]; e.Kind {
	case yamlevent.Scalar:
		return scalarText(e), pos + 1, nil
	case yamlevent.MappingStart:
		pos++
		var parts []string
		for pos < len(ev) && ev[pos].Kind != yamlevent.MappingEnd {
			if ev[pos].Kind != yamlevent.Scalar {
				return "", pos, fmt.Errorf("asdfio: expected scalar mapping key, got %s", ev[pos].Kind)
			}
			key := scalarText(ev[pos])
			pos++
			val, next, err := flowText(ev, pos)
			if err != nil {
				return "", pos, err
			}
			pos = next
			parts = append(parts, key+": "+val)
		}
		if pos >= len(ev) {
			return "", pos, fmt.Errorf("asdfio: missing MappingEnd")
		}
		return tagPrefix(e.Tag) + "{" + strings.Join(parts, ", ") + "}", pos + 1, nil
	case yamlevent.SequenceStart:
		pos++
		var parts []string
		for pos < len(ev) && ev[pos].Kind != yamlevent.SequenceEnd {
			val, next, err := flowText(ev, pos)
			if err != nil {
				return "", pos, err
			}
			pos = next
			parts = append(parts, val)
		}
		if pos >= len(ev) {
			return "", pos, fmt.Errorf("asdfio: missing SequenceEnd")
		}
		return tagPrefix(e.Tag) + "[" + strings.Join(parts, ", ") + "]", pos + 1, nil
	default:
		return "", pos, fmt.Errorf("asdfio: unexpected event %s rendering node", e.Kind)
	}
}
