// Package yamlevent defines the boundary to the external YAML event
// source/sink. The low-level YAML tokenizer/emitter lives behind this
// boundary; this package only fixes the shape of the event stream both
// sides agree on, so the ASDF encoder and decoder can be built and tested
// against it without depending on any particular YAML library.
package yamlevent

// Kind identifies an event's role in the stream.
type Kind int

const (
	StreamStart Kind = iota
	StreamEnd
	DocumentStart
	DocumentEnd
	Scalar
	MappingStart
	MappingEnd
	SequenceStart
	SequenceEnd
)

func (k Kind) String() string {
	switch k {
	case StreamStart:
		return "StreamStart"
	case StreamEnd:
		return "StreamEnd"
	case DocumentStart:
		return "DocumentStart"
	case DocumentEnd:
		return "DocumentEnd"
	case Scalar:
		return "Scalar"
	case MappingStart:
		return "MappingStart"
	case MappingEnd:
		return "MappingEnd"
	case SequenceStart:
		return "SequenceStart"
	case SequenceEnd:
		return "SequenceEnd"
	default:
		return "<unknown event>"
	}
}

// Style is a scalar's presentation style.
type Style int

const (
	Plain Style = iota
	SingleQuoted
	DoubleQuoted
	Literal
	Folded
)

// CollectionStyle is a mapping's or sequence's presentation style.
type CollectionStyle int

const (
	Block CollectionStyle = iota
	Flow
)

// TagKind discriminates the built-in YAML tags from a user URI tag.
type TagKind int

const (
	NoTag TagKind = iota
	StrTag
	IntTag
	FloatTag
	BoolTag
	NullTag
	UriTag
)

// Tag is a resolved tag: Kind selects the variant, and URI carries the tag
// text when Kind is UriTag.
type Tag struct {
	Kind TagKind
	URI  string
}

func NoTagValue() Tag            { return Tag{Kind: NoTag} }
func StrTagValue() Tag           { return Tag{Kind: StrTag} }
func IntTagValue() Tag           { return Tag{Kind: IntTag} }
func FloatTagValue() Tag         { return Tag{Kind: FloatTag} }
func BoolTagValue() Tag          { return Tag{Kind: BoolTag} }
func NullTagValue() Tag          { return Tag{Kind: NullTag} }
func UriTagValue(uri string) Tag { return Tag{Kind: UriTag, URI: uri} }

// Event is one item of the stream produced by the external YAML
// source and consumed by the external YAML sink.
type Event struct {
	Kind Kind

	// Scalar
	Bytes []byte
	Style Style

	// MappingStart / SequenceStart
	CollStyle CollectionStyle

	// Scalar / MappingStart / SequenceStart
	Tag Tag

	// Scalar / MappingStart / SequenceStart, optional
	Anchor string
}

// Source is a pull-style, one-element-lookahead event stream: the only
// capability the decoder's sinkWhile primitive needs.
type Source interface {
	// Peek returns the next event without consuming it. Calling Peek
	// repeatedly without an intervening Next returns the same event.
	Peek() (Event, error)
	// Next consumes and returns the next event.
	Next() (Event, error)
}

// Sink consumes events produced by the encoder.
type Sink interface {
	Emit(Event) error
}
