package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// Table holds column alignments for NodeTable.
	Table *TableAttrs

	// Header marks the header row of a table (NodeTableRow).
	Header bool

	// Alignment is the column alignment of a NodeTableCell.
	Alignment Alignment

	// HTML is the literal markup of a NodeHTMLBlock.
	HTML []byte
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// BulletMarker is the bullet character used ("-", "+", "*").
	BulletMarker string

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// Start returns the first sequence number of an ordered list.
// ok is false for unordered lists, whose entries carry no number.
func (a *ListAttrs) Start() (start int, ok bool) {
	if a == nil || !a.Ordered {
		return 0, false
	}
	return a.StartNumber, true
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// Info is the full info string after the opening fence.
	Info string

	// Language is the first word of the info string.
	Language string

	// Literal is the code content, including its trailing newline.
	Literal []byte

	// Indented is true for indented code blocks (vs fenced).
	Indented bool
}

// Alignment is the horizontal alignment declared for a table column.
type Alignment uint8

// Column alignments. AlignNone means the delimiter row declared nothing.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the alignment name as used in HTML align attributes.
// AlignNone returns the empty string.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// TableAttrs holds attributes for table nodes.
type TableAttrs struct {
	// Alignments has one entry per column.
	Alignments []Alignment
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the literal for NodeText, NodeCodeSpan and NodeHTMLInline.
	// Escapes and entity references are already resolved.
	Text []byte

	// Link holds link attributes for NodeLink, NodeAutoLink and NodeImage.
	Link *LinkAttrs

	// EmphasisLevel indicates emphasis strength (1 for emphasis, 2 for strong).
	EmphasisLevel int
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// Email is true for autolinks recognised as an email address.
	Email bool
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCodeBlock sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithTable sets table attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithTable(attrs *TableAttrs) *BlockAttrs {
	a.Table = attrs
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithEmphasisLevel sets the emphasis level and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithEmphasisLevel(level int) *InlineAttrs {
	a.EmphasisLevel = level
	return a
}
