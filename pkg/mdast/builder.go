package mdast

// NewNode creates a new node of the specified kind.
// The node has no parent or children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text leaf holding literal.
func NewText(literal string) *Node {
	node := NewNode(NodeText)
	node.Inline = NewInlineAttrs().WithText([]byte(literal))
	return node
}

// NewHeading creates a heading of the given level with children appended.
func NewHeading(level int, children ...*Node) *Node {
	node := NewNode(NodeHeading)
	node.Block = NewBlockAttrs().WithHeadingLevel(level)
	AppendChildren(node, children...)
	return node
}

// NewLink creates a link to destination with children appended.
func NewLink(destination string, children ...*Node) *Node {
	node := NewNode(NodeLink)
	node.Inline = NewInlineAttrs().WithLink(&LinkAttrs{Destination: destination})
	AppendChildren(node, children...)
	return node
}

// NewContainer creates a node of kind with children appended.
func NewContainer(kind NodeKind, children ...*Node) *Node {
	node := NewNode(kind)
	AppendChildren(node, children...)
	return node
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// AppendChildren appends each child to parent in order.
func AppendChildren(parent *Node, children ...*Node) {
	for _, child := range children {
		AppendChild(parent, child)
	}
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}
