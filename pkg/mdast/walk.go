package mdast

import "errors"

// SkipChildren can be returned by a WalkFunc to leave a node's subtree
// unvisited. Walk does not report it as an error.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // sentinel, not a failure

// WalkFunc is called for every node Walk visits.
type WalkFunc func(n *Node) error

// Walk visits root and its descendants in document order. A WalkFunc error
// other than SkipChildren stops the walk and is returned.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	switch err := walkFunc(root); {
	case errors.Is(err, SkipChildren):
		return nil
	case err != nil:
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindByKind returns the outermost nodes of kind below root, in document
// order. Matches are not searched for nested matches, so a table's rows do
// not pick up rows of a table nested in a cell.
func FindByKind(root *Node, kind NodeKind) []*Node {
	var found []*Node
	if root == nil {
		return nil
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		_ = Walk(child, func(n *Node) error {
			if n.Kind == kind {
				found = append(found, n)
				return SkipChildren
			}
			return nil
		})
	}
	return found
}
