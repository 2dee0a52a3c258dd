// Package mdast provides the Markdown AST that the changelog renderers walk.
// It defines:
//   - Node: a tagged block or inline node linked into a tree
//   - Visitor: exhaustive per-kind dispatch for renderers
//   - Source: one parsed document with its raw content
package mdast
