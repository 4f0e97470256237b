// Package maptree implements the ordered, named n-ary arena tree shared by
// the archive package/image directory tree and the image property tree.
//
// A Map owns a contiguous arena of nodes; Cursor and CursorMut navigate it
// from a current position. Nodes are allocated once and never moved in
// memory. Deleting a subtree frees its slots, and later Create calls reuse
// them; a Cursor still positioned on a deleted node is not detected and
// reads whatever node occupies that slot afterwards. The tree is not a DAG:
// every node has exactly one parent.
package maptree

// nodeID indexes into a Map's arena. Valid ids are non-negative (the root is
// always allocated first, at id 0), so a nodeID of -1 doubles as
// "no parent" / "no node".
type nodeID int

const noNode nodeID = -1

type mapNode[T any] struct {
	name     string
	data     T
	parent   nodeID
	children []nodeID // insertion order
	free     bool
}
