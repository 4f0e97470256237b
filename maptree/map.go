package maptree

// Map owns the arena backing an entire tree of T. The zero value is not
// usable; construct one with New.
type Map[T any] struct {
	nodes     []*mapNode[T]
	freeSlots []nodeID
	root      nodeID
}

// New creates a Map with a single root node holding data.
func New[T any](rootName string, data T) *Map[T] {
	m := &Map[T]{}
	m.root = m.alloc(rootName, data)
	return m
}

// RootCursor returns a read-only cursor positioned at the root.
func (m *Map[T]) RootCursor() *Cursor[T] {
	return &Cursor[T]{m: m, pos: m.root}
}

// RootCursorMut returns a read-write cursor positioned at the root.
func (m *Map[T]) RootCursorMut() *CursorMut[T] {
	return &CursorMut[T]{Cursor: Cursor[T]{m: m, pos: m.root}, clipboard: noNode}
}

// Len reports the number of live nodes in the tree.
func (m *Map[T]) Len() int {
	n := 0
	for _, nd := range m.nodes {
		if nd != nil && !nd.free {
			n++
		}
	}
	return n
}

func (m *Map[T]) alloc(name string, data T) nodeID {
	if len(m.freeSlots) > 0 {
		id := m.freeSlots[len(m.freeSlots)-1]
		m.freeSlots = m.freeSlots[:len(m.freeSlots)-1]
		*m.nodes[id] = mapNode[T]{name: name, data: data, parent: noNode}
		return id
	}
	id := nodeID(len(m.nodes))
	m.nodes = append(m.nodes, &mapNode[T]{name: name, data: data, parent: noNode})
	return id
}

// freeSubtree recursively frees id and every descendant, making their slots
// available for reuse. It does not touch id's entry in its former parent's
// children list; callers detach first.
func (m *Map[T]) freeSubtree(id nodeID) {
	nd := m.nodes[id]
	for _, child := range nd.children {
		m.freeSubtree(child)
	}
	nd.children = nil
	nd.free = true
	m.freeSlots = append(m.freeSlots, id)
}

func (m *Map[T]) childID(parent nodeID, name string) (nodeID, bool) {
	for _, id := range m.nodes[parent].children {
		if m.nodes[id].name == name {
			return id, true
		}
	}
	return noNode, false
}

func (m *Map[T]) childNames(parent nodeID) []string {
	children := m.nodes[parent].children
	names := make([]string, len(children))
	for i, id := range children {
		names[i] = m.nodes[id].name
	}
	return names
}

func (m *Map[T]) pathNames(id nodeID) []string {
	var rev []string
	for cur := id; cur != noNode; cur = m.nodes[cur].parent {
		rev = append(rev, m.nodes[cur].name)
	}
	path := make([]string, len(rev))
	for i, name := range rev {
		path[len(rev)-1-i] = name
	}
	return path
}

// detach removes id from its parent's child list and clears its parent
// link. id itself stays allocated and keeps its own subtree intact.
func (m *Map[T]) detach(id nodeID) {
	nd := m.nodes[id]
	parent := nd.parent
	if parent == noNode {
		return
	}
	siblings := m.nodes[parent].children
	for i, sib := range siblings {
		if sib == id {
			m.nodes[parent].children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	nd.parent = noNode
}

// attach appends id as the last child of parent.
func (m *Map[T]) attach(parent, id nodeID) {
	m.nodes[id].parent = parent
	m.nodes[parent].children = append(m.nodes[parent].children, id)
}
