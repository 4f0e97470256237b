package maptree

import "github.com/pkg/errors"

// ErrClipboardEmpty is returned by CursorMut.Paste when nothing has been
// cut since the last paste.
var ErrClipboardEmpty = errors.New("maptree: clipboard is empty")

// ErrAlreadyRoot is returned by Cursor.Parent/CursorMut.Parent at the root.
var ErrAlreadyRoot = errors.New("maptree: already at root, no parent")

// ErrNoChildren is returned by Cursor.FirstChild at a leaf.
var ErrNoChildren = errors.New("maptree: node has no children")

// ErrNoNextSibling is returned by Cursor.NextSibling at the last child of
// its parent, or at the root.
var ErrNoNextSibling = errors.New("maptree: no next sibling")

func errDuplicate(name string) error {
	return errors.Errorf("maptree: a node named %q already exists here", name)
}

func errNotFound(name string) error {
	return errors.Errorf("maptree: no node named %q here", name)
}
