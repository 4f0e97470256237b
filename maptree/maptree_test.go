package maptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddNodes(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()

	require.NoError(t, c.Create("n1_1", 150))
	require.NoError(t, c.Create("n1_2", 3500))
	require.Error(t, c.Create("n1_2", 0))
	require.Equal(t, []string{"n1_1", "n1_2"}, c.List())
}

func TestRemoveNode(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()

	require.NoError(t, c.Create("n1_1", 150))
	require.NoError(t, c.Create("n1_2", 3500))
	require.NoError(t, c.Delete("n1_1"))
	require.Error(t, c.Delete("n1_1"))
	require.Equal(t, []string{"n1_2"}, c.List())
}

func TestRemoveSubtree(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()

	require.NoError(t, c.Create("n1_1", 150))
	require.NoError(t, c.Create("n1_2", 3500))
	require.NoError(t, c.MoveTo("n1_1"))
	require.NoError(t, c.Create("n1_2_1", 50))
	require.NoError(t, c.Parent())
	require.NoError(t, c.Delete("n1_1"))
	require.Equal(t, []string{"n1_2"}, c.List())
}

func TestMoveNode(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()

	require.NoError(t, c.Create("n1_1", 150))
	require.NoError(t, c.Create("n1_2", 3500))
	require.NoError(t, c.MoveTo("n1_1"))
	require.NoError(t, c.Create("n1_2_1", 50))
	require.NoError(t, c.Parent())
	require.NoError(t, c.Cut("n1_1"))
	require.NoError(t, c.MoveTo("n1_2"))
	require.NoError(t, c.Paste())
	require.Equal(t, []string{"n1_1"}, c.List())
}

func TestCutPurgesPreviousClipboard(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()

	require.NoError(t, c.Create("a", 1))
	require.NoError(t, c.Create("b", 2))
	require.NoError(t, c.Cut("a"))
	require.NoError(t, c.Cut("b")) // purges "a" from the clipboard permanently
	require.NoError(t, c.Paste())  // pastes "b" back under n1

	require.Equal(t, []string{"b"}, c.List())
}

func TestPasteWithEmptyClipboardErrors(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()
	require.ErrorIs(t, c.Paste(), ErrClipboardEmpty)
}

func TestPwd(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()

	require.NoError(t, c.Create("n1_1", 150))
	require.NoError(t, c.MoveTo("n1_1"))
	require.NoError(t, c.Create("n1_1_1", 155))
	require.NoError(t, c.Create("n1_1_2", 175))
	require.NoError(t, c.MoveTo("n1_1_1"))
	require.NoError(t, c.Create("n1_1_1_1", 255))
	require.NoError(t, c.MoveTo("n1_1_1_1"))

	require.Equal(t, []string{"n1", "n1_1", "n1_1_1", "n1_1_1_1"}, c.Pwd())
}

func TestParentAtRootErrors(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()
	require.ErrorIs(t, c.Parent(), ErrAlreadyRoot)
}

func TestRename(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()
	require.NoError(t, c.Create("old", 1))
	require.NoError(t, c.MoveTo("old"))
	c.Rename("new")
	require.NoError(t, c.Parent())
	require.Equal(t, []string{"new"}, c.List())
}

func TestGetMutMutatesInPlace(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()
	require.NoError(t, c.Create("child", 10))
	require.NoError(t, c.MoveTo("child"))
	*c.GetMut() = 20
	require.Equal(t, 20, c.Get())
}

func TestFirstChildAndNextSibling(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()
	require.NoError(t, c.Create("a", 1))
	require.NoError(t, c.Create("b", 2))
	require.NoError(t, c.Create("c", 3))

	require.NoError(t, c.FirstChild())
	require.Equal(t, "a", c.Name())
	require.NoError(t, c.NextSibling())
	require.Equal(t, "b", c.Name())
	require.NoError(t, c.NextSibling())
	require.Equal(t, "c", c.Name())
	require.ErrorIs(t, c.NextSibling(), ErrNoNextSibling)
}

func TestFirstChildAtLeafErrors(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()
	require.ErrorIs(t, c.FirstChild(), ErrNoChildren)
}

func TestNextSiblingAtRootErrors(t *testing.T) {
	m := New("n1", 100)
	c := m.RootCursorMut()
	require.ErrorIs(t, c.NextSibling(), ErrNoNextSibling)
}

func TestWalkVisitsPreOrder(t *testing.T) {
	m := New("root", 0)
	c := m.RootCursorMut()
	require.NoError(t, c.Create("a", 1))
	require.NoError(t, c.Create("b", 2))
	require.NoError(t, c.MoveTo("a"))
	require.NoError(t, c.Create("a1", 3))
	require.NoError(t, c.Parent())

	var visited []string
	require.NoError(t, c.Walk(func(n *Cursor[int]) error {
		visited = append(visited, n.Name())
		return nil
	}))
	require.Equal(t, []string{"root", "a", "a1", "b"}, visited)
}
