package xmlbridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzimage"
)

func TestFromTreeMapsTagsAndAttributes(t *testing.T) {
	tree := maptree.New[wzimage.Property]("Property", wzimage.Property{Kind: wzimage.KindPropertyList})
	root := tree.RootCursorMut()
	require.NoError(t, root.Create("hp", wzimage.Property{Kind: wzimage.KindShort, Short: 42}))
	require.NoError(t, root.Create("name", wzimage.Property{Kind: wzimage.KindString, Str: "Aran"}))
	require.NoError(t, root.Create("origin", wzimage.Property{Kind: wzimage.KindVector, Vector: wzimage.VectorData{X: 1, Y: 2}}))

	el, err := FromTree(tree)
	require.NoError(t, err)
	require.Equal(t, "imgdir", el.XMLName.Local)
	require.Len(t, el.Children, 3)

	byName := make(map[string]Element)
	for _, c := range el.Children {
		byName[c.Name] = c
	}

	require.Equal(t, "short", byName["hp"].XMLName.Local)
	require.Equal(t, "42", byName["hp"].Value)

	require.Equal(t, "string", byName["name"].XMLName.Local)
	require.Equal(t, "Aran", byName["name"].Value)

	require.Equal(t, "vector", byName["origin"].XMLName.Local)
	require.Equal(t, "1", byName["origin"].X)
	require.Equal(t, "2", byName["origin"].Y)
}

func TestFromTreeRecursesIntoCanvasChildren(t *testing.T) {
	tree := maptree.New[wzimage.Property]("Property", wzimage.Property{Kind: wzimage.KindPropertyList})
	root := tree.RootCursorMut()
	require.NoError(t, root.Create("icon", wzimage.Property{Kind: wzimage.KindCanvas, Canvas: wzimage.CanvasData{
		Width: 16, Height: 16, HasChildren: true,
	}}))
	require.NoError(t, root.MoveTo("icon"))
	require.NoError(t, root.Create("origin", wzimage.Property{Kind: wzimage.KindVector, Vector: wzimage.VectorData{X: 8, Y: 8}}))

	el, err := FromTree(tree)
	require.NoError(t, err)
	require.Len(t, el.Children, 1)
	icon := el.Children[0]
	require.Equal(t, "canvas", icon.XMLName.Local)
	require.Equal(t, "16", icon.Width)
	require.Len(t, icon.Children, 1)
	require.Equal(t, "vector", icon.Children[0].XMLName.Local)
}

func TestToTreeInvertsFromTree(t *testing.T) {
	tree := maptree.New[wzimage.Property]("Property", wzimage.Property{Kind: wzimage.KindPropertyList})
	root := tree.RootCursorMut()
	require.NoError(t, root.Create("hp", wzimage.Property{Kind: wzimage.KindShort, Short: 42}))
	require.NoError(t, root.Create("name", wzimage.Property{Kind: wzimage.KindString, Str: "Aran"}))
	require.NoError(t, root.Create("origin", wzimage.Property{Kind: wzimage.KindVector, Vector: wzimage.VectorData{X: 1, Y: 2}}))
	require.NoError(t, root.Create("bounds", wzimage.Property{Kind: wzimage.KindConvex}))
	require.NoError(t, root.MoveTo("bounds"))
	require.NoError(t, root.Create("0", wzimage.Property{Kind: wzimage.KindVector, Vector: wzimage.VectorData{X: 3, Y: 4}}))
	require.NoError(t, root.Parent())

	el, err := FromTree(tree)
	require.NoError(t, err)

	rebuilt, err := ToTree(el)
	require.NoError(t, err)

	rebuiltRoot := rebuilt.RootCursorMut()
	require.NoError(t, rebuiltRoot.MoveTo("hp"))
	require.Equal(t, int16(42), rebuiltRoot.Get().Short)
	require.NoError(t, rebuiltRoot.Parent())

	require.NoError(t, rebuiltRoot.MoveTo("origin"))
	require.Equal(t, wzimage.VectorData{X: 1, Y: 2}, rebuiltRoot.Get().Vector)
	require.NoError(t, rebuiltRoot.Parent())

	require.NoError(t, rebuiltRoot.MoveTo("bounds"))
	require.NoError(t, rebuiltRoot.MoveTo("0"))
	require.Equal(t, wzimage.VectorData{X: 3, Y: 4}, rebuiltRoot.Get().Vector)
}
