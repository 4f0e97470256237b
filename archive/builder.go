package archive

import "github.com/gowz/wz/maptree"

// Builder assembles a directory tree suitable for Write from scratch,
// typically while walking a filesystem directory that mirrors the
// archive's intended layout.
type Builder struct {
	tree *maptree.Map[Content]
}

// NewBuilder starts a builder with an empty root package named rootName.
func NewBuilder(rootName string) *Builder {
	return &Builder{tree: maptree.New(rootName, Content{Kind: KindPackage})}
}

// Tree returns the underlying tree, ready to pass to Write once populated.
func (b *Builder) Tree() *maptree.Map[Content] { return b.tree }

// Root returns a mutable cursor positioned at the root package.
func (b *Builder) Root() *maptree.CursorMut[Content] { return b.tree.RootCursorMut() }

// AddPackage creates a child Package named name at c's current position.
func AddPackage(c *maptree.CursorMut[Content], name string) error {
	return c.Create(name, Content{Kind: KindPackage})
}

// AddImage creates a child Image named name at c's current position,
// sourcing its size and checksum from provider.
func AddImage(c *maptree.CursorMut[Content], name string, provider ImageProvider) error {
	return c.Create(name, Content{
		Kind:     KindImage,
		Size:     provider.Size(),
		Checksum: provider.Checksum(),
		Provider: provider,
	})
}
