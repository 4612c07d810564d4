package block

// Block is one node in the content tree.
//
// Container-ness is decided by the external type registry, not by the
// presence of Children: a non-nil empty Children slice is a valid empty
// container, while nil means the block carries no child slot at all.
type Block struct {
	// ID uniquely identifies the block within its document.
	ID string `json:"id"`

	// Type is the block's type tag, interpreted by the type registry.
	Type string `json:"type"`

	// Properties holds the block's type-specific attributes.
	Properties map[string]any `json:"properties,omitempty"`

	// Children is the ordered list of nested blocks, if any.
	Children []*Block `json:"children,omitempty"`
}

// Clone returns a deep copy of the block and its subtree.
// Property values are copied one level deep; nested maps and slices inside
// property values are shared (properties are treated as value-like).
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := &Block{
		ID:   b.ID,
		Type: b.Type,
	}
	if b.Properties != nil {
		c.Properties = make(map[string]any, len(b.Properties))
		for k, v := range b.Properties {
			c.Properties[k] = v
		}
	}
	if b.Children != nil {
		c.Children = make([]*Block, len(b.Children))
		for i, child := range b.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// HasChildSlot reports whether the block has a children list, even an
// empty one.
func (b *Block) HasChildSlot() bool {
	return b != nil && b.Children != nil
}

// Document is an ordered forest of root blocks plus free-form metadata.
type Document struct {
	// Blocks is the ordered list of root blocks.
	Blocks []*Block `json:"blocks"`

	// Meta holds document-level metadata (title, timestamps, etc.).
	Meta map[string]any `json:"meta,omitempty"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{}
	if d.Blocks != nil {
		c.Blocks = make([]*Block, len(d.Blocks))
		for i, b := range d.Blocks {
			c.Blocks[i] = b.Clone()
		}
	}
	if d.Meta != nil {
		c.Meta = make(map[string]any, len(d.Meta))
		for k, v := range d.Meta {
			c.Meta[k] = v
		}
	}
	return c
}

// Len returns the total number of blocks in the document.
func (d *Document) Len() int {
	n := 0
	d.Walk(func(*Block, *Block) bool {
		n++
		return true
	})
	return n
}
