package internal

// Node is a template AST node: *TextNode or *TagNode.
type Node interface {
	Pos() Position
}

// RootNode holds the top-level nodes of a template.
type RootNode struct {
	Children []Node
}

// TextNode is literal output.
type TextNode struct {
	pos     Position
	Content string
}

func (n *TextNode) Pos() Position { return n.pos }

// NewTextNode creates a text node.
func NewTextNode(content string, pos Position) *TextNode {
	return &TextNode{pos: pos, Content: content}
}

// TagNode is a single (<r:x />) or double (<r:x>...</r:x>) tag.
type TagNode struct {
	pos        Position
	Name       string // as written, e.g. "authors:each"
	Attributes Attributes
	Children   []Node // body; nil for single tags
	SelfClose  bool
}

func (n *TagNode) Pos() Position { return n.pos }

// NewSelfClosingTag creates a single tag node.
func NewSelfClosingTag(name string, attrs Attributes, pos Position) *TagNode {
	return &TagNode{pos: pos, Name: name, Attributes: attrs, SelfClose: true}
}

// NewBlockTag creates a double tag node.
func NewBlockTag(name string, attrs Attributes, children []Node, pos Position) *TagNode {
	return &TagNode{pos: pos, Name: name, Attributes: attrs, Children: children}
}

// Attributes are the attributes of one tag. A nil Attributes is empty.
type Attributes map[string]string

// Get returns the value of key and whether it was set.
func (a Attributes) Get(key string) (string, bool) {
	val, ok := a[key]
	return val, ok
}

// GetDefault returns the value of key, or defaultVal when unset.
func (a Attributes) GetDefault(key, defaultVal string) string {
	if val, ok := a[key]; ok {
		return val
	}
	return defaultVal
}

// Map returns a copy of the attributes.
func (a Attributes) Map() map[string]string {
	result := make(map[string]string, len(a))
	for k, v := range a {
		result[k] = v
	}
	return result
}
