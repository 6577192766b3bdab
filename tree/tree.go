// Package tree defines the canonical tree: the immutable value form of one
// PREMIS element and its descendants.
package tree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Child is a node's child: either a *Node or a Text.
type Child interface {
	child()
}

// Text is a text child. The empty Text is a child in its own right and is
// distinct from having no children.
type Text string

func (Text) child() {}

// Attr is a single attribute.
type Attr struct {
	Name  Name
	Value string
}

// Attrs is the literal form of an attribute set used by E. Keys are parsed
// with ParseName.
type Attrs map[string]string

// Treer is implemented by every value that wraps a canonical tree.
type Treer interface {
	Tree() *Node
}

// Node is one element of a canonical tree. Nodes are never modified after
// construction, so sub-trees may be shared between trees.
type Node struct {
	name     Name
	attrs    []Attr
	children []Child
}

func (*Node) child() {}

// xmlnsAttr would be written as a namespace declaration and lost on decode.
var xmlnsAttr = Name{Local: "xmlns"}

// New returns a node after validating its names. Attribute names must be
// unique and must not be xmlns; attributes are stored in Name.Less order. Adjacent text children
// are merged, as XML cannot keep them apart.
func New(name Name, attrs []Attr, children ...Child) (*Node, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	sorted := slices.Clone(attrs)
	slices.SortFunc(sorted, func(a, b Attr) int {
		switch {
		case a.Name.Less(b.Name):
			return -1
		case b.Name.Less(a.Name):
			return 1
		}
		return 0
	})
	for i, a := range sorted {
		if err := a.Name.Validate(); err != nil {
			return nil, err
		}
		if a.Name == xmlnsAttr {
			return nil, fmt.Errorf("premis: attribute %q on <%s> is reserved for namespace declarations", a.Name, name)
		}
		if i > 0 && sorted[i-1].Name == a.Name {
			return nil, fmt.Errorf("premis: duplicate attribute %q on <%s>", a.Name, name)
		}
	}
	kids := make([]Child, 0, len(children))
	for _, c := range children {
		switch c := c.(type) {
		case Text:
			if i := len(kids) - 1; i >= 0 {
				if prev, ok := kids[i].(Text); ok {
					kids[i] = prev + c
					continue
				}
			}
			kids = append(kids, c)
		case *Node:
			if c == nil {
				return nil, fmt.Errorf("premis: nil child of <%s>", name)
			}
			kids = append(kids, c)
		default:
			return nil, fmt.Errorf("premis: unsupported child %T of <%s>", c, name)
		}
	}
	return &Node{name: name, attrs: sorted, children: kids}, nil
}

// E builds a node from a literal description and panics on invalid input.
// tag is parsed with ParseName. Each part is one of Attrs, string, Text,
// *Node (nil is skipped), []*Node or []Child.
func E(tag string, parts ...any) *Node {
	var attrs []Attr
	var children []Child
	for _, p := range parts {
		switch p := p.(type) {
		case Attrs:
			for k, v := range p {
				attrs = append(attrs, Attr{Name: ParseName(k), Value: v})
			}
		case string:
			children = append(children, Text(p))
		case Text:
			children = append(children, p)
		case *Node:
			if p != nil {
				children = append(children, p)
			}
		case []*Node:
			for _, n := range p {
				children = append(children, n)
			}
		case []Child:
			children = append(children, p...)
		default:
			panic(fmt.Sprintf("tree: unsupported part %T in E(%q)", p, tag))
		}
	}
	n, err := New(ParseName(tag), attrs, children...)
	if err != nil {
		panic(err)
	}
	return n
}

// Tree returns n itself.
func (n *Node) Tree() *Node { return n }

// Name returns the node's tag.
func (n *Node) Name() Name { return n.name }

// Attrs returns a copy of the node's attributes in normalized order.
func (n *Node) Attrs() []Attr { return slices.Clone(n.attrs) }

// Attr returns the value of the attribute called name.
func (n *Node) Attr(name Name) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns a copy of the node's children.
func (n *Node) Children() []Child { return slices.Clone(n.children) }

// Elements returns the element children in order.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.children {
		if e, ok := c.(*Node); ok {
			out = append(out, e)
		}
	}
	return out
}

// Text returns the concatenation of the node's direct text children.
func (n *Node) Text() string {
	var b strings.Builder
	for _, c := range n.children {
		if t, ok := c.(Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// Find returns the first element at the exact path below n, or nil.
// Path segments are separated by "." or "/".
func (n *Node) Find(path string) *Node {
	found := n.FindAll(path)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// FindAll returns every element at the exact path below n, in document order.
// The returned slice is owned by the caller.
func (n *Node) FindAll(path string) []*Node {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return []*Node{}
	}
	cur := []*Node{n}
	for _, seg := range segs {
		want := ParseName(seg)
		var next []*Node
		for _, c := range cur {
			for _, e := range c.Elements() {
				if e.name == want {
					next = append(next, e)
				}
			}
		}
		cur = next
	}
	if cur == nil {
		return []*Node{}
	}
	return cur
}

// FindText returns the text of the first element at path, or "".
func (n *Node) FindText(path string) string {
	if e := n.Find(path); e != nil {
		return e.Text()
	}
	return ""
}

// Equal reports whether n and o are structurally equal.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	if n.name != o.name || !slices.Equal(n.attrs, o.attrs) || len(n.children) != len(o.children) {
		return false
	}
	for i, c := range n.children {
		switch c := c.(type) {
		case Text:
			if t, ok := o.children[i].(Text); !ok || t != c {
				return false
			}
		case *Node:
			e, ok := o.children[i].(*Node)
			if !ok || !c.Equal(e) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether the trees wrapped by a and b are structurally equal.
// A nil Treer only equals another nil.
func Equal(a, b Treer) bool {
	return treeOf(a).Equal(treeOf(b))
}

func treeOf(t Treer) *Node {
	if t == nil {
		return nil
	}
	return t.Tree()
}

// String returns a compact S-expression of the tree.
func (n *Node) String() string {
	if n == nil {
		return "()"
	}
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteString("(")
	b.WriteString(n.name.String())
	if len(n.attrs) > 0 {
		b.WriteString(" {")
		for i, a := range n.attrs {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(a.Name.String())
			b.WriteString("=")
			b.WriteString(strconv.Quote(a.Value))
		}
		b.WriteString("}")
	}
	for _, c := range n.children {
		b.WriteString(" ")
		switch c := c.(type) {
		case Text:
			b.WriteString(strconv.Quote(string(c)))
		case *Node:
			c.write(b)
		}
	}
	b.WriteString(")")
}

// SplitPath splits a field path on "." and "/" and drops empty segments.
func SplitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' || r == '/' })
}
