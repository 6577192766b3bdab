package premis

import (
	"sync"

	"github.com/beevik/etree"

	"github.com/KimNorgaard/go-premis/internal/pathtable"
	"github.com/KimNorgaard/go-premis/mapper"
	"github.com/KimNorgaard/go-premis/tree"
)

// Entity is an immutable PREMIS entity: a kind plus its canonical tree.
// Entities are safe for concurrent use.
type Entity struct {
	kind Kind
	root *tree.Node

	once sync.Once
	elem *etree.Element
}

// Kind returns the entity's kind.
func (e *Entity) Kind() Kind { return e.kind }

// Tree returns the canonical tree. It returns nil for a nil Entity.
func (e *Entity) Tree() *tree.Node {
	if e == nil {
		return nil
	}
	return e.root
}

// Element returns the XML element for the entity. The element is encoded
// once; every call returns a fresh copy owned by the caller.
func (e *Entity) Element() *etree.Element {
	e.once.Do(func() { e.elem = Encode(e.root) })
	return e.elem.Copy()
}

func (e *Entity) String() string {
	return e.kind.String() + e.root.String()
}

// Resolve returns the canonical path name refers to within the entity's kind.
func (e *Entity) Resolve(name string) (string, error) {
	return Resolve(e.kind, name)
}

// Get reads a field by any name the resolver accepts. The result is a string
// for leaves and attributes, a *tree.Node for single compound fields and a
// []*tree.Node for repeatable ones. Absent optional fields read as "", a nil
// *tree.Node or an empty slice.
//
// Where the path passes through a repeatable field, its first item is used.
func (e *Entity) Get(name string) (any, error) {
	entry, err := e.kind.table().Resolve(name)
	if err != nil {
		return nil, err
	}
	v, _ := e.lookup(entry)
	return v, nil
}

// Text reads a leaf or attribute field. Compound fields read as the text of
// their first element.
func (e *Entity) Text(name string) (string, error) {
	v, err := e.Get(name)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case *tree.Node:
		if v == nil {
			return "", nil
		}
		return v.Text(), nil
	case []*tree.Node:
		if len(v) == 0 {
			return "", nil
		}
		return v[0].Text(), nil
	}
	return "", nil
}

// Nodes reads an element field as a sequence. A single compound reads as a
// sequence of at most one; leaves read as their element.
func (e *Entity) Nodes(name string) ([]*tree.Node, error) {
	entry, err := e.kind.table().Resolve(name)
	if err != nil {
		return nil, err
	}
	if entry.Attr != nil {
		return nil, &NotFoundError{Kind: e.kind.Tag(), Name: name, Message: "attribute has no elements"}
	}
	return e.elements(entry.Elems), nil
}

// lookup returns the value at entry and whether it is present.
func (e *Entity) lookup(entry *pathtable.Entry) (any, bool) {
	if entry.Attr != nil {
		parent := e.first(entry.Elems)
		if parent == nil {
			return "", false
		}
		return parent.Attr(*entry.Attr)
	}
	switch {
	case entry.Field.Repeat:
		nodes := e.elements(entry.Elems)
		return nodes, len(nodes) > 0
	case entry.Field.Leaf():
		n := e.first(entry.Elems)
		if n == nil {
			return "", false
		}
		return n.Text(), true
	}
	n := e.first(entry.Elems)
	return n, n != nil
}

// first follows the first matching element at every segment.
func (e *Entity) first(elems []tree.Name) *tree.Node {
	cur := e.root
	for _, name := range elems {
		cur = child(cur, name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// elements returns every element named by the last segment beneath the
// first match of the segments before it.
func (e *Entity) elements(elems []tree.Name) []*tree.Node {
	out := []*tree.Node{}
	if len(elems) == 0 {
		return out
	}
	parent := e.first(elems[:len(elems)-1])
	if parent == nil {
		return out
	}
	last := elems[len(elems)-1]
	for _, c := range parent.Elements() {
		if c.Name() == last {
			out = append(out, c)
		}
	}
	return out
}

func child(n *tree.Node, name tree.Name) *tree.Node {
	for _, c := range n.Elements() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Find returns the first element at the exact path below the root, or nil.
// Names are not resolved.
func (e *Entity) Find(path string) *tree.Node { return e.root.Find(path) }

// FindAll returns every element at the exact path below the root. The
// returned slice is owned by the caller.
func (e *Entity) FindAll(path string) []*tree.Node { return e.root.FindAll(path) }

// FindText returns the text of the first element at the exact path, or "".
func (e *Entity) FindText(path string) string { return e.root.FindText(path) }

// Equal reports whether the entity's tree equals the tree wrapped by o,
// which may be another Entity or a raw *tree.Node.
func (e *Entity) Equal(o tree.Treer) bool { return Equal(e, o) }

// Scan copies fields into the struct pointed to by v. See the mapper package
// for the field tags it honors.
func (e *Entity) Scan(v any) error { return mapper.Map(e, v) }

// Equal reports whether a and b wrap structurally equal trees. Either side
// may be an Entity or a raw *tree.Node.
func Equal(a, b tree.Treer) bool { return tree.Equal(a, b) }

// Contains reports whether seq holds a value whose tree equals x's.
func Contains[E tree.Treer](seq []E, x tree.Treer) bool {
	for _, v := range seq {
		if tree.Equal(v, x) {
			return true
		}
	}
	return false
}
