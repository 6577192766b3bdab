package premis

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/KimNorgaard/go-premis/internal/schema"
	"github.com/KimNorgaard/go-premis/tree"
)

// Marshal returns the XML document for the tree wrapped by v.
//
// Output is compact unless the Indent option is given.
func Marshal(v tree.Treer, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if v == nil || v.Tree() == nil {
		return nil, fmt.Errorf("premis: Marshal(nil)")
	}
	doc := etree.NewDocument()
	// Escape carriage returns and attribute whitespace, which a parser
	// would otherwise normalize away.
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	doc.SetRoot(Encode(v.Tree()))
	if o.indent > 0 {
		doc.Indent(o.indent)
	}
	return doc.WriteToBytes()
}

// Unmarshal parses an XML document holding one PREMIS entity.
//
// Whitespace-only text between child elements is dropped, so documents
// written with Indent decode to the same entity as compact ones. A schema
// leaf written as an empty element decodes with empty text.
func Unmarshal(data []byte, opts ...Option) (*Entity, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &DecodeError{Message: "malformed XML: " + err.Error()}
	}
	el := doc.Root()
	if el == nil {
		return nil, &DecodeError{Message: "document has no root element"}
	}
	d := &decoder{opts: o, trim: true}
	root, err := d.element(el, "", 1)
	if err != nil {
		return nil, err
	}
	e, err := fromTree(root, "/"+el.FullTag())
	if err != nil {
		return nil, err
	}
	e.root = fillEmptyLeaves(e.root, e.kind.schema().Root)
	return e, nil
}

// FromElement decodes el and wraps it in an Entity whose kind is chosen by
// the root tag. Any other root is a DecodeError.
func FromElement(el *etree.Element, opts ...Option) (*Entity, error) {
	root, err := Decode(el, opts...)
	if err != nil {
		return nil, err
	}
	return fromTree(root, "/"+el.FullTag())
}

func fromTree(root *tree.Node, path string) (*Entity, error) {
	kind, ok := KindOf(root.Name().String())
	if !ok {
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unexpected root element <%s>", root.Name())}
	}
	return &Entity{kind: kind, root: root}, nil
}

// fillEmptyLeaves gives every childless element that f declares a leaf an
// empty text child. XML cannot tell <a></a> from <a/>, so this restores the
// form construction produces for an empty value.
func fillEmptyLeaves(n *tree.Node, f *schema.Field) *tree.Node {
	if f.Leaf() {
		if len(n.Children()) > 0 {
			return n
		}
		out, err := tree.New(n.Name(), n.Attrs(), tree.Text(""))
		if err != nil {
			return n
		}
		return out
	}

	kids := n.Children()
	changed := false
	for i, c := range kids {
		e, ok := c.(*tree.Node)
		if !ok {
			continue
		}
		cf := elementField(f, e.Name())
		if cf == nil {
			continue
		}
		if filled := fillEmptyLeaves(e, cf); filled != e {
			kids[i] = filled
			changed = true
		}
	}
	if !changed {
		return n
	}
	out, err := tree.New(n.Name(), n.Attrs(), kids...)
	if err != nil {
		return n
	}
	return out
}

func elementField(f *schema.Field, name tree.Name) *schema.Field {
	for _, c := range f.Children {
		if !c.Attr && c.Name == name {
			return c
		}
	}
	return nil
}
