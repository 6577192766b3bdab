// Package schema declares the canonical shape of each PREMIS entity kind and
// assembles canonical trees from resolved construction arguments.
package schema

import (
	"maps"
	"slices"
	"strings"

	perrors "github.com/KimNorgaard/go-premis/errors"
	"github.com/KimNorgaard/go-premis/tree"
)

// Metadata carried on the root of every top-level PREMIS entity.
const (
	Version        = "3.0"
	SchemaLocation = "http://www.loc.gov/premis/v3 https://www.loc.gov/standards/premis/premis.xsd"
)

// Field is one element or attribute of an entity's shape. Children list
// attributes first, then elements in canonical order.
type Field struct {
	Name     tree.Name
	Attr     bool
	Required bool
	Repeat   bool
	Default  string
	Children []*Field
}

// Leaf reports whether f holds text rather than sub-elements.
func (f *Field) Leaf() bool { return f.Attr || len(f.Children) == 0 }

// Segment is f's path segment.
func (f *Field) Segment() string { return f.Name.String() }

// Schema is the shape of one entity kind.
type Schema struct {
	Name       string // root tag, e.g. "rights_statement"
	Root       *Field
	Identifier string // path of the identifier value
}

// Prefix is the leading part of element names that belong to the kind, e.g.
// "event_" for event_type.
func (s *Schema) Prefix() string { return s.Name + "_" }

// Walk calls fn for every field below the root with its canonical path, in
// schema order.
func (s *Schema) Walk(fn func(path string, f *Field)) {
	var walk func(prefix string, f *Field)
	walk = func(prefix string, f *Field) {
		for _, c := range f.Children {
			p := Join(prefix, c.Segment())
			fn(p, c)
			walk(p, c)
		}
	}
	walk("", s.Root)
}

// Lookup returns the field at the canonical path p.
func (s *Schema) Lookup(p string) (*Field, bool) {
	f := s.Root
	for _, seg := range strings.Split(p, ".") {
		var next *Field
		for _, c := range f.Children {
			if c.Segment() == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		f = next
	}
	return f, true
}

// Join appends seg to a dotted path.
func Join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}

// Arg is one construction argument keyed by its canonical path.
type Arg struct {
	Name  string // name the caller used
	Text  string
	Nodes []*tree.Node
	Tree  bool // Nodes holds pre-built sub-trees
}

// Assemble builds the canonical tree for s from args, keyed by canonical path.
func (s *Schema) Assemble(args map[string]Arg) (*tree.Node, error) {
	a := &assembler{schema: s, args: args, used: make(map[string]bool, len(args))}
	nodes, _, missing, err := a.element(s.Root, "")
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, a.fail(missing[0], "missing required field", nil)
	}
	for _, p := range slices.Sorted(maps.Keys(args)) {
		if !a.used[p] {
			return nil, a.fail(args[p].Name, "unexpected field", nil)
		}
	}
	return nodes[0], nil
}

type assembler struct {
	schema *Schema
	args   map[string]Arg
	used   map[string]bool
}

func (a *assembler) fail(field, msg string, err error) error {
	return &perrors.ConstructionError{Kind: a.schema.Name, Field: field, Message: msg, Err: err}
}

// element returns the nodes for f at path, whether any of them came from a
// caller argument, and the required paths left unfilled beneath it.
func (a *assembler) element(f *Field, path string) ([]*tree.Node, bool, []string, error) {
	if arg, ok := a.args[path]; ok && path != "" {
		a.used[path] = true
		if arg.Tree {
			return a.subtrees(f, path, arg)
		}
		if !f.Leaf() {
			return nil, false, nil, a.fail(arg.Name, "expects a sub-tree, not text", nil)
		}
		n, err := tree.New(f.Name, nil, tree.Text(arg.Text))
		if err != nil {
			return nil, false, nil, a.fail(arg.Name, "invalid value", err)
		}
		return []*tree.Node{n}, true, nil, nil
	}

	if f.Leaf() {
		switch {
		case f.Default != "":
			n, err := tree.New(f.Name, nil, tree.Text(f.Default))
			return []*tree.Node{n}, false, nil, err
		case f.Required:
			return nil, false, []string{path}, nil
		}
		return nil, false, nil, nil
	}

	var (
		attrs    []tree.Attr
		kids     []tree.Child
		supplied bool
		missing  []string
	)
	for _, c := range f.Children {
		p := Join(path, c.Segment())
		if c.Attr {
			v, ok, s, err := a.attr(c, p)
			if err != nil {
				return nil, false, nil, err
			}
			if !ok {
				if c.Required {
					missing = append(missing, p)
				}
				continue
			}
			supplied = supplied || s
			attrs = append(attrs, tree.Attr{Name: c.Name, Value: v})
			continue
		}
		nodes, s, m, err := a.element(c, p)
		if err != nil {
			return nil, false, nil, err
		}
		supplied = supplied || s
		missing = append(missing, m...)
		for _, n := range nodes {
			kids = append(kids, n)
		}
	}
	if !supplied && !f.Required && path != "" {
		return nil, false, nil, nil
	}
	n, err := tree.New(f.Name, attrs, kids...)
	if err != nil {
		return nil, false, nil, a.fail(path, "invalid value", err)
	}
	return []*tree.Node{n}, supplied, missing, nil
}

func (a *assembler) subtrees(f *Field, path string, arg Arg) ([]*tree.Node, bool, []string, error) {
	for _, p := range slices.Sorted(maps.Keys(a.args)) {
		if strings.HasPrefix(p, path+".") {
			return nil, false, nil, a.fail(a.args[p].Name, "conflicts with sub-tree argument "+arg.Name, nil)
		}
	}
	if len(arg.Nodes) == 0 && f.Required {
		return nil, false, []string{path}, nil
	}
	if !f.Repeat && len(arg.Nodes) > 1 {
		return nil, false, nil, a.fail(arg.Name, "takes a single sub-tree", nil)
	}
	for _, n := range arg.Nodes {
		if n.Name() != f.Name {
			return nil, false, nil, a.fail(arg.Name, "expects <"+f.Name.String()+">, got <"+n.Name().String()+">", nil)
		}
	}
	return arg.Nodes, len(arg.Nodes) > 0, nil, nil
}

// attr returns the value for attribute field f, whether it is present, and
// whether it was supplied by the caller.
func (a *assembler) attr(f *Field, path string) (string, bool, bool, error) {
	arg, ok := a.args[path]
	if !ok {
		return f.Default, f.Default != "", false, nil
	}
	a.used[path] = true
	if arg.Tree {
		return "", false, false, a.fail(arg.Name, "attribute expects text, not a sub-tree", nil)
	}
	return arg.Text, true, true, nil
}
