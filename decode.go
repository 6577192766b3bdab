package premis

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/KimNorgaard/go-premis/internal/xmlname"
	"github.com/KimNorgaard/go-premis/tree"
)

// Decode returns the canonical tree for the XML element el. It is the
// inverse of Encode: namespace declarations are dropped, comments and
// processing instructions are skipped, and text, including CDATA and empty
// text, is kept verbatim.
//
// Decode fails with a DecodeError when an element or attribute name uses an
// unregistered prefix or does not follow the camelCase convention, or when
// elements nest deeper than the MaxDepth option allows.
func Decode(el *etree.Element, opts ...Option) (*tree.Node, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, &DecodeError{Message: "nil element"}
	}
	d := &decoder{opts: o}
	return d.element(el, "", 1)
}

type decoder struct {
	opts *options
	// trim drops whitespace-only text from elements that also hold
	// elements, undoing Indent.
	trim bool
}

func (d *decoder) element(el *etree.Element, parent string, depth int) (*tree.Node, error) {
	path := parent + "/" + el.FullTag()
	if depth > d.opts.maxDepth {
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("exceeds max depth of %d", d.opts.maxDepth)}
	}
	if el.Space != "" && el.Space != xmlname.PREMIS {
		if _, ok := xmlname.LookupPrefix(el.Space); !ok {
			return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unknown namespace prefix %q", el.Space)}
		}
	}
	local, err := canonicalLocal(el.Tag)
	if err != nil {
		return nil, &DecodeError{Path: path, Message: err.Error()}
	}
	name := tree.Name{Local: local}
	if el.Space != xmlname.PREMIS {
		name.Space = el.Space
	}

	attrs := make([]tree.Attr, 0, len(el.Attr))
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		if a.Space == xmlname.PREMIS {
			return nil, &DecodeError{Path: path, Message: fmt.Sprintf("attribute %q must not carry the element prefix", a.FullKey())}
		}
		local, err := canonicalLocal(a.Key)
		if err != nil {
			return nil, &DecodeError{Path: path, Message: "attribute " + err.Error()}
		}
		attrs = append(attrs, tree.Attr{Name: tree.Name{Space: a.Space, Local: local}, Value: a.Value})
	}

	trim := d.trim && len(el.ChildElements()) > 0
	var kids []tree.Child
	for _, tok := range el.Child {
		switch tok := tok.(type) {
		case *etree.Element:
			n, err := d.element(tok, path, depth+1)
			if err != nil {
				return nil, err
			}
			kids = append(kids, n)
		case *etree.CharData:
			if trim && tok.IsWhitespace() {
				continue
			}
			kids = append(kids, tree.Text(tok.Data))
		}
	}
	n, err := tree.New(name, attrs, kids...)
	if err != nil {
		return nil, &DecodeError{Path: path, Message: err.Error()}
	}
	return n, nil
}

// canonicalLocal maps a wire local name to its snake_case form and rejects
// names that would not map back to themselves.
func canonicalLocal(wire string) (string, error) {
	local := xmlname.Snake(wire)
	if !xmlname.ValidWire(wire) || !xmlname.ValidLocal(local) || xmlname.Camel(local) != wire {
		return "", fmt.Errorf("name %q does not follow the camelCase convention", wire)
	}
	return local, nil
}
