package premis

import (
	"github.com/beevik/etree"

	"github.com/KimNorgaard/go-premis/internal/xmlname"
	"github.com/KimNorgaard/go-premis/tree"
)

// Encode returns the XML element for the canonical tree n. Element and
// attribute names are written in camelCase; unprefixed element names are
// placed in the premis namespace. The returned element declares every
// namespace prefix used beneath it.
//
// n must not be nil. The returned element is owned by the caller.
func Encode(n *tree.Node) *etree.Element {
	el := encodeNode(n)
	used := map[string]bool{xmlname.PREMIS: true}
	collectPrefixes(n, used)
	for _, prefix := range xmlname.Prefixes {
		if used[prefix] {
			uri, _ := xmlname.LookupPrefix(prefix)
			el.CreateAttr("xmlns:"+prefix, uri)
		}
	}
	return el
}

func encodeNode(n *tree.Node) *etree.Element {
	el := etree.NewElement(wireName(n.Name(), true))
	for _, a := range n.Attrs() {
		el.CreateAttr(wireName(a.Name, false), a.Value)
	}
	for _, c := range n.Children() {
		switch c := c.(type) {
		case tree.Text:
			el.AddChild(etree.NewText(string(c)))
		case *tree.Node:
			el.AddChild(encodeNode(c))
		}
	}
	return el
}

// wireName maps a canonical name onto its qualified XML form.
func wireName(n tree.Name, element bool) string {
	local := xmlname.Camel(n.Local)
	switch {
	case n.Space != "":
		return n.Space + ":" + local
	case element:
		return xmlname.PREMIS + ":" + local
	}
	return local
}

func collectPrefixes(n *tree.Node, used map[string]bool) {
	if n.Name().Space != "" {
		used[n.Name().Space] = true
	}
	for _, a := range n.Attrs() {
		if a.Name.Space != "" {
			used[a.Name.Space] = true
		}
	}
	for _, e := range n.Elements() {
		collectPrefixes(e, used)
	}
}
