package premis

import (
	"github.com/KimNorgaard/go-premis/internal/pathtable"
	"github.com/KimNorgaard/go-premis/internal/schema"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind is one of the fixed PREMIS entity kinds.
type Kind uint8

// Entity kinds, in schema order.
const (
	KindObject Kind = iota
	KindEvent
	KindAgent
	KindRightsStatement
)

// Kinds returns every entity kind.
func Kinds() []Kind {
	return []Kind{KindObject, KindEvent, KindAgent, KindRightsStatement}
}

// KindOf returns the kind whose root element is tag, e.g. "rights_statement".
func KindOf(tag string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Tag() == tag {
			return k, true
		}
	}
	return 0, false
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return int(k) < len(schema.All) }

// Tag returns the canonical root element name of k.
func (k Kind) Tag() string {
	if !k.Valid() {
		return k.String()
	}
	return schema.All[k].Name
}

func (k Kind) schema() *schema.Schema { return schema.All[k] }

func (k Kind) table() *pathtable.Table { return pathtable.For(k.schema()) }

// Paths returns every canonical field path of k in sorted order.
func Paths(k Kind) []string {
	if !k.Valid() {
		return nil
	}
	return k.table().Paths()
}

// Resolve returns the canonical path that name refers to within k. It fails
// with a NotFoundError or an AmbiguousPathError.
func Resolve(k Kind, name string) (string, error) {
	if !k.Valid() {
		return "", &NotFoundError{Kind: k.String(), Name: name, Message: "unknown entity kind"}
	}
	e, err := k.table().Resolve(name)
	if err != nil {
		return "", err
	}
	return e.Path, nil
}

// Aliases returns every name that resolves to the canonical path within k.
func Aliases(k Kind, path string) []string {
	if !k.Valid() {
		return nil
	}
	return k.table().Aliases(path)
}
