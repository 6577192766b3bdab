// Package pathtable resolves the short field names callers use against the
// canonical paths of an entity kind's schema.
package pathtable

import (
	"slices"
	"strings"
	"sync"

	perrors "github.com/KimNorgaard/go-premis/errors"
	"github.com/KimNorgaard/go-premis/internal/schema"
	"github.com/KimNorgaard/go-premis/tree"
)

// Entry describes one canonical path.
type Entry struct {
	Path  string      // canonical dotted path, e.g. "object_characteristics.fixity.message_digest"
	Elems []tree.Name // element segments below the root
	Attr  *tree.Name  // final attribute segment, nil for elements
	Field *schema.Field
}

// Table maps every accepted spelling of a field name to its canonical path.
// A Table is immutable once built.
type Table struct {
	kind      string
	entries   map[string]*Entry   // canonical path -> entry
	full      map[string]string   // full-path spelling -> canonical path
	unique    map[string]string   // alias -> canonical path
	ambiguous map[string][]string // alias -> sorted candidate paths
}

// tableCache holds one Table per schema. Tables are built on first use and
// never change afterwards.
var tableCache sync.Map

// For returns the table for s, building it on first use.
func For(s *schema.Schema) *Table {
	if t, ok := tableCache.Load(s); ok {
		return t.(*Table)
	}
	t, _ := tableCache.LoadOrStore(s, Build(s))
	return t.(*Table)
}

// Build walks s and registers, for every field, its full path with the
// alternate spellings of a namespaced attribute segment, every trailing
// suffix of those, the bare name of a namespaced attribute when no other
// attribute of the kind shares it, and element names with the kind's prefix
// stripped. Aliases claimed by more than one path are recorded as ambiguous.
func Build(s *schema.Schema) *Table {
	t := &Table{
		kind:      s.Name,
		entries:   make(map[string]*Entry),
		full:      make(map[string]string),
		unique:    make(map[string]string),
		ambiguous: make(map[string][]string),
	}
	bare := bareAttrs(s)
	aliases := make(map[string][]string)
	addAlias := func(alias, path string) {
		if !slices.Contains(aliases[alias], path) {
			aliases[alias] = append(aliases[alias], path)
		}
	}

	s.Walk(func(path string, f *schema.Field) {
		e := newEntry(path, f)
		t.entries[path] = e

		segs := strings.Split(path, ".")
		head := segs[:len(segs)-1]
		for _, last := range spellings(f) {
			t.full[join(head, last)] = path
			for i := 1; i <= len(head); i++ {
				addAlias(join(head[i:], last), path)
			}
		}
		if f.Attr && f.Name.Space != "" && bare[f.Name.Local] == 1 {
			for i := 0; i <= len(head); i++ {
				addAlias(join(head[i:], f.Name.Local), path)
			}
		}
		if !f.Attr {
			if short, ok := strings.CutPrefix(f.Name.Local, s.Prefix()); ok {
				addAlias(short, path)
			}
		}
	})

	for alias, paths := range aliases {
		if _, ok := t.full[alias]; ok {
			continue
		}
		if len(paths) == 1 {
			t.unique[alias] = paths[0]
			continue
		}
		slices.Sort(paths)
		t.ambiguous[alias] = paths
	}
	return t
}

func newEntry(path string, f *schema.Field) *Entry {
	segs := strings.Split(path, ".")
	e := &Entry{Path: path, Field: f}
	for _, seg := range segs[:len(segs)-1] {
		e.Elems = append(e.Elems, tree.ParseName(seg))
	}
	if f.Attr {
		e.Attr = &f.Name
	} else {
		e.Elems = append(e.Elems, f.Name)
	}
	return e
}

// spellings returns every way of writing f's own path segment. Only a
// namespaced attribute has alternatives: "xsi:type" may also be written
// "xsi_type" or "xsi.type".
func spellings(f *schema.Field) []string {
	if !f.Attr || f.Name.Space == "" {
		return []string{f.Segment()}
	}
	return []string{f.Segment(), f.Name.Flat(), f.Name.Space + "." + f.Name.Local}
}

func join(head []string, last string) string {
	if len(head) == 0 {
		return last
	}
	return strings.Join(head, ".") + "." + last
}

// bareAttrs counts the namespaced and unprefixed attributes of s by local
// name.
func bareAttrs(s *schema.Schema) map[string]int {
	counts := make(map[string]int)
	s.Walk(func(_ string, f *schema.Field) {
		if f.Attr {
			counts[f.Name.Local]++
		}
	})
	return counts
}

// Normalize rewrites the alternative separators "__" and "/" to ".".
func Normalize(name string) string {
	name = strings.ReplaceAll(name, "__", ".")
	return strings.ReplaceAll(name, "/", ".")
}

// Resolve returns the entry name refers to. A full path wins over any alias;
// an alias shared by several paths is an AmbiguousPathError.
func (t *Table) Resolve(name string) (*Entry, error) {
	n := Normalize(name)
	if p, ok := t.full[n]; ok {
		return t.entries[p], nil
	}
	if p, ok := t.unique[n]; ok {
		return t.entries[p], nil
	}
	if paths, ok := t.ambiguous[n]; ok {
		return nil, &perrors.AmbiguousPathError{Kind: t.kind, Name: name, Candidates: slices.Clone(paths)}
	}
	return nil, &perrors.NotFoundError{Kind: t.kind, Name: name}
}

// Entry returns the entry for a canonical path.
func (t *Table) Entry(path string) (*Entry, bool) {
	e, ok := t.entries[path]
	return e, ok
}

// Paths returns every canonical path in sorted order.
func (t *Table) Paths() []string {
	out := make([]string, 0, len(t.entries))
	for p := range t.entries {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Aliases returns every accepted short name that resolves to path, sorted.
// Full-path spellings are included.
func (t *Table) Aliases(path string) []string {
	var out []string
	for name, p := range t.full {
		if p == path {
			out = append(out, name)
		}
	}
	for name, p := range t.unique {
		if p == path {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
