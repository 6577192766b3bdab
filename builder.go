package premis

import (
	"strings"

	"github.com/google/uuid"
)

// Builder collects construction arguments for one entity kind, typically
// to derive a new entity from an existing one. The zero Builder is not
// usable; call NewBuilder.
//
//	e, err := premis.NewBuilder(premis.KindObject).
//		From(old, "object_identifier", "relationship").
//		Set("original_name", "renamed.txt").
//		Build()
type Builder struct {
	kind     Kind
	args     Args
	generate bool
	err      error
}

// NewBuilder returns a Builder for kind k.
func NewBuilder(k Kind) *Builder {
	return &Builder{kind: k, args: make(Args)}
}

// Set records one argument. Naming the same argument twice is an error
// reported by Build.
func (b *Builder) Set(name string, v any) *Builder {
	if b.err != nil {
		return b
	}
	if _, dup := b.args[name]; dup {
		b.err = &ConstructionError{Kind: b.kind.Tag(), Field: name, Message: "set more than once"}
		return b
	}
	b.args[name] = v
	return b
}

// From copies the named fields from src. Each name is resolved within src's
// kind and set under its canonical path. Absent optional fields are skipped.
// A nil src is an error reported by Build.
func (b *Builder) From(src *Entity, names ...string) *Builder {
	if b.err == nil && src.Tree() == nil {
		b.err = &ConstructionError{Kind: b.kind.Tag(), Message: "cannot copy fields from a nil entity"}
	}
	for _, name := range names {
		if b.err != nil {
			return b
		}
		entry, err := src.kind.table().Resolve(name)
		if err != nil {
			b.err = err
			return b
		}
		v, ok := src.lookup(entry)
		if !ok {
			continue
		}
		b.Set(entry.Path, v)
	}
	return b
}

// GenerateIdentifier fills the identifier value with a random UUID unless
// it, or the identifier element holding it, has been set.
func (b *Builder) GenerateIdentifier() *Builder {
	b.generate = true
	return b
}

// Build constructs the entity.
func (b *Builder) Build() (*Entity, error) {
	if b.err != nil {
		return nil, b.err
	}
	args := make(Args, len(b.args)+1)
	for k, v := range b.args {
		args[k] = v
	}
	if b.generate && b.kind.Valid() && !b.identifierSet() {
		args[b.kind.schema().Identifier] = uuid.NewString()
	}
	return New(b.kind, args)
}

func (b *Builder) identifierSet() bool {
	if _, ok := b.args[DataArg]; ok {
		return true
	}
	id := b.kind.schema().Identifier
	for name := range b.args {
		p, err := Resolve(b.kind, name)
		if err != nil {
			continue
		}
		if p == id || strings.HasPrefix(id, p+".") {
			return true
		}
	}
	return false
}
