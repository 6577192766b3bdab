// Package mapper holds the per-type field tables behind Entity.Scan and
// NewFromStruct.
package mapper

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// Field is one exported struct field and the entity field name it maps to.
type Field struct {
	Name      string // passed to the resolver as is
	Index     []int
	Tagged    bool // Name came from a premis tag
	OmitEmpty bool
}

// tables maps a struct type to its []Field.
var tables sync.Map

// Fields returns the mapped fields of struct type t in declaration order.
// Unexported and embedded fields are ignored, as is any field tagged
// `premis:"-"`. The table for a type is computed once.
func Fields(t reflect.Type) []Field {
	if cached, ok := tables.Load(t); ok {
		return cached.([]Field)
	}

	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		tag, hasTag := sf.Tag.Lookup("premis")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		f := Field{
			Name:      name,
			Index:     sf.Index,
			Tagged:    hasTag && name != "",
			OmitEmpty: hasOption(opts, "omitempty"),
		}
		if !f.Tagged {
			f.Name = FieldName(sf.Name)
		}
		fields = append(fields, f)
	}

	cached, _ := tables.LoadOrStore(t, fields)
	return cached.([]Field)
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// FieldName converts a Go identifier to snake_case. A run of capitals is
// one word, so ObjectID is object_id and XSIType is xsi_type.
func FieldName(goName string) string {
	rs := []rune(goName)
	var b strings.Builder
	b.Grow(len(rs) + 4)
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
