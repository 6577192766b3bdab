// Package mapper copies entity fields into Go structs and back.
//
// Struct fields are matched to entity fields by the name in their `premis`
// tag, or by the snake_case form of the Go field name when untagged. Any
// name the entity's resolver accepts may be used:
//
//	type Pointer struct {
//		ID        string `premis:"identifier_value"`
//		Digest    string `premis:"message_digest"`
//		Size      int64
//		Relations []*tree.Node `premis:"relationship,omitempty"`
//		Internal  string       `premis:"-"`
//	}
//
// Untagged fields whose name is unknown to the entity kind are skipped;
// tagged fields must resolve. A run of capitals in a Go name is one word:
// ObjectID is read as object_id and XSIType as xsi_type.
//
// A []string field reads the text of every element a name selects. When
// building an entity it supplies one leaf value, so it may hold at most one
// text; use []*tree.Node for repeatable fields.
package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	perrors "github.com/KimNorgaard/go-premis/errors"
	imapper "github.com/KimNorgaard/go-premis/internal/mapper"
	"github.com/KimNorgaard/go-premis/tree"
)

// Source is an entity whose fields can be read by name.
type Source interface {
	Get(name string) (any, error)
}

var (
	nodeType  = reflect.TypeFor[*tree.Node]()
	nodesType = reflect.TypeFor[[]*tree.Node]()
)

// Map reads the fields of the struct pointed to by v from src.
func Map(src Source, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("premis: Scan(non-pointer %T or nil)", v)
	}
	rv = rv.Elem()

	for _, f := range imapper.Fields(rv.Type()) {
		val, err := src.Get(f.Name)
		if err != nil {
			if !f.Tagged && errors.Is(err, perrors.ErrNotFound) {
				continue
			}
			return err
		}
		if err := setValue(rv.FieldByIndex(f.Index), val); err != nil {
			return fmt.Errorf("premis: field %q: %w", f.Name, err)
		}
	}
	return nil
}

// setValue stores an entity value into a Go value.
func setValue(rv reflect.Value, val any) error {
	switch rv.Type() {
	case nodeType:
		switch val := val.(type) {
		case *tree.Node:
			rv.Set(reflect.ValueOf(val))
		case []*tree.Node:
			if len(val) > 0 {
				rv.Set(reflect.ValueOf(val[0]))
			}
		default:
			return fmt.Errorf("cannot scan %T into %s", val, rv.Type())
		}
		return nil
	case nodesType:
		switch val := val.(type) {
		case []*tree.Node:
			rv.Set(reflect.ValueOf(val))
		case *tree.Node:
			if val != nil {
				rv.Set(reflect.ValueOf([]*tree.Node{val}))
			}
		default:
			return fmt.Errorf("cannot scan %T into %s", val, rv.Type())
		}
		return nil
	}

	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.String {
		var texts []string
		switch val := val.(type) {
		case []*tree.Node:
			for _, n := range val {
				texts = append(texts, n.Text())
			}
		case *tree.Node:
			if val != nil {
				texts = append(texts, val.Text())
			}
		case string:
			if val != "" {
				texts = append(texts, val)
			}
		}
		out := reflect.MakeSlice(rv.Type(), len(texts), len(texts))
		for i, s := range texts {
			out.Index(i).SetString(s)
		}
		rv.Set(out)
		return nil
	}

	s, err := text(val)
	if err != nil {
		return fmt.Errorf("cannot scan %T into %s", val, rv.Type())
	}
	return setScalar(rv, s)
}

func text(val any) (string, error) {
	switch val := val.(type) {
	case string:
		return val, nil
	case *tree.Node:
		if val == nil {
			return "", nil
		}
		return val.Text(), nil
	}
	return "", fmt.Errorf("unsupported value %T", val)
}

// setScalar parses s into a scalar Go value. An empty s stores the zero
// value.
func setScalar(rv reflect.Value, s string) error {
	if s == "" {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		rv.SetBool(b)
	default:
		return fmt.Errorf("cannot scan text into %s", rv.Type())
	}
	return nil
}

// Args returns construction arguments for the struct v, or the struct v
// points to, keyed by field name. Fields tagged omitempty are left out when
// they hold their zero value; nil trees and empty text slices are always
// left out.
func Args(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("premis: Args(nil %T)", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("premis: Args(non-struct %T)", v)
	}

	args := make(map[string]any)
	for _, f := range imapper.Fields(rv.Type()) {
		fv := rv.FieldByIndex(f.Index)
		if f.OmitEmpty && fv.IsZero() {
			continue
		}
		val, ok, err := argValue(fv)
		if err != nil {
			return nil, fmt.Errorf("premis: field %q: %w", f.Name, err)
		}
		if ok {
			args[f.Name] = val
		}
	}
	return args, nil
}

func argValue(fv reflect.Value) (any, bool, error) {
	switch fv.Type() {
	case nodeType:
		n := fv.Interface().(*tree.Node)
		return n, n != nil, nil
	case nodesType:
		return fv.Interface().([]*tree.Node), true, nil
	}
	if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String {
		switch fv.Len() {
		case 0:
			return nil, false, nil
		case 1:
			return fv.Index(0).String(), true, nil
		}
		return nil, false, fmt.Errorf("cannot use %d texts as one argument", fv.Len())
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(fv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(fv.Uint(), 10), true, nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(fv.Float(), 'g', -1, fv.Type().Bits()), true, nil
	case reflect.Bool:
		return strconv.FormatBool(fv.Bool()), true, nil
	}
	return nil, false, fmt.Errorf("cannot use %s as an argument", fv.Type())
}
