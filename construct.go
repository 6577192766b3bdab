package premis

import (
	"errors"
	"fmt"
	"slices"

	"github.com/KimNorgaard/go-premis/internal/schema"
	"github.com/KimNorgaard/go-premis/mapper"
	"github.com/KimNorgaard/go-premis/tree"
)

// DataArg is the argument name that supplies a whole-entity tree.
const DataArg = "data"

// Args are construction arguments keyed by any field name the resolver
// accepts for the kind. Values are:
//
//   - string or tree.Text for leaves and attributes;
//   - a tree.Treer (a *tree.Node or *Entity) for element fields, inserted
//     verbatim;
//   - []*tree.Node, []tree.Treer or []*Entity for repeatable element
//     fields, kept in order;
//   - nil, or a nil tree, for an absent field.
//
// The key "data" supplies the entire tree and excludes every other key.
type Args map[string]any

// New builds an entity of kind k from args.
func New(k Kind, args Args) (*Entity, error) {
	if !k.Valid() {
		return nil, &ConstructionError{Kind: k.String(), Message: "unknown entity kind"}
	}
	if data, ok := args[DataArg]; ok {
		return fromData(k, args, data)
	}

	s := k.schema()
	resolved := make(map[string]schema.Arg, len(args))
	names := make(map[string]string, len(args))
	for _, name := range sortedKeys(args) {
		entry, err := k.table().Resolve(name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, &ConstructionError{Kind: s.Name, Field: name, Message: "unexpected field"}
			}
			return nil, &ConstructionError{Kind: s.Name, Field: name, Message: "ambiguous field", Err: err}
		}
		if prev, dup := names[entry.Path]; dup {
			return nil, &ConstructionError{Kind: s.Name, Field: name, Message: fmt.Sprintf("conflicts with %s, both name %s", prev, entry.Path)}
		}
		arg, present, err := toArg(name, args[name])
		if err != nil {
			return nil, &ConstructionError{Kind: s.Name, Field: name, Message: err.Error()}
		}
		if !present {
			continue
		}
		names[entry.Path] = name
		resolved[entry.Path] = arg
	}

	root, err := s.Assemble(resolved)
	if err != nil {
		return nil, err
	}
	return &Entity{kind: k, root: root}, nil
}

// NewFromStruct builds an entity of kind k from the fields of the struct v,
// named as Entity.Scan names them. Every field that is not skipped must
// name a field of k.
func NewFromStruct(k Kind, v any) (*Entity, error) {
	args, err := mapper.Args(v)
	if err != nil {
		return nil, err
	}
	return New(k, args)
}

func fromData(k Kind, args Args, data any) (*Entity, error) {
	tag := k.Tag()
	for _, name := range sortedKeys(args) {
		if name != DataArg {
			return nil, &ConstructionError{Kind: tag, Field: name, Message: "conflicts with whole-entity argument data"}
		}
	}
	t, ok := data.(tree.Treer)
	if !ok || t == nil || t.Tree() == nil {
		return nil, &ConstructionError{Kind: tag, Field: DataArg, Message: fmt.Sprintf("expects a tree, got %T", data)}
	}
	root := t.Tree()
	if root.Name() != tree.N(tag) {
		return nil, &ConstructionError{Kind: tag, Field: DataArg, Message: fmt.Sprintf("expects <%s>, got <%s>", tag, root.Name())}
	}
	return &Entity{kind: k, root: root}, nil
}

// toArg converts one argument value. It reports false for an absent value.
func toArg(name string, v any) (schema.Arg, bool, error) {
	arg := schema.Arg{Name: name}
	switch v := v.(type) {
	case nil:
		return arg, false, nil
	case string:
		arg.Text = v
	case tree.Text:
		arg.Text = string(v)
	case []*tree.Node:
		arg.Tree = true
		for _, n := range v {
			if n != nil {
				arg.Nodes = append(arg.Nodes, n)
			}
		}
	case []*Entity:
		arg.Tree = true
		for _, e := range v {
			if n := e.Tree(); n != nil {
				arg.Nodes = append(arg.Nodes, n)
			}
		}
	case []tree.Treer:
		arg.Tree = true
		for _, t := range v {
			if t != nil && t.Tree() != nil {
				arg.Nodes = append(arg.Nodes, t.Tree())
			}
		}
	case tree.Treer:
		n := v.Tree()
		if n == nil {
			return arg, false, nil
		}
		arg.Tree = true
		arg.Nodes = []*tree.Node{n}
	default:
		return arg, false, fmt.Errorf("unsupported value of type %T", v)
	}
	return arg, true, nil
}

func sortedKeys(args Args) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NewObject builds an Object entity.
func NewObject(args Args) (*Entity, error) { return New(KindObject, args) }

// NewEvent builds an Event entity.
func NewEvent(args Args) (*Entity, error) { return New(KindEvent, args) }

// NewAgent builds an Agent entity.
func NewAgent(args Args) (*Entity, error) { return New(KindAgent, args) }

// NewRightsStatement builds a RightsStatement entity.
func NewRightsStatement(args Args) (*Entity, error) { return New(KindRightsStatement, args) }
