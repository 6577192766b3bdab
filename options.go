package premis

import "fmt"

// Option configures Marshal, Unmarshal, Decode and FromElement.
type Option func(*options) error

type options struct {
	indent   int
	maxDepth int
}

const defaultMaxDepth = 1000

func newOptions(opts []Option) (*options, error) {
	o := &options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Indent sets the number of spaces Marshal indents nested elements by. The
// default, 0, writes compact XML. Text held by an element without child
// elements is untouched. Elements that mix text with child elements gain
// whitespace next to their text, so only compact output preserves them.
func Indent(spaces int) Option {
	return func(o *options) error {
		if spaces < 0 {
			return fmt.Errorf("premis: indent spaces cannot be negative")
		}
		o.indent = spaces
		return nil
	}
}

// MaxDepth sets the maximum element nesting the decoder accepts. This guards
// against stack exhaustion on hostile input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("premis: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
