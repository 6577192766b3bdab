package tree

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-premis/internal/xmlname"
)

// Name is a qualified name in the canonical naming convention. Local is a
// snake_case identifier; Space is empty or a registered namespace prefix
// other than the element namespace, which unprefixed names belong to.
type Name struct {
	Space string
	Local string
}

// N returns the unprefixed name local.
func N(local string) Name { return Name{Local: local} }

// ParseName splits "prefix:local" into a Name. A name without a colon is
// unprefixed.
func ParseName(s string) Name {
	if space, local, ok := strings.Cut(s, ":"); ok {
		return Name{Space: space, Local: local}
	}
	return Name{Local: s}
}

// String returns the namespaced form, e.g. "xsi:type".
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Flat returns the prefix-joined form used for field paths, e.g. "xsi_type".
func (n Name) Flat() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + "_" + n.Local
}

// Less orders names by prefix, then local name.
func (n Name) Less(o Name) bool {
	if n.Space != o.Space {
		return n.Space < o.Space
	}
	return n.Local < o.Local
}

// Validate reports whether n can be carried through the transcoder.
func (n Name) Validate() error {
	if !xmlname.ValidLocal(n.Local) {
		return fmt.Errorf("premis: invalid local name %q", n.Local)
	}
	if n.Space == "" {
		return nil
	}
	if n.Space == xmlname.PREMIS {
		return fmt.Errorf("premis: name %q must not carry the implied %q prefix", n, xmlname.PREMIS)
	}
	if _, ok := xmlname.LookupPrefix(n.Space); !ok {
		return fmt.Errorf("premis: unregistered namespace prefix %q", n.Space)
	}
	return nil
}
