// Package xmlname holds the fixed namespace registry and the mapping between
// the snake_case names used in canonical trees and the camelCase names used
// on the wire.
package xmlname

import (
	"strings"
	"unicode"
)

// Namespace prefixes known to the transcoder.
const (
	PREMIS = "premis" // element namespace, implied by unprefixed names
	XSI    = "xsi"    // generic schema-instance namespace
	XLink  = "xlink"
)

// Namespace URIs.
const (
	PREMISURI = "http://www.loc.gov/premis/v3"
	XSIURI    = "http://www.w3.org/2001/XMLSchema-instance"
	XLinkURI  = "http://www.w3.org/1999/xlink"
)

// Prefixes lists every registered prefix in declaration order.
var Prefixes = []string{PREMIS, XSI, XLink}

var uris = map[string]string{
	PREMIS: PREMISURI,
	XSI:    XSIURI,
	XLink:  XLinkURI,
}

// LookupPrefix returns the namespace URI bound to prefix.
func LookupPrefix(prefix string) (string, bool) {
	uri, ok := uris[prefix]
	return uri, ok
}

// ValidLocal reports whether s is a canonical snake_case local name:
// lowercase words of letters and digits joined by single underscores, each
// word starting with a letter.
func ValidLocal(s string) bool {
	if s == "" {
		return false
	}
	for _, word := range strings.Split(s, "_") {
		if word == "" || !isLower(rune(word[0])) {
			return false
		}
		for _, r := range word {
			if !isLower(r) && !isDigit(r) {
				return false
			}
		}
	}
	return true
}

// ValidWire reports whether s is a camelCase name that maps back onto a
// canonical local name.
func ValidWire(s string) bool {
	if s == "" || !isLower(rune(s[0])) {
		return false
	}
	for _, r := range s {
		if !isLower(r) && !isDigit(r) && !(r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// Camel converts a canonical local name to its wire form:
// "object_identifier_type" becomes "objectIdentifierType".
func Camel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Snake converts a wire name to its canonical local form:
// "eventDateTime" becomes "event_date_time".
func Snake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
