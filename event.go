package premis

import (
	"strconv"
	"strings"
)

// Event types with derived views.
const (
	EventCompression = "compression"
	EventEncryption  = "encryption"
)

// Details describes the tool an event applied, as recorded in its detail
// text.
type Details struct {
	Algorithm string
	Version   string
	Tool      string
	Key       string // key fingerprint, for encryption
}

// TransformFile describes one step needed to reverse a compression or
// encryption event.
type TransformFile struct {
	Algorithm string
	Order     string
	Type      string // "decompression" or "decryption"
}

// Attrs returns the descriptor as the attribute map a METS transformFile
// element carries.
func (t TransformFile) Attrs() map[string]string {
	return map[string]string{"algorithm": t.Algorithm, "order": t.Order, "type": t.Type}
}

// CompressionDetails returns the algorithm, program version and tool of a
// compression event.
func (e *Entity) CompressionDetails() (Details, error) {
	d, err := e.details(EventCompression)
	if err != nil {
		return Details{}, err
	}
	if d.Algorithm == "" {
		return Details{}, e.viewNotFound("algorithm", "compression event records no algorithm")
	}
	return d, nil
}

// EncryptionDetails returns the algorithm, program version, tool and key
// fingerprint of an encryption event. Without an explicit algorithm, the
// parenthesised name in the program, or else the program itself, is used.
func (e *Entity) EncryptionDetails() (Details, error) {
	d, err := e.details(EventEncryption)
	if err != nil {
		return Details{}, err
	}
	if d.Algorithm == "" {
		return Details{}, e.viewNotFound("algorithm", "encryption event records no algorithm or program")
	}
	return d, nil
}

// DecompressionTransformFiles returns one decompression step per algorithm
// of a compression event, in the order given. Orders start at offset+1.
func (e *Entity) DecompressionTransformFiles(offset int) ([]TransformFile, error) {
	d, err := e.CompressionDetails()
	if err != nil {
		return nil, err
	}
	var out []TransformFile
	for i, alg := range strings.Split(d.Algorithm, ",") {
		out = append(out, TransformFile{
			Algorithm: strings.TrimSpace(alg),
			Order:     strconv.Itoa(i + offset + 1),
			Type:      "decompression",
		})
	}
	return out, nil
}

// DecryptionTransformFile returns the decryption step of an encryption
// event.
func (e *Entity) DecryptionTransformFile() (TransformFile, error) {
	d, err := e.EncryptionDetails()
	if err != nil {
		return TransformFile{}, err
	}
	return TransformFile{Algorithm: d.Algorithm, Order: "1", Type: "decryption"}, nil
}

func (e *Entity) viewNotFound(name, msg string) error {
	return &NotFoundError{Kind: e.kind.Tag(), Name: name, Message: msg}
}

// details reads the key/value pairs of an event of the given type. Pairs in
// the outcome-detail note take precedence over those in event_detail.
func (e *Entity) details(eventType string) (Details, error) {
	if e.kind != KindEvent {
		return Details{}, e.viewNotFound("event_type", "not an event")
	}
	if t := e.FindText("event_type"); t != eventType {
		return Details{}, e.viewNotFound("event_type", "expected a "+eventType+" event, got "+strconv.Quote(t))
	}
	kv := parseDetail(e.FindText("event_detail"))
	for k, v := range parseDetail(e.FindText("event_outcome_information/event_outcome_detail/event_outcome_detail_note")) {
		kv[k] = v
	}

	program := kv["program"]
	tool, paren := splitParen(program)
	d := Details{
		Algorithm: kv["algorithm"],
		Version:   kv["version"],
		Tool:      toolName(tool),
		Key:       kv["key"],
	}
	if d.Algorithm == "" && eventType == EventEncryption {
		d.Algorithm = paren
		if d.Algorithm == "" {
			d.Algorithm = tool
		}
	}
	return d, nil
}

// parseDetail splits "k1=v1; k2: v2" into lowercased keys and unquoted
// values. The first occurrence of a key wins.
func parseDetail(s string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		i := strings.IndexAny(part, "=:")
		if i < 0 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(part[:i]))
		if k == "" {
			continue
		}
		if _, seen := out[k]; seen {
			continue
		}
		out[k] = strings.Trim(strings.TrimSpace(part[i+1:]), `"'`)
	}
	return out
}

// splitParen splits "gpg (GPG)" into "gpg" and "GPG".
func splitParen(s string) (string, string) {
	open := strings.Index(s, "(")
	if open < 0 {
		return s, ""
	}
	inner := s[open+1:]
	if end := strings.Index(inner, ")"); end >= 0 {
		inner = inner[:end]
	}
	return strings.TrimSpace(s[:open]), strings.TrimSpace(inner)
}

func toolName(program string) string {
	switch program {
	case "7z", "7za":
		return "7-Zip"
	}
	return program
}
