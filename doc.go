/*
Package premis reads and writes PREMIS preservation metadata: the objects,
events, agents and rights statements an archival package records about its
content. Each entity is held as an immutable canonical tree (see package tree)
and is transcoded to and from the XML element that a METS document embeds.

The package offers two primary workflows:

1. Element-Level Transcoding

Encode and Decode convert between a canonical tree and a
github.com/beevik/etree element, for callers that assemble or read the
enclosing document themselves. The two are exact inverses: decoding an
encoded tree yields an equal tree, including empty text.

	el := premis.Encode(event.Tree())
	mets.AddChild(el)

	e, err := premis.FromElement(el)
	if err != nil {
		// handle error
	}

Marshal and Unmarshal do the same for whole XML documents. Use the Indent
option for readable output.

2. Entity Construction and Field Access

Entities are built from named arguments. Any name the kind's resolver
accepts may be used: the full dotted path, any unambiguous trailing suffix of
it, the name without the kind's prefix, or, for namespaced attributes, the
bare attribute name. Separators may be written ".", "__" or "/".

	event, err := premis.NewEvent(premis.Args{
		"identifier_value":    "4b3c1a2e-6f2d-4a8e-9a7e-2f0d3c1b5a6e",
		"type":                "compression",
		"date_time":           "2017-08-15T00:30:55",
		"detail":              "program=7z; version=9.20; algorithm=bzip2",
		"outcome_detail_note": "Standard Output=\"\"; Standard Error=\"\"",
	})
	if err != nil {
		// handle error
	}

	typ, _ := event.Text("event_type") // "compression"
	typ, _ = event.Text("type")        // same field

A name that matches several fields, such as "start_date" on a rights
statement, fails with an AmbiguousPathError; a name that matches none fails
with a NotFoundError. Missing optional fields read as empty values.

Entities never change. To derive one entity from another, copy the fields
you need with a Builder and set the rest:

	moved, err := premis.NewBuilder(premis.KindObject).
		From(obj, "object_identifier", "object_characteristics").
		Set("original_name", "objects/renamed.7z").
		Build()

Entities compare structurally with Equal, against other entities and raw
trees alike, and Contains tests membership in mixed sequences.

Events additionally expose derived views: CompressionDetails and
EncryptionDetails decompose the key/value text an event records about the
tool it ran, and DecompressionTransformFiles and DecryptionTransformFile
describe the steps that reverse it.

Struct mapping is available through Entity.Scan and NewFromStruct, using
`premis:"name,omitempty"` field tags (see package mapper).
*/
package premis
