package schema

import "github.com/KimNorgaard/go-premis/tree"

func elem(local string, children ...*Field) *Field {
	return &Field{Name: tree.N(local), Children: children}
}

func leaf(local string) *Field { return &Field{Name: tree.N(local)} }

func attr(name string) *Field { return &Field{Name: tree.ParseName(name), Attr: true} }

func (f *Field) required() *Field { f.Required = true; return f }

func (f *Field) repeat() *Field { f.Repeat = true; return f }

func (f *Field) def(v string) *Field { f.Default = v; return f }

func root(local string, attrs []*Field, children ...*Field) *Field {
	return elem(local, append(attrs, children...)...).required()
}

func rootAttrs(extra ...*Field) []*Field {
	return append(extra,
		attr("xsi:schema_location").def(SchemaLocation),
		attr("version").def(Version),
	)
}

// identifier declares the usual type/value identifier pair. The value is
// always required; typeDefault may be empty to require the type as well.
func identifier(local, typeDefault string) *Field {
	typ := leaf(local + "_type")
	if typeDefault == "" {
		typ.required()
	} else {
		typ.def(typeDefault)
	}
	return elem(local, typ, leaf(local+"_value").required())
}

func dates(local string) *Field {
	return elem(local, leaf("start_date"), leaf("end_date"))
}

// Object describes a PREMIS file object.
var Object = &Schema{
	Name:       "object",
	Identifier: "object_identifier.object_identifier_value",
	Root: root("object", rootAttrs(attr("xsi:type").def("premis:file")),
		identifier("object_identifier", "UUID").required(),
		elem("object_characteristics",
			leaf("composition_level").def("1"),
			elem("fixity",
				leaf("message_digest_algorithm"),
				leaf("message_digest"),
				leaf("message_digest_originator"),
			),
			leaf("size"),
			elem("format",
				elem("format_designation",
					leaf("format_name"),
					leaf("format_version"),
				),
				elem("format_registry",
					leaf("format_registry_name").def("PRONOM"),
					leaf("format_registry_key"),
					leaf("format_registry_role"),
				),
			),
			elem("creating_application",
				leaf("creating_application_name"),
				leaf("creating_application_version"),
				leaf("date_created_by_application"),
			),
			elem("inhibitors",
				leaf("inhibitor_type"),
				leaf("inhibitor_target"),
				leaf("inhibitor_key"),
			).repeat(),
		).required(),
		leaf("original_name"),
		elem("storage",
			elem("content_location",
				leaf("content_location_type"),
				leaf("content_location_value"),
			),
			leaf("storage_medium"),
		),
		elem("relationship",
			leaf("relationship_type"),
			leaf("relationship_sub_type"),
			elem("related_object_identifier",
				leaf("related_object_identifier_type"),
				leaf("related_object_identifier_value"),
			),
			elem("related_event_identifier",
				leaf("related_event_identifier_type"),
				leaf("related_event_identifier_value"),
			),
		).repeat(),
		elem("linking_event_identifier",
			leaf("linking_event_identifier_type"),
			leaf("linking_event_identifier_value"),
		).repeat(),
	),
}

// Event describes a PREMIS event.
var Event = &Schema{
	Name:       "event",
	Identifier: "event_identifier.event_identifier_value",
	Root: root("event", rootAttrs(),
		identifier("event_identifier", "UUID").required(),
		leaf("event_type").required(),
		leaf("event_date_time").required(),
		leaf("event_detail"),
		elem("event_outcome_information",
			leaf("event_outcome"),
			elem("event_outcome_detail",
				leaf("event_outcome_detail_note"),
			),
		),
		elem("linking_agent_identifier",
			leaf("linking_agent_identifier_type"),
			leaf("linking_agent_identifier_value"),
			leaf("linking_agent_role"),
		).repeat(),
		elem("linking_object_identifier",
			leaf("linking_object_identifier_type"),
			leaf("linking_object_identifier_value"),
		).repeat(),
	),
}

// Agent describes a PREMIS agent.
var Agent = &Schema{
	Name:       "agent",
	Identifier: "agent_identifier.agent_identifier_value",
	Root: root("agent", rootAttrs(),
		identifier("agent_identifier", "").required(),
		leaf("agent_name").required(),
		leaf("agent_type").required(),
		leaf("agent_version"),
		leaf("agent_note"),
	),
}

// RightsStatement describes a PREMIS rights statement.
var RightsStatement = &Schema{
	Name:       "rights_statement",
	Identifier: "rights_statement_identifier.rights_statement_identifier_value",
	Root: root("rights_statement", nil,
		identifier("rights_statement_identifier", "UUID").required(),
		leaf("rights_basis").required(),
		elem("copyright_information",
			leaf("copyright_status"),
			leaf("copyright_jurisdiction"),
			leaf("copyright_status_determination_date"),
			leaf("copyright_note"),
			dates("copyright_applicable_dates"),
		),
		elem("license_information",
			leaf("license_terms"),
			leaf("license_note"),
			dates("license_applicable_dates"),
		),
		elem("statute_information",
			leaf("statute_jurisdiction"),
			leaf("statute_citation"),
			leaf("statute_note"),
		),
		elem("rights_granted",
			leaf("act"),
			leaf("restriction"),
			dates("term_of_grant"),
			dates("term_of_restriction"),
			leaf("rights_granted_note"),
		).repeat(),
		elem("linking_object_identifier",
			leaf("linking_object_identifier_type"),
			leaf("linking_object_identifier_value"),
		).repeat(),
	),
}

// All lists every schema in kind order.
var All = []*Schema{Object, Event, Agent, RightsStatement}
