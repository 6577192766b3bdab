package pathtable

import (
	"testing"

	perrors "github.com/KimNorgaard/go-premis/errors"
	"github.com/KimNorgaard/go-premis/internal/schema"
	"github.com/KimNorgaard/go-premis/tree"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		schema   *schema.Schema
		name     string
		expected string
	}{
		{schema.Object, "object_identifier.object_identifier_value", "object_identifier.object_identifier_value"},
		{schema.Object, "object_identifier__object_identifier_value", "object_identifier.object_identifier_value"},
		{schema.Object, "object_identifier/object_identifier_value", "object_identifier.object_identifier_value"},
		{schema.Object, "object_identifier_value", "object_identifier.object_identifier_value"},
		{schema.Object, "identifier_value", "object_identifier.object_identifier_value"},
		{schema.Object, "message_digest", "object_characteristics.fixity.message_digest"},
		{schema.Object, "fixity.message_digest", "object_characteristics.fixity.message_digest"},
		{schema.Object, "object_characteristics__fixity__message_digest", "object_characteristics.fixity.message_digest"},
		{schema.Object, "xsi:type", "xsi:type"},
		{schema.Object, "xsi_type", "xsi:type"},
		{schema.Object, "xsi__type", "xsi:type"},
		{schema.Object, "type", "xsi:type"},
		{schema.Object, "xsi_schema_location", "xsi:schema_location"},
		{schema.Object, "relationship", "relationship"},
		{schema.Object, "inhibitors", "object_characteristics.inhibitors"},
		{schema.Event, "type", "event_type"},
		{schema.Event, "detail", "event_detail"},
		{schema.Event, "date_time", "event_date_time"},
		{schema.Event, "outcome_detail_note", "event_outcome_information.event_outcome_detail.event_outcome_detail_note"},
		{schema.Event, "schema_location", "xsi:schema_location"},
		{schema.Agent, "name", "agent_name"},
		{schema.Agent, "identifier_type", "agent_identifier.agent_identifier_type"},
		{schema.Agent, "agent_identifier__agent_identifier_type", "agent_identifier.agent_identifier_type"},
		{schema.Agent, "version", "version"},
		{schema.Agent, "agent_version", "agent_version"},
		{schema.RightsStatement, "identifier_value", "rights_statement_identifier.rights_statement_identifier_value"},
		{schema.RightsStatement, "term_of_grant.start_date", "rights_granted.term_of_grant.start_date"},
		{schema.RightsStatement, "act", "rights_granted.act"},
	}

	for _, tc := range testCases {
		t.Run(tc.schema.Name+"/"+tc.name, func(t *testing.T) {
			e, err := For(tc.schema).Resolve(tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.expected, e.Path)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	testCases := []struct {
		schema *schema.Schema
		name   string
	}{
		{schema.Object, "digest"},
		{schema.Object, ""},
		{schema.Agent, "agent_identifier.agent_name"},
		{schema.Event, "identifier.event_type"},
		{schema.RightsStatement, "type"},
	}

	for _, tc := range testCases {
		t.Run(tc.schema.Name+"/"+tc.name, func(t *testing.T) {
			_, err := For(tc.schema).Resolve(tc.name)
			var nf *perrors.NotFoundError
			require.ErrorAs(t, err, &nf)
			require.Equal(t, tc.schema.Name, nf.Kind)
			require.Equal(t, tc.name, nf.Name)
		})
	}
}

func TestResolve_Ambiguous(t *testing.T) {
	_, err := For(schema.RightsStatement).Resolve("start_date")
	var amb *perrors.AmbiguousPathError
	require.ErrorAs(t, err, &amb)
	require.Equal(t, []string{
		"copyright_information.copyright_applicable_dates.start_date",
		"license_information.license_applicable_dates.start_date",
		"rights_granted.term_of_grant.start_date",
		"rights_granted.term_of_restriction.start_date",
	}, amb.Candidates)

	_, err = For(schema.RightsStatement).Resolve("linking_object_identifier_value")
	require.NoError(t, err)
}

func TestBareAttributeCollision(t *testing.T) {
	s := &schema.Schema{
		Name: "thing",
		Root: &schema.Field{Name: tree.N("thing"), Required: true, Children: []*schema.Field{
			{Name: tree.ParseName("xsi:type"), Attr: true},
			{Name: tree.ParseName("xlink:type"), Attr: true},
			{Name: tree.ParseName("xlink:href"), Attr: true},
			{Name: tree.N("role"), Attr: true},
			{Name: tree.ParseName("xlink:role"), Attr: true},
			{Name: tree.N("part"), Children: []*schema.Field{
				{Name: tree.ParseName("xlink:title"), Attr: true},
			}},
		}},
	}
	table := Build(s)

	_, err := table.Resolve("type")
	require.ErrorIs(t, err, perrors.ErrNotFound)

	for name, expected := range map[string]string{
		"xsi_type":    "xsi:type",
		"xlink_type":  "xlink:type",
		"xlink.type":  "xlink:type",
		"href":        "xlink:href",
		"role":        "role",
		"xlink_role":  "xlink:role",
		"title":       "part.xlink:title",
		"part.title":  "part.xlink:title",
		"xlink_title": "part.xlink:title",
	} {
		e, err := table.Resolve(name)
		require.NoError(t, err, name)
		require.Equal(t, expected, e.Path, name)
	}
}

func TestEntry(t *testing.T) {
	table := For(schema.Object)

	e, err := table.Resolve("type")
	require.NoError(t, err)
	require.NotNil(t, e.Attr)
	require.Equal(t, tree.ParseName("xsi:type"), *e.Attr)
	require.Empty(t, e.Elems)

	e, err = table.Resolve("message_digest")
	require.NoError(t, err)
	require.Nil(t, e.Attr)
	require.Equal(t, []tree.Name{tree.N("object_characteristics"), tree.N("fixity"), tree.N("message_digest")}, e.Elems)
	require.True(t, e.Field.Leaf())
}

func TestTableIsCachedAndStable(t *testing.T) {
	require.Same(t, For(schema.Event), For(schema.Event))

	paths := For(schema.Agent).Paths()
	require.Equal(t, paths, Build(schema.Agent).Paths())
	require.Contains(t, paths, "agent_identifier.agent_identifier_value")
	require.Contains(t, paths, "xsi:schema_location")

	require.Equal(t, []string{"agent_name", "name"}, For(schema.Agent).Aliases("agent_name"))
}
