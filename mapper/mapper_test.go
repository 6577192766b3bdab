package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	perrors "github.com/KimNorgaard/go-premis/errors"
	"github.com/KimNorgaard/go-premis/mapper"
	"github.com/KimNorgaard/go-premis/tree"
)

// source serves fixed values by name. Names it does not hold are not found.
type source map[string]any

func (s source) Get(name string) (any, error) {
	v, ok := s[name]
	if !ok {
		return nil, &perrors.NotFoundError{Kind: "test", Name: name}
	}
	return v, nil
}

func TestMap(t *testing.T) {
	t.Run("Scalar Types", func(t *testing.T) {
		var v struct {
			S string  `premis:"s"`
			I int     `premis:"i"`
			U uint16  `premis:"u"`
			F float64 `premis:"f"`
			B bool    `premis:"b"`
		}
		err := mapper.Map(source{"s": "hello world", "i": "-123", "u": "7", "f": "3.14", "b": "true"}, &v)
		require.NoError(t, err)
		require.Equal(t, "hello world", v.S)
		require.Equal(t, -123, v.I)
		require.Equal(t, uint16(7), v.U)
		require.Equal(t, 3.14, v.F)
		require.True(t, v.B)
	})

	t.Run("Empty Text Sets Zero Value", func(t *testing.T) {
		v := struct {
			S string `premis:"s"`
			I int    `premis:"i"`
		}{S: "preset", I: 123}
		err := mapper.Map(source{"s": "", "i": ""}, &v)
		require.NoError(t, err)
		require.Empty(t, v.S)
		require.Zero(t, v.I)
	})

	t.Run("Tree Values", func(t *testing.T) {
		fixity := tree.E("fixity", tree.E("message_digest", "abc"))
		inhibitors := []*tree.Node{
			tree.E("inhibitors", tree.E("inhibitor_type", "GPG")),
			tree.E("inhibitors", tree.E("inhibitor_type", "PGP")),
		}
		var v struct {
			Fixity     *tree.Node   `premis:"fixity"`
			First      *tree.Node   `premis:"inhibitors"`
			All        []*tree.Node `premis:"all"`
			Single     []*tree.Node `premis:"single"`
			Storage    *tree.Node   `premis:"storage"`
			Digest     string       `premis:"digest"`
			Types      []string     `premis:"types"`
			Note       []string     `premis:"note"`
			EmptyNotes []string     `premis:"empty"`
		}
		err := mapper.Map(source{
			"fixity":     fixity,
			"inhibitors": inhibitors,
			"all":        inhibitors,
			"single":     fixity,
			"storage":    (*tree.Node)(nil),
			"digest":     fixity.Find("message_digest"),
			"types":      []*tree.Node{inhibitors[0].Find("inhibitor_type"), inhibitors[1].Find("inhibitor_type")},
			"note":       "one",
			"empty":      "",
		}, &v)
		require.NoError(t, err)
		require.Same(t, fixity, v.Fixity)
		require.Same(t, inhibitors[0], v.First)
		require.Equal(t, inhibitors, v.All)
		require.Equal(t, []*tree.Node{fixity}, v.Single)
		require.Nil(t, v.Storage)
		require.Equal(t, "abc", v.Digest)
		require.Equal(t, []string{"GPG", "PGP"}, v.Types)
		require.Equal(t, []string{"one"}, v.Note)
		require.Empty(t, v.EmptyNotes)
	})

	t.Run("Untagged Fields", func(t *testing.T) {
		var v struct {
			OriginalName string
			Unknown      string
			Skipped      string `premis:"-"`
			unexported   string
		}
		err := mapper.Map(source{"original_name": "a.txt", "skipped": "x", "unexported": "x"}, &v)
		require.NoError(t, err)
		require.Equal(t, "a.txt", v.OriginalName)
		require.Empty(t, v.Unknown)
		require.Empty(t, v.Skipped)
		require.Empty(t, v.unexported)
	})

	t.Run("Tagged Field Must Resolve", func(t *testing.T) {
		var v struct {
			Name string `premis:"missing"`
		}
		err := mapper.Map(source{}, &v)
		require.ErrorIs(t, err, perrors.ErrNotFound)
	})

	t.Run("Errors", func(t *testing.T) {
		var v struct {
			N int `premis:"n"`
		}
		require.ErrorContains(t, mapper.Map(source{"n": "many"}, &v), `field "n"`)
		require.ErrorContains(t, mapper.Map(source{"n": []*tree.Node{}}, &v), "cannot scan")
		require.ErrorContains(t, mapper.Map(source{}, v), "non-pointer")
		require.ErrorContains(t, mapper.Map(source{}, nil), "non-pointer")

		var s string
		require.ErrorContains(t, mapper.Map(source{}, &s), "non-pointer")

		var m struct {
			M map[string]string `premis:"m"`
		}
		require.ErrorContains(t, mapper.Map(source{"m": "x"}, &m), "cannot scan text")
	})
}

func TestArgs(t *testing.T) {
	t.Run("Values", func(t *testing.T) {
		node := tree.E("fixity")
		args, err := mapper.Args(struct {
			Name    string `premis:"agent_name"`
			Size    int64
			Ratio   float32    `premis:"ratio"`
			OK      bool       `premis:"ok"`
			Fixity  *tree.Node `premis:"fixity"`
			Storage *tree.Node `premis:"storage"`
			Rels    []*tree.Node
			Skipped string `premis:"-"`
		}{Name: "n", Size: 1201768, Ratio: 0.5, OK: true, Fixity: node, Skipped: "x"})
		require.NoError(t, err)
		require.Equal(t, map[string]any{
			"agent_name": "n",
			"size":       "1201768",
			"ratio":      "0.5",
			"ok":         "true",
			"fixity":     node,
			"rels":       []*tree.Node(nil),
		}, args)
	})

	t.Run("OmitEmpty", func(t *testing.T) {
		type fields struct {
			Note  string       `premis:"note,omitempty"`
			Count int          `premis:"count,omitempty"`
			Rels  []*tree.Node `premis:"rels,omitempty"`
			Kept  string       `premis:"kept"`
		}
		args, err := mapper.Args(&fields{})
		require.NoError(t, err)
		require.Equal(t, map[string]any{"kept": ""}, args)

		args, err = mapper.Args(fields{Note: "x", Count: 2})
		require.NoError(t, err)
		require.Equal(t, map[string]any{"note": "x", "count": "2", "kept": ""}, args)
	})

	t.Run("Text Slices", func(t *testing.T) {
		type fields struct {
			Targets []string `premis:"inhibitor_target"`
			Keys    []string `premis:"inhibitor_key"`
		}
		args, err := mapper.Args(fields{Targets: []string{"All content"}})
		require.NoError(t, err)
		require.Equal(t, map[string]any{"inhibitor_target": "All content"}, args)

		var back fields
		require.NoError(t, mapper.Map(source{"inhibitor_target": "All content", "inhibitor_key": ""}, &back))
		require.Equal(t, fields{Targets: []string{"All content"}, Keys: []string{}}, back)

		_, err = mapper.Args(fields{Targets: []string{"a", "b"}})
		require.ErrorContains(t, err, "cannot use 2 texts as one argument")
	})

	t.Run("Initialisms", func(t *testing.T) {
		args, err := mapper.Args(struct {
			ObjectID string
			XSIType  string
		}{ObjectID: "x", XSIType: "premis:file"})
		require.NoError(t, err)
		require.Equal(t, map[string]any{"object_id": "x", "xsi_type": "premis:file"}, args)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := mapper.Args((*struct{})(nil))
		require.ErrorContains(t, err, "Args(nil")

		_, err = mapper.Args("text")
		require.ErrorContains(t, err, "non-struct")

		_, err = mapper.Args(struct {
			C chan int `premis:"c"`
		}{})
		require.ErrorContains(t, err, "cannot use chan int as an argument")
	})
}
