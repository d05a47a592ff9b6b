package ontology

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

func TestParseEdamUri(t *testing.T) {
	tests := []struct {
		in   string
		want EdamUri
	}{
		{"http://edamontology.org/topic_0091", EdamUri{Branch: Topic, ID: 91}},
		{"operation_0292", EdamUri{Branch: Operation, ID: 292}},
		{"data_1234_beta", EdamUri{Branch: Data, ID: 1234, Qualifier: "beta"}},
		{" format_1915 ", EdamUri{Branch: Format, ID: 1915}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEdamUri(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEdamUriRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "topic", "process_0001", "topic_abc", "topic_-1"} {
		_, err := ParseEdamUri(in)
		assert.Error(t, err, in)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), in)
	}
}

func TestEdamUriIsStructuralMapKey(t *testing.T) {
	a := MustParseEdamUri("http://edamontology.org/topic_0091")
	b := MustParseEdamUri("topic_0091")
	m := map[EdamUri]int{a: 1}
	m[b]++
	assert.Len(t, m, 1)
	assert.Equal(t, 2, m[a])
	assert.Equal(t, "http://edamontology.org/topic_0091", a.String())
}

func TestEdamUriJSONMapKey(t *testing.T) {
	in := map[EdamUri]string{MustParseEdamUri("data_0006"): "Data"}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"http://edamontology.org/data_0006":"Data"}`, string(data))

	var out map[EdamUri]string
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestBranchMetadata(t *testing.T) {
	assert.Equal(t, "topic_0003", Topic.Root().Short())
	assert.Equal(t, "format_1915", Format.Root().Short())
	assert.Equal(t, "Operation", Operation.Label())

	b, err := ParseBranch("DATA")
	require.NoError(t, err)
	assert.Equal(t, Data, b)
}

func diamond() Concepts {
	// root -> a, b ; a, b -> c ; c -> d
	root := MustParseEdamUri("topic_0003")
	a := MustParseEdamUri("topic_0001")
	b := MustParseEdamUri("topic_0002")
	c := MustParseEdamUri("topic_0010")
	d := MustParseEdamUri("topic_0011")
	return Concepts{
		root: {Label: "Topic", DirectChildren: []EdamUri{a, b}},
		a:    {Label: "A", DirectParents: []EdamUri{root}, DirectChildren: []EdamUri{c}},
		b:    {Label: "B", DirectParents: []EdamUri{root}, DirectChildren: []EdamUri{c}},
		c:    {Label: "C", DirectParents: []EdamUri{a, b}, DirectChildren: []EdamUri{d}},
		d:    {Label: "D", DirectParents: []EdamUri{c}},
	}
}

func TestAncestorsAndDescendants(t *testing.T) {
	g := diamond()
	d := MustParseEdamUri("topic_0011")
	root := MustParseEdamUri("topic_0003")

	anc := Ancestors(g, d)
	assert.ElementsMatch(t, []EdamUri{
		MustParseEdamUri("topic_0010"),
		MustParseEdamUri("topic_0001"),
		MustParseEdamUri("topic_0002"),
		root,
	}, anc)

	desc := Descendants(g, root)
	assert.Len(t, desc, 4)

	assert.True(t, IsAncestor(g, root, d))
	assert.False(t, IsAncestor(g, d, root))
	assert.False(t, IsAncestor(g, d, d))
	assert.True(t, IsTopLevel(g, root))
	assert.False(t, IsTopLevel(g, d))
}

func TestWalksTerminateOnCycles(t *testing.T) {
	a := MustParseEdamUri("operation_0001")
	b := MustParseEdamUri("operation_0002")
	g := Concepts{
		a: {DirectParents: []EdamUri{b}, DirectChildren: []EdamUri{b}},
		b: {DirectParents: []EdamUri{a}, DirectChildren: []EdamUri{a}},
	}
	assert.Equal(t, []EdamUri{b}, Ancestors(g, a))
	assert.Equal(t, []EdamUri{b}, Descendants(g, a))
	assert.True(t, IsAncestor(g, b, a))
	assert.False(t, IsAncestor(g, MustParseEdamUri("operation_0003"), a))
}
