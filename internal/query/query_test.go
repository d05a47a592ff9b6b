package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/tokens"
)

func field(ts ...string) tokens.Field {
	return tokens.Field{Tokens: ts}
}

func TestInstances(t *testing.T) {
	q := &QueryProcessed{
		ID:          "tool",
		Name:        field("blast"),
		Keywords:    []tokens.Field{field("sequence"), {}, field("alignment")},
		Description: []tokens.Field{field("fast", "search")},
		Webpages:    [][]tokens.Field{{field("home")}, {field("a"), field("b")}},
		Publications: []PublicationProcessed{
			{Title: field("basic", "local"), Efo: []MinedField{{Field: field("gene"), Frequency: 0.5}}},
			{Abstract: []tokens.Field{field("x"), field("y")}},
		},
	}

	name := q.Instances(Name)
	require.Len(t, name, 1)
	assert.Equal(t, -1, name[0].SubIndex)

	keywords := q.Instances(Keyword)
	require.Len(t, keywords, 2, "empty keyword skipped")
	assert.Equal(t, 2, keywords[1].Index)

	pages := q.Instances(Webpage)
	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[2].Index)
	assert.Equal(t, 1, pages[2].SubIndex)

	efo := q.Instances(PublicationEfo)
	require.Len(t, efo, 1)
	assert.True(t, efo[0].Mined)
	assert.Equal(t, 0.5, efo[0].Frequency)

	abstract := q.Instances(PublicationAbstract)
	require.Len(t, abstract, 2)
	assert.Equal(t, 1, abstract[0].Index)

	assert.Empty(t, q.Instances(Doc))
	assert.Empty(t, q.Instances(None))

	var nilQuery *QueryProcessed
	assert.Empty(t, nilQuery.Instances(Name))
}

func TestMatchTypeMetadata(t *testing.T) {
	assert.Len(t, MatchTypes(), 12)
	assert.True(t, PublicationGo.IsPublication())
	assert.False(t, Keyword.IsPublication())

	parsed, err := ParseMatchType("publication_abstract")
	require.NoError(t, err)
	assert.Equal(t, PublicationAbstract, parsed)

	_, err = ParseMatchType("title")
	assert.Error(t, err)
}
