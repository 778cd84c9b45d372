package repositories_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/vastra/app/repositories"
)

func TestParseListQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "10")
	values.Set("search", "saree")

	q := repositories.ParseListQuery(values)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "saree", q.Search)
}

func TestParseListQuery_NonNumericPassesThrough(t *testing.T) {
	values := url.Values{}
	values.Set("page", "abc")
	values.Set("limit", "xyz")

	q := repositories.ParseListQuery(values)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 0, q.Limit)
	// Bad input produces a negative skip; the driver rejects it downstream.
	assert.Equal(t, int64(0), q.Skip())
}

func TestListQuery_Skip(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 3, 12},
		{0, 10, -10},
	}
	for _, tc := range cases {
		q := repositories.ListQuery{Page: tc.page, Limit: tc.limit}
		assert.Equal(t, tc.want, q.Skip(), "page=%d limit=%d", tc.page, tc.limit)
	}
}

func TestListQuery_Filter_EmptySearch(t *testing.T) {
	q := repositories.ListQuery{}
	assert.Equal(t, bson.M{}, q.Filter())
}

func TestListQuery_Filter_SearchBuildsOrOverThreeFields(t *testing.T) {
	q := repositories.ListQuery{Search: "blue"}
	filter := q.Filter()

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok, "filter must carry an $or branch")
	require.Len(t, or, 3)

	fields := map[string]bool{}
	for _, clause := range or {
		m := clause.(bson.M)
		require.Len(t, m, 1)
		for field, cond := range m {
			fields[field] = true
			c := cond.(bson.M)
			assert.Equal(t, ".*blue.*", c["$regex"])
			assert.Equal(t, "i", c["$options"])
		}
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["short_description"])
	assert.True(t, fields["description"])
}

// Metacharacters in search input must match literally, never as a pattern.
func TestListQuery_Filter_EscapesRegexMetacharacters(t *testing.T) {
	q := repositories.ListQuery{Search: "a.b*(c)"}
	filter := q.Filter()

	or := filter["$or"].(bson.A)
	cond := or[0].(bson.M)["title"].(bson.M)
	assert.Equal(t, `.*a\.b\*\(c\).*`, cond["$regex"])
}
