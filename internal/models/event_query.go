package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxIDFilter is the cap on "in"-style predicates (explicit IDs, search
// terms, tags). Larger sets are silently truncated here; callers that need
// more must batch the query themselves.
const MaxIDFilter = 30

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// EventQueryOptions is the filter bundle for listing events. Every field is
// optional. Equality filters are ANDed together; SearchTerms and Tags each
// match when the event contains ANY of the supplied values, and that
// any-match is ANDed with the other filters.
type EventQueryOptions struct {
	Category       string
	CreatorID      string
	EventIDs       []primitive.ObjectID
	SearchTerms    []string
	Tags           []string
	OrderBy        string
	OrderDirection string
	Limit          int64
}

// Filter composes the bson filter document. Read-only; any query error from
// the store (missing index and the like) surfaces to the caller verbatim.
func (o EventQueryOptions) Filter() bson.M {
	filter := bson.M{}

	if o.Category != "" && o.Category != "All" {
		filter["category"] = o.Category
	}
	if o.CreatorID != "" {
		filter["creator_id"] = o.CreatorID
	}
	if len(o.SearchTerms) > 0 {
		filter["keywords"] = bson.M{"$in": capSlice(o.SearchTerms)}
	}
	if len(o.Tags) > 0 {
		filter["tags"] = bson.M{"$in": capSlice(o.Tags)}
	}
	if len(o.EventIDs) > 0 {
		ids := o.EventIDs
		if len(ids) > MaxIDFilter {
			ids = ids[:MaxIDFilter]
		}
		filter["_id"] = bson.M{"$in": ids}
	}

	return filter
}

// FindOptions applies ordering and the optional result cap. Exactly one
// order field is used, ascending by date unless told otherwise.
func (o EventQueryOptions) FindOptions() *options.FindOptions {
	field := o.OrderBy
	if field == "" {
		field = "date"
	}
	direction := 1
	if o.OrderDirection == OrderDesc {
		direction = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: direction}})
	if o.Limit > 0 {
		opts = opts.SetLimit(o.Limit)
	}
	return opts
}

func capSlice(values []string) []string {
	if len(values) > MaxIDFilter {
		return values[:MaxIDFilter]
	}
	return values
}
