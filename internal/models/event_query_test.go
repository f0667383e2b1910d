package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterSkipsEmptyAndAllCategory(t *testing.T) {
	filter := EventQueryOptions{Category: "All"}.Filter()
	if len(filter) != 0 {
		t.Errorf("expected empty filter for category All, got %v", filter)
	}

	filter = EventQueryOptions{Category: "Tech"}.Filter()
	if filter["category"] != "Tech" {
		t.Errorf("expected category filter, got %v", filter)
	}
}

func TestFilterSearchTermsAnyMatch(t *testing.T) {
	filter := EventQueryOptions{SearchTerms: []string{"robotics", "club"}}.Filter()

	clause, ok := filter["keywords"].(bson.M)
	if !ok {
		t.Fatalf("expected keywords clause, got %v", filter)
	}
	terms, ok := clause["$in"].([]string)
	if !ok || len(terms) != 2 {
		t.Errorf("expected $in with 2 terms, got %v", clause)
	}
}

func TestFilterCapsIDList(t *testing.T) {
	ids := make([]primitive.ObjectID, MaxIDFilter+5)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}

	filter := EventQueryOptions{EventIDs: ids}.Filter()
	clause := filter["_id"].(bson.M)
	capped := clause["$in"].([]primitive.ObjectID)
	if len(capped) != MaxIDFilter {
		t.Errorf("expected id list capped at %d, got %d", MaxIDFilter, len(capped))
	}
	// Truncation keeps the leading entries
	if capped[0] != ids[0] {
		t.Error("expected truncation to keep leading ids")
	}
}

func TestFilterCapsSearchTerms(t *testing.T) {
	terms := make([]string, MaxIDFilter+10)
	for i := range terms {
		terms[i] = "term"
	}

	filter := EventQueryOptions{SearchTerms: terms}.Filter()
	clause := filter["keywords"].(bson.M)
	if got := len(clause["$in"].([]string)); got != MaxIDFilter {
		t.Errorf("expected search terms capped at %d, got %d", MaxIDFilter, got)
	}
}

func TestFindOptionsDefaultsToDateAscending(t *testing.T) {
	opts := EventQueryOptions{}.FindOptions()

	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 1 {
		t.Fatalf("expected single sort field, got %v", opts.Sort)
	}
	if sort[0].Key != "date" || sort[0].Value != 1 {
		t.Errorf("expected default sort date asc, got %v", sort)
	}
	if opts.Limit != nil {
		t.Errorf("expected no limit by default, got %v", *opts.Limit)
	}
}

func TestFindOptionsDescendingWithLimit(t *testing.T) {
	opts := EventQueryOptions{OrderBy: "created_at", OrderDirection: OrderDesc, Limit: 10}.FindOptions()

	sort := opts.Sort.(bson.D)
	if sort[0].Key != "created_at" || sort[0].Value != -1 {
		t.Errorf("expected created_at desc, got %v", sort)
	}
	if opts.Limit == nil || *opts.Limit != 10 {
		t.Errorf("expected limit 10, got %v", opts.Limit)
	}
}
