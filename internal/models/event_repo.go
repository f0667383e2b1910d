package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	QueryEvents(ctx context.Context, opts EventQueryOptions) ([]*Event, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, update bson.M) (*Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	CountEvents(ctx context.Context) (int64, error)
	CountUpcomingEvents(ctx context.Context, fromDate string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the query and uniqueness indexes the hub relies on.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	events, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	eventIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("category_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("creator_created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "keywords", Value: 1}},
			Options: options.Index().SetName("keywords_idx"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("tags_idx"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
	}
	if _, err := events.Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return fmt.Errorf("error creating event indexes: %v", err)
	}

	rsvps, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	rsvpIndexes := []mongo.IndexModel{
		// One record per (event, user). Backs the idempotent add.
		{
			Keys: bson.D{
				{Key: "event_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("event_user_unique"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "token", Value: 1}},
			Options: options.Index().SetName("event_token_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_at_idx"),
		},
	}
	if _, err := rsvps.Indexes().CreateMany(ctx, rsvpIndexes); err != nil {
		return fmt.Errorf("error creating rsvp indexes: %v", err)
	}

	feedback, err := mdb.GetCollection(ctx, DBName, FeedbackColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	feedbackIndexes := []mongo.IndexModel{
		// One feedback per (event, user). Backstop for the advisory
		// duplicate check done outside the insert transaction.
		{
			Keys: bson.D{
				{Key: "event_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("event_user_unique"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("event_created_at_idx"),
		},
	}
	if _, err := feedback.Indexes().CreateMany(ctx, feedbackIndexes); err != nil {
		return fmt.Errorf("error creating feedback indexes: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("error inserting event: %v", err)
	}
	return event, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: event %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("error finding event: %v", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) QueryEvents(ctx context.Context, opts EventQueryOptions) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, opts.Filter(), opts.FindOptions())
	if err != nil {
		// Query errors (composite-index requirements and the like)
		// propagate to the caller unchanged.
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %v", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, update bson.M) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Event
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: event %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("error updating event: %v", err)
	}
	return &updated, nil
}

// DeleteEvent removes the event document together with its entire RSVP
// ledger and feedback collection in one transaction.
func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	events, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	rsvps, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	feedback, err := mdb.GetCollection(ctx, DBName, FeedbackColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := events.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, fmt.Errorf("%w: event %s", ErrNotFound, id.Hex())
		}
		if _, err := rsvps.DeleteMany(sc, bson.M{"event_id": id}); err != nil {
			return nil, err
		}
		if _, err := feedback.DeleteMany(sc, bson.M{"event_id": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (mdb *MongodbRepo) CountEvents(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{})
}

func (mdb *MongodbRepo) CountUpcomingEvents(ctx context.Context, fromDate string) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": fromDate}})
}

var _ EventsRepo = (*MongodbRepo)(nil)
