package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FeedbackRepo interface {
	AddFeedback(ctx context.Context, feedback *Feedback) (*Feedback, error)
	GetFeedbackForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Feedback, error)
	GetUserFeedbackForEvent(ctx context.Context, eventID primitive.ObjectID, userID string) (*Feedback, error)
}

// AddFeedback writes the feedback record and folds its rating into the
// event's feedback_count/average_rating inside one transaction. The
// duplicate check up front is advisory only; the unique (event_id, user_id)
// index makes the insert itself reject a second submission that slips past
// it, so the race window the check leaves open cannot corrupt the counters.
func (mdb *MongodbRepo) AddFeedback(ctx context.Context, feedback *Feedback) (*Feedback, error) {
	events, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	col, err := mdb.GetCollection(ctx, DBName, FeedbackColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	existing, err := mdb.GetUserFeedbackForEvent(ctx, feedback.EventID, feedback.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: already submitted feedback for this event", ErrAlreadyExists)
	}

	if feedback.ID.IsZero() {
		feedback.ID = primitive.NewObjectID()
	}
	feedback.CreatedAt = time.Now()

	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return nil, fmt.Errorf("error starting session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var event Event
		if err := events.FindOne(sc, bson.M{"_id": feedback.EventID}).Decode(&event); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("%w: event %s", ErrNotFound, feedback.EventID.Hex())
			}
			return nil, err
		}

		if _, err := col.InsertOne(sc, feedback); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("%w: already submitted feedback for this event", ErrAlreadyExists)
			}
			return nil, err
		}

		update := bson.M{"$set": bson.M{
			"feedback_count": event.FeedbackCount + 1,
			"average_rating": NextAverageRating(event.AverageRating, event.FeedbackCount, feedback.Rating),
			"updated_at":     time.Now(),
		}}
		if _, err := events.UpdateOne(sc, bson.M{"_id": feedback.EventID}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

// GetFeedbackForEvent returns all feedback for an event, newest first.
func (mdb *MongodbRepo) GetFeedbackForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Feedback, error) {
	col, err := mdb.GetCollection(ctx, DBName, FeedbackColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding feedback: %v", err)
	}
	defer cursor.Close(ctx)

	feedback := []*Feedback{}
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, fmt.Errorf("error decoding feedback: %v", err)
	}
	return feedback, nil
}

// GetUserFeedbackForEvent is a point-style read; absence is (nil, nil).
func (mdb *MongodbRepo) GetUserFeedbackForEvent(ctx context.Context, eventID primitive.ObjectID, userID string) (*Feedback, error) {
	if userID == "" {
		return nil, nil
	}
	col, err := mdb.GetCollection(ctx, DBName, FeedbackColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var feedback Feedback
	err = col.FindOne(ctx, bson.M{"event_id": eventID, "user_id": userID}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding feedback: %v", err)
	}
	return &feedback, nil
}

var _ FeedbackRepo = (*MongodbRepo)(nil)
