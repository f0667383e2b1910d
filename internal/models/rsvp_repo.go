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

type RsvpRepo interface {
	AddRsvp(ctx context.Context, eventID primitive.ObjectID, userID, token string) error
	RemoveRsvp(ctx context.Context, eventID primitive.ObjectID, userID string) error
	GetRsvp(ctx context.Context, eventID primitive.ObjectID, userID string) (*Rsvp, error)
	ListRsvpsForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Rsvp, error)
	ListRsvpsForUser(ctx context.Context, userID string) ([]*Rsvp, error)
	CountRsvpsForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
	CheckInWithToken(ctx context.Context, eventID primitive.ObjectID, token string) (*CheckinResult, error)
}

// AddRsvp inserts the attendance record and bumps the event's rsvp_count in
// a single transaction. An existing record for the same (event, user) is a
// silent no-op, so calling this twice leaves exactly one record and one
// count increment. The token must be generated by the caller before the
// transaction starts.
func (mdb *MongodbRepo) AddRsvp(ctx context.Context, eventID primitive.ObjectID, userID, token string) error {
	events, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	rsvps, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var event Event
		if err := events.FindOne(sc, bson.M{"_id": eventID}).Decode(&event); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("%w: event %s", ErrNotFound, eventID.Hex())
			}
			return nil, err
		}

		existingFilter := bson.M{"event_id": eventID, "user_id": userID}
		err := rsvps.FindOne(sc, existingFilter).Err()
		if err == nil {
			// Already RSVPed; idempotent add.
			return nil, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		rsvp := Rsvp{
			ID:          primitive.NewObjectID(),
			EventID:     eventID,
			UserID:      userID,
			Token:       token,
			CheckedIn:   false,
			CheckedInAt: nil,
			CreatedAt:   time.Now(),
		}
		if _, err := rsvps.InsertOne(sc, rsvp); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, nil
			}
			return nil, err
		}

		update := bson.M{"$set": bson.M{"rsvp_count": event.RsvpCount + 1}}
		if _, err := events.UpdateOne(sc, bson.M{"_id": eventID}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// RemoveRsvp deletes the record and decrements rsvp_count in one
// transaction. A missing record is a no-op, and the count never goes below
// zero even if the stored value is already off.
func (mdb *MongodbRepo) RemoveRsvp(ctx context.Context, eventID primitive.ObjectID, userID string) error {
	events, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	rsvps, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var event Event
		if err := events.FindOne(sc, bson.M{"_id": eventID}).Decode(&event); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("%w: event %s", ErrNotFound, eventID.Hex())
			}
			return nil, err
		}

		res, err := rsvps.DeleteOne(sc, bson.M{"event_id": eventID, "user_id": userID})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, nil
		}

		newCount := event.RsvpCount - 1
		if newCount < 0 {
			newCount = 0
		}
		update := bson.M{"$set": bson.M{"rsvp_count": newCount}}
		if _, err := events.UpdateOne(sc, bson.M{"_id": eventID}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetRsvp is a point lookup; absence is (nil, nil), not an error.
func (mdb *MongodbRepo) GetRsvp(ctx context.Context, eventID primitive.ObjectID, userID string) (*Rsvp, error) {
	col, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var rsvp Rsvp
	err = col.FindOne(ctx, bson.M{"event_id": eventID, "user_id": userID}).Decode(&rsvp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding rsvp: %v", err)
	}
	return &rsvp, nil
}

func (mdb *MongodbRepo) ListRsvpsForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Rsvp, error) {
	col, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("error finding rsvps: %v", err)
	}
	defer cursor.Close(ctx)

	rsvps := []*Rsvp{}
	if err := cursor.All(ctx, &rsvps); err != nil {
		return nil, fmt.Errorf("error decoding rsvps: %v", err)
	}
	return rsvps, nil
}

// ListRsvpsForUser spans all events, newest first.
func (mdb *MongodbRepo) ListRsvpsForUser(ctx context.Context, userID string) ([]*Rsvp, error) {
	col, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding rsvps: %v", err)
	}
	defer cursor.Close(ctx)

	rsvps := []*Rsvp{}
	if err := cursor.All(ctx, &rsvps); err != nil {
		return nil, fmt.Errorf("error decoding rsvps: %v", err)
	}
	return rsvps, nil
}

// CountRsvpsForEvent is the authoritative server-side count, used for
// reconciliation against the denormalized rsvp_count, not on read paths.
func (mdb *MongodbRepo) CountRsvpsForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{"event_id": eventID})
}

// CheckInWithToken redeems a check-in token for an event. The claim itself
// is a single conditional update on checked_in=false, so two concurrent
// attempts on the same token can't both succeed.
func (mdb *MongodbRepo) CheckInWithToken(ctx context.Context, eventID primitive.ObjectID, token string) (*CheckinResult, error) {
	col, err := mdb.GetCollection(ctx, DBName, RsvpsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var rsvp Rsvp
	err = col.FindOne(ctx, bson.M{"event_id": eventID, "token": token}).Decode(&rsvp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &CheckinResult{
				Success: false,
				Message: "Invalid RSVP token or token not found for this event.",
			}, nil
		}
		return nil, fmt.Errorf("error finding rsvp by token: %v", err)
	}

	if rsvp.CheckedIn {
		return &CheckinResult{
			Success: false,
			Message: fmt.Sprintf("User already checked in at %s.", checkedInTime(rsvp.CheckedInAt)),
		}, nil
	}

	now := time.Now()
	res, err := col.UpdateOne(ctx,
		bson.M{"_id": rsvp.ID, "checked_in": false},
		bson.M{"$set": bson.M{"checked_in": true, "checked_in_at": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("error updating rsvp check-in: %v", err)
	}
	if res.ModifiedCount == 0 {
		// Lost the claim to a concurrent check-in.
		return &CheckinResult{
			Success: false,
			Message: "User already checked in.",
		}, nil
	}

	return &CheckinResult{Success: true, Message: "Successfully checked in user."}, nil
}

func checkedInTime(t *time.Time) string {
	if t == nil {
		return "an unknown time"
	}
	return t.Format("3:04:05 PM")
}

var _ RsvpRepo = (*MongodbRepo)(nil)
