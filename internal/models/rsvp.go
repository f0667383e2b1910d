package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rsvp is one attendance record, at most one per (event, user). The token
// is an opaque identifier generated before the insert transaction; it is
// random, not checked for global uniqueness across events.
type Rsvp struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"event_id" json:"event_id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Token       string             `bson:"token" json:"token"`
	CheckedIn   bool               `bson:"checked_in" json:"checked_in"`
	CheckedInAt *time.Time         `bson:"checked_in_at" json:"checked_in_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// CheckinResult reports a check-in attempt. A bad or already-used token is
// a failure result, not an error.
type CheckinResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
