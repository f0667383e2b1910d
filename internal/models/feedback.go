package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is one post-event rating per (event, user). Immutable once
// created; there is no edit or delete path.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"event_id" json:"event_id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	UserName  string             `bson:"user_name" json:"user_name"`
	Rating    int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// NextAverageRating folds one new rating into the running average,
// rounded to 2 decimal places after the final division.
func NextAverageRating(average float64, count int, rating int) float64 {
	total := average*float64(count) + float64(rating)
	next := total / float64(count+1)
	return math.Round(next*100) / 100
}
