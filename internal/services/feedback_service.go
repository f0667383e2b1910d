package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/api/internal/models"
)

type FeedbackService struct {
	feedbackRepo models.FeedbackRepo
	eventsRepo   models.EventsRepo
}

func NewFeedbackService(feedbackRepo models.FeedbackRepo, eventsRepo models.EventsRepo) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		eventsRepo:   eventsRepo,
	}
}

// AddFeedback records one rating per (event, user), after the event's date
// has passed. The repo folds the rating into the event's running average.
func (fs *FeedbackService) AddFeedback(ctx context.Context, eventID string, actor *models.UserProfile, rating int, comment string) (*models.Feedback, error) {
	if actor == nil || actor.UID == "" {
		return nil, fmt.Errorf("%w: sign in to leave feedback", models.ErrUnauthenticated)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", models.ErrInvalidInput)
	}

	oid, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}

	event, err := fs.eventsRepo.GetEventByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !eventDatePassed(event.Date, time.Now()) {
		return nil, fmt.Errorf("%w: feedback opens after the event date has passed", models.ErrInvalidInput)
	}

	feedback := &models.Feedback{
		EventID:  oid,
		UserID:   actor.UID,
		UserName: displayNameOrAnonymous(actor),
		Rating:   rating,
		Comment:  comment,
	}
	return fs.feedbackRepo.AddFeedback(ctx, feedback)
}

func (fs *FeedbackService) GetFeedbackForEvent(ctx context.Context, eventID string) ([]*models.Feedback, error) {
	oid, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return fs.feedbackRepo.GetFeedbackForEvent(ctx, oid)
}

func (fs *FeedbackService) GetUserFeedbackForEvent(ctx context.Context, eventID, userID string) (*models.Feedback, error) {
	oid, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return fs.feedbackRepo.GetUserFeedbackForEvent(ctx, oid, userID)
}

// Dates are YYYY-MM-DD, so lexical comparison is date comparison.
func eventDatePassed(date string, now time.Time) bool {
	return date < now.Format(models.EventDateLayout)
}
