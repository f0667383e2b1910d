package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
)

// In-memory repos mirroring the store's semantics: idempotent RSVP add,
// counter floor at zero, one-shot check-in, unique feedback per user.

type fakeEventsRepo struct {
	events  map[primitive.ObjectID]*models.Event
	queries []models.EventQueryOptions
}

func newFakeEventsRepo() *fakeEventsRepo {
	return &fakeEventsRepo{events: make(map[primitive.ObjectID]*models.Event)}
}

func (f *fakeEventsRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventsRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", models.ErrNotFound, id.Hex())
	}
	return event, nil
}

func (f *fakeEventsRepo) QueryEvents(ctx context.Context, opts models.EventQueryOptions) ([]*models.Event, error) {
	f.queries = append(f.queries, opts)
	results := []*models.Event{}
	for _, event := range f.events {
		if opts.CreatorID != "" && event.CreatorID != opts.CreatorID {
			continue
		}
		if len(opts.EventIDs) > 0 && !containsID(opts.EventIDs, event.ID) {
			continue
		}
		results = append(results, event)
	}
	return results, nil
}

func (f *fakeEventsRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", models.ErrNotFound, id.Hex())
	}
	if title, ok := update["title"].(string); ok {
		event.Title = title
	}
	if description, ok := update["description"].(string); ok {
		event.Description = description
	}
	if tags, ok := update["tags"].([]string); ok {
		event.Tags = tags
	}
	if keywords, ok := update["keywords"].([]string); ok {
		event.Keywords = keywords
	}
	return event, nil
}

func (f *fakeEventsRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.events[id]; !ok {
		return fmt.Errorf("%w: event %s", models.ErrNotFound, id.Hex())
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventsRepo) CountEvents(ctx context.Context) (int64, error) {
	return int64(len(f.events)), nil
}

func (f *fakeEventsRepo) CountUpcomingEvents(ctx context.Context, fromDate string) (int64, error) {
	var count int64
	for _, event := range f.events {
		if event.Date >= fromDate {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventsRepo) EnsureIndexes(ctx context.Context) error { return nil }

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type rsvpKey struct {
	eventID primitive.ObjectID
	userID  string
}

type fakeRsvpRepo struct {
	events *fakeEventsRepo
	rsvps  map[rsvpKey]*models.Rsvp
}

func newFakeRsvpRepo(events *fakeEventsRepo) *fakeRsvpRepo {
	return &fakeRsvpRepo{events: events, rsvps: make(map[rsvpKey]*models.Rsvp)}
}

func (f *fakeRsvpRepo) AddRsvp(ctx context.Context, eventID primitive.ObjectID, userID, token string) error {
	event, ok := f.events.events[eventID]
	if !ok {
		return fmt.Errorf("%w: event %s", models.ErrNotFound, eventID.Hex())
	}
	key := rsvpKey{eventID, userID}
	if _, exists := f.rsvps[key]; exists {
		return nil
	}
	f.rsvps[key] = &models.Rsvp{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
	}
	event.RsvpCount++
	return nil
}

func (f *fakeRsvpRepo) RemoveRsvp(ctx context.Context, eventID primitive.ObjectID, userID string) error {
	event, ok := f.events.events[eventID]
	if !ok {
		return fmt.Errorf("%w: event %s", models.ErrNotFound, eventID.Hex())
	}
	key := rsvpKey{eventID, userID}
	if _, exists := f.rsvps[key]; !exists {
		return nil
	}
	delete(f.rsvps, key)
	if event.RsvpCount > 0 {
		event.RsvpCount--
	}
	return nil
}

func (f *fakeRsvpRepo) GetRsvp(ctx context.Context, eventID primitive.ObjectID, userID string) (*models.Rsvp, error) {
	return f.rsvps[rsvpKey{eventID, userID}], nil
}

func (f *fakeRsvpRepo) ListRsvpsForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*models.Rsvp, error) {
	results := []*models.Rsvp{}
	for _, rsvp := range f.rsvps {
		if rsvp.EventID == eventID {
			results = append(results, rsvp)
		}
	}
	return results, nil
}

func (f *fakeRsvpRepo) ListRsvpsForUser(ctx context.Context, userID string) ([]*models.Rsvp, error) {
	results := []*models.Rsvp{}
	for _, rsvp := range f.rsvps {
		if rsvp.UserID == userID {
			results = append(results, rsvp)
		}
	}
	return results, nil
}

func (f *fakeRsvpRepo) CountRsvpsForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	var count int64
	for _, rsvp := range f.rsvps {
		if rsvp.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRsvpRepo) CheckInWithToken(ctx context.Context, eventID primitive.ObjectID, token string) (*models.CheckinResult, error) {
	for _, rsvp := range f.rsvps {
		if rsvp.EventID != eventID || rsvp.Token != token {
			continue
		}
		if rsvp.CheckedIn {
			return &models.CheckinResult{Success: false, Message: "User already checked in."}, nil
		}
		now := time.Now()
		rsvp.CheckedIn = true
		rsvp.CheckedInAt = &now
		return &models.CheckinResult{Success: true, Message: "Successfully checked in user."}, nil
	}
	return &models.CheckinResult{
		Success: false,
		Message: "Invalid RSVP token or token not found for this event.",
	}, nil
}

type fakeFeedbackRepo struct {
	events   *fakeEventsRepo
	feedback map[rsvpKey]*models.Feedback
}

func newFakeFeedbackRepo(events *fakeEventsRepo) *fakeFeedbackRepo {
	return &fakeFeedbackRepo{events: events, feedback: make(map[rsvpKey]*models.Feedback)}
}

func (f *fakeFeedbackRepo) AddFeedback(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error) {
	event, ok := f.events.events[feedback.EventID]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", models.ErrNotFound, feedback.EventID.Hex())
	}
	key := rsvpKey{feedback.EventID, feedback.UserID}
	if _, exists := f.feedback[key]; exists {
		return nil, fmt.Errorf("%w: already submitted feedback for this event", models.ErrAlreadyExists)
	}
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now()
	f.feedback[key] = feedback

	event.AverageRating = models.NextAverageRating(event.AverageRating, event.FeedbackCount, feedback.Rating)
	event.FeedbackCount++
	return feedback, nil
}

func (f *fakeFeedbackRepo) GetFeedbackForEvent(ctx context.Context, eventID primitive.ObjectID) ([]*models.Feedback, error) {
	results := []*models.Feedback{}
	for _, fb := range f.feedback {
		if fb.EventID == eventID {
			results = append(results, fb)
		}
	}
	return results, nil
}

func (f *fakeFeedbackRepo) GetUserFeedbackForEvent(ctx context.Context, eventID primitive.ObjectID, userID string) (*models.Feedback, error) {
	return f.feedback[rsvpKey{eventID, userID}], nil
}

type fakeProfilesRepo struct {
	profiles map[string]*models.UserProfile
}

func newFakeProfilesRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{profiles: make(map[string]*models.UserProfile)}
}

func (f *fakeProfilesRepo) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	return f.profiles[uid], nil
}

func (f *fakeProfilesRepo) UpsertProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	f.profiles[profile.UID] = profile
	return profile, nil
}

func (f *fakeProfilesRepo) CountProfiles(ctx context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

var (
	_ models.EventsRepo   = (*fakeEventsRepo)(nil)
	_ models.RsvpRepo     = (*fakeRsvpRepo)(nil)
	_ models.FeedbackRepo = (*fakeFeedbackRepo)(nil)
	_ models.ProfilesRepo = (*fakeProfilesRepo)(nil)
)
