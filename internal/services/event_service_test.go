package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
)

func newTestEventService(events *fakeEventsRepo, profiles *fakeProfilesRepo) *EventService {
	// No poster in these tests, so the blob store client is never touched.
	return NewEventService(events, profiles, nil)
}

func validCreateInput() *models.CreateEventInput {
	return &models.CreateEventInput{
		Title:       "Robotics Workshop",
		Description: "Build a line-following robot",
		Category:    "Workshop",
		Date:        "2026-09-15",
		Time:        "14:00",
		Location:    "Engineering Hall 2",
		Tags:        "robotics, hardware",
	}
}

func TestCreateEventRequiresOrganizerRole(t *testing.T) {
	es := newTestEventService(newFakeEventsRepo(), newFakeProfilesRepo())
	ctx := context.Background()

	_, err := es.CreateEvent(ctx, validCreateInput(), nil)
	if !errors.Is(err, models.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	attendee := &models.UserProfile{UID: "user-1", Role: models.RoleAttendee}
	_, err = es.CreateEvent(ctx, validCreateInput(), attendee)
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateEventIndexesKeywords(t *testing.T) {
	events := newFakeEventsRepo()
	es := newTestEventService(events, newFakeProfilesRepo())
	organizer := &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer, DisplayName: "Robotics Club"}

	created, err := es.CreateEvent(context.Background(), validCreateInput(), organizer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if created.CreatorID != "org-1" || created.CreatorName != "Robotics Club" {
		t.Errorf("creator not stamped: %+v", created)
	}
	if created.RsvpCount != 0 || created.FeedbackCount != 0 || created.AverageRating != 0 {
		t.Error("expected zeroed counters on a new event")
	}

	hasKeyword := func(w string) bool {
		for _, k := range created.Keywords {
			if k == w {
				return true
			}
		}
		return false
	}
	for _, w := range []string{"robotics", "workshop", "hardware", "line-following"} {
		if !hasKeyword(w) {
			t.Errorf("expected keyword %q in %v", w, created.Keywords)
		}
	}
}

func TestCreateEventValidation(t *testing.T) {
	es := newTestEventService(newFakeEventsRepo(), newFakeProfilesRepo())
	ctx := context.Background()
	organizer := &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer}

	input := validCreateInput()
	input.Category = "Underwater"
	if _, err := es.CreateEvent(ctx, input, organizer); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown category, got %v", err)
	}

	input = validCreateInput()
	input.Date = "15 Sep 2026"
	if _, err := es.CreateEvent(ctx, input, organizer); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad date, got %v", err)
	}

	input = validCreateInput()
	input.Title = ""
	if _, err := es.CreateEvent(ctx, input, organizer); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing title, got %v", err)
	}
}

func TestUpdateEventRecomputesKeywordsFromMergedValues(t *testing.T) {
	events := newFakeEventsRepo()
	es := newTestEventService(events, newFakeProfilesRepo())
	ctx := context.Background()
	organizer := &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer}

	created, err := es.CreateEvent(ctx, validCreateInput(), organizer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newTitle := "Drone Workshop"
	updated, err := es.UpdateEvent(ctx, created.ID.Hex(), &models.UpdateEventInput{Title: &newTitle}, organizer)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	hasKeyword := func(w string) bool {
		for _, k := range updated.Keywords {
			if k == w {
				return true
			}
		}
		return false
	}
	if !hasKeyword("drone") {
		t.Errorf("expected new title keyword, got %v", updated.Keywords)
	}
	// Untouched description and tags still contribute
	if !hasKeyword("line-following") || !hasKeyword("hardware") || !hasKeyword("robotics") {
		t.Errorf("expected merged keywords to keep description and tag terms, got %v", updated.Keywords)
	}
}

func TestUpdateEventOnlyManagerMayEdit(t *testing.T) {
	events := newFakeEventsRepo()
	es := newTestEventService(events, newFakeProfilesRepo())
	ctx := context.Background()
	organizer := &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer}

	created, err := es.CreateEvent(ctx, validCreateInput(), organizer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := &models.UserProfile{UID: "org-2", Role: models.RoleOrganizer}
	newTitle := "Hijacked"
	_, err = es.UpdateEvent(ctx, created.ID.Hex(), &models.UpdateEventInput{Title: &newTitle}, other)
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for non-creator, got %v", err)
	}

	// Admins may edit anyone's event
	admin := &models.UserProfile{UID: "admin-1", Role: models.RoleAdmin}
	if _, err := es.UpdateEvent(ctx, created.ID.Hex(), &models.UpdateEventInput{Title: &newTitle}, admin); err != nil {
		t.Errorf("expected admin edit to succeed, got %v", err)
	}
}

func TestQueryEventsRejectsBadOrderDirection(t *testing.T) {
	es := newTestEventService(newFakeEventsRepo(), newFakeProfilesRepo())

	_, err := es.QueryEvents(context.Background(), models.EventQueryOptions{OrderDirection: "sideways"})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetEventsByIDsBatchesLargeLists(t *testing.T) {
	events := newFakeEventsRepo()
	es := newTestEventService(events, newFakeProfilesRepo())
	ctx := context.Background()

	ids := make([]string, 0, models.MaxIDFilter+5)
	for i := 0; i < models.MaxIDFilter+5; i++ {
		event := &models.Event{ID: primitive.NewObjectID(), Title: "e"}
		events.events[event.ID] = event
		ids = append(ids, event.ID.Hex())
	}

	resolved, err := es.GetEventsByIDs(ctx, ids)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(resolved) != len(ids) {
		t.Errorf("expected %d events, got %d", len(ids), len(resolved))
	}
	if len(events.queries) != 2 {
		t.Errorf("expected 2 batched queries, got %d", len(events.queries))
	}
	for _, q := range events.queries {
		if len(q.EventIDs) > models.MaxIDFilter {
			t.Errorf("batch exceeds cap: %d ids", len(q.EventIDs))
		}
	}
}

func TestDeleteEventAuthz(t *testing.T) {
	events := newFakeEventsRepo()
	es := newTestEventService(events, newFakeProfilesRepo())
	ctx := context.Background()
	organizer := &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer}

	created, err := es.CreateEvent(ctx, validCreateInput(), organizer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := &models.UserProfile{UID: "org-2", Role: models.RoleOrganizer}
	if err := es.DeleteEvent(ctx, created.ID.Hex(), other); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	if err := es.DeleteEvent(ctx, created.ID.Hex(), organizer); err != nil {
		t.Errorf("creator delete failed: %v", err)
	}
	if _, err := es.GetEventByID(ctx, created.ID.Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStats(t *testing.T) {
	events := newFakeEventsRepo()
	profiles := newFakeProfilesRepo()
	es := newTestEventService(events, profiles)

	seedEvent(events, "2000-01-01")
	seedEvent(events, "2999-01-01")
	profiles.profiles["u1"] = &models.UserProfile{UID: "u1"}

	stats, err := es.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalEvents != 2 || stats.UpcomingEvents != 1 || stats.TotalUsers != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
