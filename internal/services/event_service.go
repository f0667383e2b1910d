package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/models"
)

type EventService struct {
	eventsRepo   models.EventsRepo
	profilesRepo models.ProfilesRepo
	cld          *cloudinary.Cloudinary
}

func NewEventService(eventsRepo models.EventsRepo, profilesRepo models.ProfilesRepo, cld *cloudinary.Cloudinary) *EventService {
	return &EventService{
		eventsRepo:   eventsRepo,
		profilesRepo: profilesRepo,
		cld:          cld,
	}
}

type HubStats struct {
	TotalEvents    int64 `json:"total_events"`
	UpcomingEvents int64 `json:"upcoming_events"`
	TotalUsers     int64 `json:"total_users"`
}

func parseEventID(id string) (primitive.ObjectID, error) {
	id = strings.Trim(strings.TrimSpace(id), "\"'")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid event id %q", models.ErrInvalidInput, id)
	}
	return oid, nil
}

func (es *EventService) CreateEvent(ctx context.Context, input *models.CreateEventInput, actor *models.UserProfile) (*models.Event, error) {
	if actor == nil || actor.UID == "" {
		return nil, fmt.Errorf("%w: sign in to create events", models.ErrUnauthenticated)
	}
	if !actor.CanCreateEvents() {
		return nil, fmt.Errorf("%w: only admins and organizers can create events", models.ErrUnauthorized)
	}

	if err := models.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if !models.IsValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", models.ErrInvalidInput, input.Category)
	}
	if err := models.ValidateEventDate(input.Date); err != nil {
		return nil, err
	}

	tags := models.ProcessTags(input.Tags)
	speakers, err := models.ProcessSpeakers(input.SpeakersJSON)
	if err != nil {
		return nil, err
	}
	gallery := models.ProcessGalleryURLs(input.GalleryURLs)
	keywords := models.GenerateKeywords(input.Title, input.Description, tags)

	posterURL := input.PosterURL
	posterPublicID := ""
	if input.Poster != "" {
		uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		posterURL, posterPublicID, err = helpers.UploadImage(uploadCtx, es.cld, input.Poster, helpers.PosterFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload poster: %v", err)
		}
	}

	now := time.Now()
	event := &models.Event{
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		Date:             input.Date,
		Time:             input.Time,
		Location:         input.Location,
		PosterURL:        posterURL,
		PosterPublicID:   posterPublicID,
		CreatorID:        actor.UID,
		CreatorName:      displayNameOrAnonymous(actor),
		Tags:             tags,
		Keywords:         keywords,
		RsvpCount:        0,
		FeedbackCount:    0,
		AverageRating:    0,
		Speakers:         speakers,
		GalleryImageURLs: gallery,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := es.eventsRepo.CreateEvent(ctx, event)
	if err != nil {
		// Don't orphan the freshly uploaded poster.
		if posterPublicID != "" {
			_ = helpers.DeleteImage(ctx, es.cld, posterPublicID)
		}
		return nil, err
	}
	return created, nil
}

func (es *EventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseEventID(id)
	if err != nil {
		return nil, err
	}
	return es.eventsRepo.GetEventByID(ctx, oid)
}

func (es *EventService) QueryEvents(ctx context.Context, opts models.EventQueryOptions) ([]*models.Event, error) {
	if opts.OrderDirection != "" && opts.OrderDirection != models.OrderAsc && opts.OrderDirection != models.OrderDesc {
		return nil, fmt.Errorf("%w: order direction must be asc or desc", models.ErrInvalidInput)
	}
	return es.eventsRepo.QueryEvents(ctx, opts)
}

// GetEventsByIDs resolves an arbitrary-size ID list. The query builder
// truncates "in" filters at its cap, so batching happens here.
func (es *EventService) GetEventsByIDs(ctx context.Context, ids []string) ([]*models.Event, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseEventID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}

	events := []*models.Event{}
	for start := 0; start < len(oids); start += models.MaxIDFilter {
		end := start + models.MaxIDFilter
		if end > len(oids) {
			end = len(oids)
		}
		batch, err := es.eventsRepo.QueryEvents(ctx, models.EventQueryOptions{
			EventIDs: oids[start:end],
		})
		if err != nil {
			return nil, err
		}
		events = append(events, batch...)
	}
	return events, nil
}

func (es *EventService) GetEventsByCreator(ctx context.Context, creatorID string) ([]*models.Event, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("%w: creator id is required", models.ErrInvalidInput)
	}
	return es.eventsRepo.QueryEvents(ctx, models.EventQueryOptions{
		CreatorID:      creatorID,
		OrderBy:        "created_at",
		OrderDirection: models.OrderDesc,
	})
}

func (es *EventService) UpdateEvent(ctx context.Context, id string, input *models.UpdateEventInput, actor *models.UserProfile) (*models.Event, error) {
	if actor == nil || actor.UID == "" {
		return nil, fmt.Errorf("%w: sign in to update events", models.ErrUnauthenticated)
	}

	oid, err := parseEventID(id)
	if err != nil {
		return nil, err
	}
	existing, err := es.eventsRepo.GetEventByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageEvent(existing.CreatorID) {
		return nil, fmt.Errorf("%w: only the creator or an admin can update this event", models.ErrUnauthorized)
	}

	update := bson.M{}

	if input.Title != nil {
		update["title"] = *input.Title
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Category != nil {
		if !models.IsValidCategory(*input.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", models.ErrInvalidInput, *input.Category)
		}
		update["category"] = *input.Category
	}
	if input.Date != nil {
		if err := models.ValidateEventDate(*input.Date); err != nil {
			return nil, err
		}
		update["date"] = *input.Date
	}
	if input.Time != nil {
		update["time"] = *input.Time
	}
	if input.Location != nil {
		update["location"] = *input.Location
	}

	var tags []string
	if input.Tags != nil {
		tags = models.ProcessTags(*input.Tags)
		update["tags"] = tags
	}
	if input.SpeakersJSON != nil {
		speakers, err := models.ProcessSpeakers(*input.SpeakersJSON)
		if err != nil {
			return nil, err
		}
		update["speakers"] = speakers
	}
	if input.GalleryURLs != nil {
		update["gallery_image_urls"] = models.ProcessGalleryURLs(*input.GalleryURLs)
	}

	if input.Poster != nil && *input.Poster != "" {
		// New upload replaces the previous blob.
		if existing.PosterPublicID != "" {
			_ = helpers.DeleteImage(ctx, es.cld, existing.PosterPublicID)
		}
		url, publicID, err := helpers.UploadImage(ctx, es.cld, *input.Poster, helpers.PosterFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload poster: %v", err)
		}
		update["poster_url"] = url
		update["poster_public_id"] = publicID
	} else if input.PosterURL != nil && *input.PosterURL != existing.PosterURL {
		if *input.PosterURL == "" && existing.PosterPublicID != "" {
			_ = helpers.DeleteImage(ctx, es.cld, existing.PosterPublicID)
		}
		update["poster_url"] = *input.PosterURL
		update["poster_public_id"] = ""
	}

	// Keywords come from the merged post-update values, not the delta.
	if input.Title != nil || input.Description != nil || input.Tags != nil {
		newTitle := existing.Title
		if input.Title != nil {
			newTitle = *input.Title
		}
		newDescription := existing.Description
		if input.Description != nil {
			newDescription = *input.Description
		}
		newTags := existing.Tags
		if input.Tags != nil {
			newTags = tags
		}
		update["keywords"] = models.GenerateKeywords(newTitle, newDescription, newTags)
	}

	if len(update) == 0 {
		return existing, nil
	}
	update["updated_at"] = time.Now()

	return es.eventsRepo.UpdateEvent(ctx, oid, update)
}

// DeleteEvent removes the event, its RSVP ledger, its feedback collection
// and its poster image.
func (es *EventService) DeleteEvent(ctx context.Context, id string, actor *models.UserProfile) error {
	if actor == nil || actor.UID == "" {
		return fmt.Errorf("%w: sign in to delete events", models.ErrUnauthenticated)
	}

	oid, err := parseEventID(id)
	if err != nil {
		return err
	}
	existing, err := es.eventsRepo.GetEventByID(ctx, oid)
	if err != nil {
		return err
	}
	if !actor.CanManageEvent(existing.CreatorID) {
		return fmt.Errorf("%w: only the creator or an admin can delete this event", models.ErrUnauthorized)
	}

	if existing.PosterPublicID != "" {
		_ = helpers.DeleteImage(ctx, es.cld, existing.PosterPublicID)
	}

	return es.eventsRepo.DeleteEvent(ctx, oid)
}

func (es *EventService) Stats(ctx context.Context) (*HubStats, error) {
	total, err := es.eventsRepo.CountEvents(ctx)
	if err != nil {
		return nil, err
	}
	today := time.Now().Format(models.EventDateLayout)
	upcoming, err := es.eventsRepo.CountUpcomingEvents(ctx, today)
	if err != nil {
		return nil, err
	}
	users, err := es.profilesRepo.CountProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return &HubStats{
		TotalEvents:    total,
		UpcomingEvents: upcoming,
		TotalUsers:     users,
	}, nil
}

func displayNameOrAnonymous(p *models.UserProfile) string {
	if p == nil || p.DisplayName == "" {
		return "Anonymous"
	}
	return p.DisplayName
}
