package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campushub/api/internal/models"
)

type RsvpService struct {
	rsvpsRepo models.RsvpRepo
}

func NewRsvpService(rsvpsRepo models.RsvpRepo) *RsvpService {
	return &RsvpService{
		rsvpsRepo: rsvpsRepo,
	}
}

// AddRsvp records the user's intent to attend. The check-in token is
// generated here, before the ledger transaction; it is a random identifier
// and is not re-validated against other events' tokens.
func (rs *RsvpService) AddRsvp(ctx context.Context, eventID, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: sign in to RSVP", models.ErrUnauthenticated)
	}
	oid, err := parseEventID(eventID)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	return rs.rsvpsRepo.AddRsvp(ctx, oid, userID, token)
}

func (rs *RsvpService) RemoveRsvp(ctx context.Context, eventID, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: sign in to withdraw an RSVP", models.ErrUnauthenticated)
	}
	oid, err := parseEventID(eventID)
	if err != nil {
		return err
	}
	return rs.rsvpsRepo.RemoveRsvp(ctx, oid, userID)
}

// GetRsvp returns the user's record for the event, or nil when absent.
func (rs *RsvpService) GetRsvp(ctx context.Context, eventID, userID string) (*models.Rsvp, error) {
	if userID == "" {
		return nil, nil
	}
	oid, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return rs.rsvpsRepo.GetRsvp(ctx, oid, userID)
}

func (rs *RsvpService) ListRsvpsForEvent(ctx context.Context, eventID string) ([]*models.Rsvp, error) {
	oid, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return rs.rsvpsRepo.ListRsvpsForEvent(ctx, oid)
}

func (rs *RsvpService) ListRsvpsForUser(ctx context.Context, userID string) ([]*models.Rsvp, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: sign in to list your RSVPs", models.ErrUnauthenticated)
	}
	return rs.rsvpsRepo.ListRsvpsForUser(ctx, userID)
}

// CountRsvpsForEvent is the authoritative ledger count, for reconciling the
// denormalized rsvp_count.
func (rs *RsvpService) CountRsvpsForEvent(ctx context.Context, eventID string) (int64, error) {
	oid, err := parseEventID(eventID)
	if err != nil {
		return 0, err
	}
	return rs.rsvpsRepo.CountRsvpsForEvent(ctx, oid)
}

// CheckIn redeems a token at the door. Bad or spent tokens come back as a
// failure result with a message, not an error.
func (rs *RsvpService) CheckIn(ctx context.Context, eventID, token string, actor *models.UserProfile) (*models.CheckinResult, error) {
	if actor == nil || actor.UID == "" {
		return nil, fmt.Errorf("%w: sign in to check in attendees", models.ErrUnauthenticated)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", models.ErrInvalidInput)
	}
	oid, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return rs.rsvpsRepo.CheckInWithToken(ctx, oid, token)
}
