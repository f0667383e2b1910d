package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campushub/api/internal/models"
)

type fakeAuthRepo struct {
	signUps int
}

func (f *fakeAuthRepo) SignUp(ctx context.Context, email, password string) (interface{}, error) {
	f.signUps++
	return map[string]string{"email": email}, nil
}

func (f *fakeAuthRepo) SignIn(ctx context.Context, email, password string) (interface{}, error) {
	return nil, errors.New("invalid credentials")
}

func (f *fakeAuthRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	return nil, errors.New("expired")
}

var _ models.AuthRepo = (*fakeAuthRepo)(nil)

func TestSignUpValidation(t *testing.T) {
	auth := &fakeAuthRepo{}
	us := NewUserService(auth, newFakeProfilesRepo())
	ctx := context.Background()

	if _, err := us.SignUp(ctx, "not-an-email", "Str0ng!pass"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, err := us.SignUp(ctx, "a@b.edu", "weak"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for weak password, got %v", err)
	}
	if auth.signUps != 0 {
		t.Errorf("expected no provider calls for invalid input, got %d", auth.signUps)
	}

	if _, err := us.SignUp(ctx, "a@b.edu", "Str0ng!pass"); err != nil {
		t.Errorf("expected signup to succeed, got %v", err)
	}
	if auth.signUps != 1 {
		t.Errorf("expected 1 provider call, got %d", auth.signUps)
	}
}

func TestSaveProfileOwnProfile(t *testing.T) {
	profiles := newFakeProfilesRepo()
	us := NewUserService(&fakeAuthRepo{}, profiles)
	actor := &models.UserProfile{UID: "user-1", Role: models.RoleAttendee}

	saved, err := us.SaveProfile(context.Background(), actor, &models.UserProfile{DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.UID != "user-1" {
		t.Errorf("expected UID filled from actor, got %q", saved.UID)
	}
	if saved.Role != models.RoleAttendee {
		t.Errorf("expected default attendee role, got %q", saved.Role)
	}
}

func TestSaveProfileBlocksRoleEscalation(t *testing.T) {
	profiles := newFakeProfilesRepo()
	us := NewUserService(&fakeAuthRepo{}, profiles)
	ctx := context.Background()
	actor := &models.UserProfile{UID: "user-1", Role: models.RoleAttendee}

	_, err := us.SaveProfile(ctx, actor, &models.UserProfile{UID: "user-1", Role: models.RoleAdmin})
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for self-escalation, got %v", err)
	}

	// Keeping an existing elevated role is not an escalation
	profiles.profiles["org-1"] = &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer}
	organizer := &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer}
	if _, err := us.SaveProfile(ctx, organizer, &models.UserProfile{UID: "org-1", Role: models.RoleOrganizer, DisplayName: "Club"}); err != nil {
		t.Errorf("expected role-preserving save to succeed, got %v", err)
	}
}

func TestSaveProfileCrossUserNeedsAdmin(t *testing.T) {
	profiles := newFakeProfilesRepo()
	us := NewUserService(&fakeAuthRepo{}, profiles)
	ctx := context.Background()

	actor := &models.UserProfile{UID: "user-1", Role: models.RoleAttendee}
	_, err := us.SaveProfile(ctx, actor, &models.UserProfile{UID: "user-2"})
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	admin := &models.UserProfile{UID: "admin-1", Role: models.RoleAdmin}
	if _, err := us.SaveProfile(ctx, admin, &models.UserProfile{UID: "user-2", Role: models.RoleOrganizer}); err != nil {
		t.Errorf("expected admin cross-user save to succeed, got %v", err)
	}
}

func TestSaveProfileRejectsUnknownRole(t *testing.T) {
	us := NewUserService(&fakeAuthRepo{}, newFakeProfilesRepo())
	admin := &models.UserProfile{UID: "admin-1", Role: models.RoleAdmin}

	_, err := us.SaveProfile(context.Background(), admin, &models.UserProfile{UID: "user-2", Role: "superuser"})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
