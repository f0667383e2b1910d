package services

import (
	"context"
	"fmt"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/models"
)

type UserService struct {
	authRepo     models.AuthRepo
	profilesRepo models.ProfilesRepo
}

func NewUserService(authRepo models.AuthRepo, profilesRepo models.ProfilesRepo) *UserService {
	return &UserService{
		authRepo:     authRepo,
		profilesRepo: profilesRepo,
	}
}

func (us *UserService) SignUp(ctx context.Context, email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", models.ErrInvalidInput)
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, fmt.Errorf("%w: password is not strong enough", models.ErrInvalidInput)
	}
	return us.authRepo.SignUp(ctx, email, password)
}

func (us *UserService) SignIn(ctx context.Context, email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", models.ErrInvalidInput)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("%w: invalid password format", models.ErrInvalidInput)
	}
	response, err := us.authRepo.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}
	return response, nil
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", models.ErrInvalidInput)
	}
	response, err := us.authRepo.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}

// GetProfile returns the stored profile or nil when none exists yet.
func (us *UserService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: user id is required", models.ErrInvalidInput)
	}
	return us.profilesRepo.GetProfile(ctx, uid)
}

// SaveProfile upserts a profile. Users edit their own profile; only admins
// edit others or change roles.
func (us *UserService) SaveProfile(ctx context.Context, actor *models.UserProfile, profile *models.UserProfile) (*models.UserProfile, error) {
	if actor == nil || actor.UID == "" {
		return nil, fmt.Errorf("%w: sign in to update a profile", models.ErrUnauthenticated)
	}
	if profile.UID == "" {
		profile.UID = actor.UID
	}
	if profile.UID != actor.UID && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot edit another user's profile", models.ErrUnauthorized)
	}

	switch profile.Role {
	case "":
		profile.Role = models.RoleAttendee
	case models.RoleAdmin, models.RoleOrganizer, models.RoleAttendee:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalidInput, profile.Role)
	}
	if profile.Role != models.RoleAttendee && actor.Role != models.RoleAdmin {
		current, err := us.profilesRepo.GetProfile(ctx, profile.UID)
		if err != nil {
			return nil, err
		}
		// Role escalation is admin-only; keeping an existing role is fine.
		if current == nil || current.Role != profile.Role {
			return nil, fmt.Errorf("%w: only admins can change roles", models.ErrUnauthorized)
		}
	}

	return us.profilesRepo.UpsertProfile(ctx, profile)
}
