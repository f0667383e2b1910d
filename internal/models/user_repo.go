package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/gotrue-go/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuthRepo is the identity-provider contract: account creation, sign-in and
// session refresh. Profile documents live in the document store, not here.
type AuthRepo interface {
	SignUp(ctx context.Context, email, password string) (interface{}, error)
	SignIn(ctx context.Context, email, password string) (interface{}, error)
	RefreshToken(ctx context.Context, refreshToken string) (interface{}, error)
}

type ProfilesRepo interface {
	GetProfile(ctx context.Context, uid string) (*UserProfile, error)
	UpsertProfile(ctx context.Context, profile *UserProfile) (*UserProfile, error)
	CountProfiles(ctx context.Context) (int64, error)
}

func (su *SupabaseRepo) SignUp(ctx context.Context, email, password string) (interface{}, error) {
	signed := types.SignupRequest{
		Email:    email,
		Password: password,
	}

	res, err := su.supabaseClient.Auth.Signup(signed)
	if err != nil {
		if strings.Contains(err.Error(), "User already Registered") {
			return nil, fmt.Errorf("%w: email already in use", ErrAlreadyExists)
		}
		if strings.Contains(err.Error(), "unique constraint") {
			return nil, fmt.Errorf("%w: user already exists", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	return res, nil
}

func (su *SupabaseRepo) SignIn(ctx context.Context, email, password string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %v", err)
	}
	return resp, nil
}

// GetProfile returns the stored profile, or (nil, nil) when the user has
// signed in but never saved one; callers fall back to a default attendee
// view in that case.
func (mdb *MongodbRepo) GetProfile(ctx context.Context, uid string) (*UserProfile, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var profile UserProfile
	if err := col.FindOne(ctx, bson.M{"_id": uid}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding profile: %v", err)
	}
	if profile.Role == "" {
		profile.Role = RoleAttendee
	}
	return &profile, nil
}

func (mdb *MongodbRepo) UpsertProfile(ctx context.Context, profile *UserProfile) (*UserProfile, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"email":        profile.Email,
			"display_name": profile.DisplayName,
			"photo_url":    profile.PhotoURL,
			"role":         profile.Role,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result UserProfile
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": profile.UID}, update, opts).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("error upserting profile: %v", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) CountProfiles(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{})
}

var (
	_ AuthRepo     = (*SupabaseRepo)(nil)
	_ ProfilesRepo = (*MongodbRepo)(nil)
)
