package models

import "time"

const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
)

// UserProfile is the profile document keyed by the auth provider's user id.
// A signed-in user with no stored profile is treated as a plain attendee.
type UserProfile struct {
	UID         string    `bson:"_id" json:"uid"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	PhotoURL    string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Role        string    `bson:"role" json:"role"`
	CreatedAt   time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// CanCreateEvents reports whether the profile's role grants event creation.
func (p *UserProfile) CanCreateEvents() bool {
	return p.Role == RoleAdmin || p.Role == RoleOrganizer
}

// CanManageEvent reports edit/delete rights over an event: admins over any
// event, everyone else over their own.
func (p *UserProfile) CanManageEvent(creatorID string) bool {
	return p.Role == RoleAdmin || p.UID == creatorID
}
