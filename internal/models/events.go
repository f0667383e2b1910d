package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var EventCategories = []string{
	"Tech",
	"Cultural",
	"Sports",
	"Workshop",
	"Seminar",
	"Social",
	"Music",
	"Art",
	"Food",
	"Networking",
	"Charity",
	"Other",
}

const EventDateLayout = "2006-01-02"

type Speaker struct {
	Name     string `bson:"name" json:"name"`
	Title    string `bson:"title" json:"title"`
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Date        string             `bson:"date" json:"date" validate:"required"` // YYYY-MM-DD
	Time        string             `bson:"time" json:"time" validate:"required"` // HH:MM local
	Location    string             `bson:"location" json:"location" validate:"required"`

	PosterURL      string `bson:"poster_url,omitempty" json:"poster_url,omitempty"`
	PosterPublicID string `bson:"poster_public_id,omitempty" json:"-"`

	CreatorID   string `bson:"creator_id" json:"creator_id"`
	CreatorName string `bson:"creator_name,omitempty" json:"creator_name,omitempty"`

	Tags     []string `bson:"tags" json:"tags"`
	Keywords []string `bson:"keywords" json:"-"`

	// Denormalized counters. Only the rsvp and feedback repos may write
	// these, always in the same transaction as the record mutation.
	RsvpCount     int     `bson:"rsvp_count" json:"rsvp_count"`
	FeedbackCount int     `bson:"feedback_count" json:"feedback_count"`
	AverageRating float64 `bson:"average_rating" json:"average_rating"`

	Speakers         []Speaker `bson:"speakers,omitempty" json:"speakers,omitempty"`
	GalleryImageURLs []string  `bson:"gallery_image_urls,omitempty" json:"gallery_image_urls,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CreateEventInput is the create payload. Poster carries an upload source
// (base64 data URI or remote URL handed to the blob store); PosterURL is a
// pre-hosted URL used verbatim when no upload is given.
type CreateEventInput struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Poster       string `json:"poster,omitempty"`
	PosterURL    string `json:"poster_url,omitempty"`
	Tags         string `json:"tags,omitempty"`
	SpeakersJSON string `json:"speakers_json,omitempty"`
	GalleryURLs  string `json:"gallery_urls,omitempty"`
}

// UpdateEventInput uses pointers so absent fields are left untouched.
// An explicit empty PosterURL removes the poster.
type UpdateEventInput struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	Date         *string `json:"date,omitempty"`
	Time         *string `json:"time,omitempty"`
	Location     *string `json:"location,omitempty"`
	Poster       *string `json:"poster,omitempty"`
	PosterURL    *string `json:"poster_url,omitempty"`
	Tags         *string `json:"tags,omitempty"`
	SpeakersJSON *string `json:"speakers_json,omitempty"`
	GalleryURLs  *string `json:"gallery_urls,omitempty"`
}

func IsValidCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidateEventDate(date string) error {
	if _, err := time.Parse(EventDateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// ProcessTags splits a comma-separated tag string into a trimmed,
// de-duplicated list, preserving first-seen order.
func ProcessTags(tagsString string) []string {
	tags := []string{}
	seen := make(map[string]struct{})
	for _, tag := range strings.Split(tagsString, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// ProcessSpeakers parses the speakers JSON payload. Entries missing a name
// or title are dropped; malformed JSON is an input error.
func ProcessSpeakers(speakersJSON string) ([]Speaker, error) {
	if strings.TrimSpace(speakersJSON) == "" {
		return []Speaker{}, nil
	}
	var parsed []Speaker
	if err := json.Unmarshal([]byte(speakersJSON), &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed speakers JSON: %v", ErrInvalidInput, err)
	}
	speakers := make([]Speaker, 0, len(parsed))
	for _, sp := range parsed {
		if sp.Name == "" || sp.Title == "" {
			continue
		}
		speakers = append(speakers, sp)
	}
	return speakers, nil
}

func ProcessGalleryURLs(urlsString string) []string {
	urls := []string{}
	for _, u := range strings.Split(urlsString, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
