package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestProcessTags(t *testing.T) {
	tags := ProcessTags(" tech, ai , tech,,  ml ")

	expected := []string{"tech", "ai", "ml"}
	if !reflect.DeepEqual(tags, expected) {
		t.Errorf("expected %v, got %v", expected, tags)
	}

	if got := ProcessTags(""); len(got) != 0 {
		t.Errorf("expected no tags for empty input, got %v", got)
	}
}

func TestProcessSpeakers(t *testing.T) {
	speakers, err := ProcessSpeakers(`[{"name":"Ada","title":"Engineer"},{"name":"","title":"Nobody"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(speakers) != 1 || speakers[0].Name != "Ada" {
		t.Errorf("expected incomplete entries dropped, got %v", speakers)
	}
}

func TestProcessSpeakersMalformedJSON(t *testing.T) {
	_, err := ProcessSpeakers(`not json`)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProcessSpeakersEmpty(t *testing.T) {
	speakers, err := ProcessSpeakers("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(speakers) != 0 {
		t.Errorf("expected no speakers, got %v", speakers)
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("Tech") {
		t.Error("expected Tech to be valid")
	}
	if IsValidCategory("All") {
		t.Error("expected All to be a filter value, not a category")
	}
	if IsValidCategory("") {
		t.Error("expected empty category to be invalid")
	}
}

func TestValidateEventDate(t *testing.T) {
	if err := ValidateEventDate("2026-09-15"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateEventDate("15/09/2026"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProcessGalleryURLs(t *testing.T) {
	urls := ProcessGalleryURLs(" https://a.example/1.png , ,https://a.example/2.png")
	if len(urls) != 2 {
		t.Errorf("expected 2 urls, got %v", urls)
	}
}
