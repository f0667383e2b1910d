package models

import (
	"reflect"
	"testing"
)

func TestGenerateKeywords(t *testing.T) {
	keywords := GenerateKeywords("Tech Talk", "A talk about Go", []string{"tech", "go"})

	expected := []string{"tech", "talk", "a", "about", "go"}
	if !reflect.DeepEqual(keywords, expected) {
		t.Errorf("expected %v, got %v", expected, keywords)
	}
}

func TestGenerateKeywordsDeduplicates(t *testing.T) {
	keywords := GenerateKeywords("Go Go Go", "go", []string{"Go"})

	if len(keywords) != 1 || keywords[0] != "go" {
		t.Errorf("expected single deduplicated keyword, got %v", keywords)
	}
}

func TestGenerateKeywordsEmptyInputs(t *testing.T) {
	keywords := GenerateKeywords("", "", nil)

	if len(keywords) != 0 {
		t.Errorf("expected no keywords, got %v", keywords)
	}
}

func TestNormalizeSearchTerms(t *testing.T) {
	terms := NormalizeSearchTerms("  Robotics   WORKSHOP ")

	expected := []string{"robotics", "workshop"}
	if !reflect.DeepEqual(terms, expected) {
		t.Errorf("expected %v, got %v", expected, terms)
	}

	if got := NormalizeSearchTerms(""); len(got) != 0 {
		t.Errorf("expected no terms for empty input, got %v", got)
	}
}
