package services

import (
	"testing"

	"github.com/diewo77/go-quotations/internal/models"
)

func TestEnsureTermsReadRepair(t *testing.T) {
	db := setupTestDB(t)

	terms, err := EnsureTerms(db, 42)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if terms.Content != models.DefaultTermsContent {
		t.Fatalf("expected default content, got %q", terms.Content)
	}
	again, err := EnsureTerms(db, 42)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if again.ID != terms.ID {
		t.Fatalf("expected same row on second read, got %d != %d", again.ID, terms.ID)
	}
}

func TestUpdateTerms(t *testing.T) {
	db := setupTestDB(t)

	updated, err := UpdateTerms(db, 7, "custom terms")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "custom terms" {
		t.Fatalf("got %q", updated.Content)
	}
	// The update sticks; a later ensure must not re-seed the default.
	terms, err := EnsureTerms(db, 7)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if terms.Content != "custom terms" {
		t.Fatalf("expected custom terms to persist, got %q", terms.Content)
	}
}
