package services

import (
	"testing"

	"docspace/internal/models"
	apperrors "docspace/pkg/errors"
)

func TestListJobsByDocument(t *testing.T) {
	db, _, documents, alice, workspace, _ := setupDocumentFixture(t)
	jobs := NewJobService(db)

	document, err := documents.Upload(alice, workspace, "readme.txt", "text/plain", []byte("hello"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	listed, err := jobs.ListByDocument(alice, document.ID)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 job, got %d", len(listed))
	}
	if listed[0].JobType != models.JobTypeTextExtraction {
		t.Fatalf("expected text_extraction job, got %s", listed[0].JobType)
	}

	loaded, err := jobs.GetByID(alice, listed[0].ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if loaded.DocumentID != document.ID {
		t.Fatalf("job document mismatch: %d", loaded.DocumentID)
	}
}

func TestJobAccessGatedByDocumentMembership(t *testing.T) {
	db, _, documents, alice, workspace, _ := setupDocumentFixture(t)
	jobs := NewJobService(db)

	audit := NewAuditService(db)
	users := NewUserService(db, audit)
	outsider, _ := registerUser(t, users, "eve@example.com", "eve", "Globex")

	document, err := documents.Upload(alice, workspace, "readme.txt", "text/plain", []byte("hello"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	_, err = jobs.ListByDocument(outsider, document.ID)
	assertAppError(t, err, apperrors.CodeForbidden)

	listed, err := jobs.ListByDocument(alice, document.ID)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	_, err = jobs.GetByID(outsider, listed[0].ID)
	assertAppError(t, err, apperrors.CodeForbidden)

	_, err = jobs.GetByID(alice, 99999)
	assertAppError(t, err, apperrors.CodeNotFound)
}
