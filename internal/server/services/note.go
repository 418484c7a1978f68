// This file implements NoteService: owner-scoped CRUD over the note store.
// Every operation takes an ownerID that the transport layer has already
// verified; no operation can reach a note outside that owner.
package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
)

// NoteUpdate is the partial-update input for Update. A nil field was absent
// from the request and leaves the stored value unchanged; a pointer to an
// empty content string clears the content.
type NoteUpdate struct {
	Title   *string
	Content *string
}

// NoteService orchestrates note CRUD on behalf of an authenticated owner.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService using repositories and server config.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, _ *config.Config) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Create stores a new note owned by ownerID. Title is required; content is
// optional. The owner is always the verified caller, regardless of anything
// the request payload claimed.
func (s *NoteService) Create(ctx context.Context, ownerID int64, title, content string) (*models.Note, error) {
	if title == "" {
		return nil, common.ErrTitleRequired
	}

	repo := s.repomanager.Notes(s.db)
	return repo.Create(ctx, &models.Note{OwnerID: ownerID, Title: title, Content: content})
}

// List returns all notes of ownerID in creation order.
func (s *NoteService) List(ctx context.Context, ownerID int64) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	return repo.ListByOwner(ctx, ownerID)
}

// Get returns the note identified by {noteID, ownerID}. A note belonging to
// another user is indistinguishable from a nonexistent one: both are
// common.ErrorNotFound.
func (s *NoteService) Get(ctx context.Context, ownerID int64, noteID int64) (*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	return repo.GetByIDAndOwner(ctx, noteID, ownerID)
}

// Update applies a partial update to the note identified by {noteID,
// ownerID}. The read and the write run in one transaction so no partial
// state is ever observable. Fields absent from upd stay unchanged; a present
// empty title is a validation error.
func (s *NoteService) Update(ctx context.Context, ownerID int64, noteID int64, upd NoteUpdate) (*models.Note, error) {
	if upd.Title != nil && *upd.Title == "" {
		return nil, common.ErrTitleRequired
	}

	var note *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		var err error
		note, err = repo.GetByIDAndOwner(ctx, noteID, ownerID)
		if err != nil {
			return err
		}
		if upd.Title != nil {
			note.Title = *upd.Title
		}
		if upd.Content != nil {
			note.Content = *upd.Content
		}
		return repo.Update(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes the note identified by {noteID, ownerID}. Deleting an
// already-deleted note returns common.ErrorNotFound.
func (s *NoteService) Delete(ctx context.Context, ownerID int64, noteID int64) error {
	repo := s.repomanager.Notes(s.db)
	return repo.Delete(ctx, noteID, ownerID)
}
