package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository is the note store. Every read and write that addresses a single
// note filters by id and owner together; there is intentionally no way to
// look a note up by id alone.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Note, error)
	GetByIDAndOwner(ctx context.Context, id int64, ownerID int64) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64, ownerID int64) error
}
