package httpserver

import (
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// credentialsRequest is the body of POST /api/auth/register and
// POST /api/auth/login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// createNoteRequest is the body of POST /api/notes. Only title and content
// are ever mapped onto the entity; owner and id supplied by a client are
// not representable here at all.
type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updateNoteRequest is the body of PUT /api/notes/{id}. Pointer fields
// distinguish "key absent" (nil, leave unchanged) from "key present with an
// empty value".
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int64     `json:"owner_id"`
}

func noteToResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		OwnerID:   n.OwnerID,
	}
}
