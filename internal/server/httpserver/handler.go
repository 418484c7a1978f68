package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

// User-facing messages. Several distinct failure causes deliberately share
// one message (bad password vs unknown user, missing vs foreign note) so
// the API cannot be used as an existence oracle.
const (
	msgUserCreated      = "User created successfully."
	msgUsernameRequired = "Username is required."
	msgPasswordRequired = "Password is required."
	msgUsernameExists   = "Username already exists."
	msgBadCredentials   = "Bad username or password."
	msgMissingToken     = "Missing or invalid token."
	msgTitleRequired    = "Title is required."
	msgNoteNotFound     = "Note not found."
	msgNoteDeleted      = "Note deleted."
	msgInvalidBody      = "Invalid request body."
	msgInternalError    = "An unexpected internal server error occurred."
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps domain errors onto HTTP responses.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrUsernameRequired):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgUsernameRequired})
	case errors.Is(err, common.ErrPasswordRequired):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgPasswordRequired})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgUsernameExists})
	case errors.Is(err, common.ErrTitleRequired):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgTitleRequired})
	case errors.Is(err, common.ErrorUnauthorized):
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: msgBadCredentials})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: msgNoteNotFound})
	default:
		s.logger.Error(r.Context(), err.Error(), "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgInternalError})
	}
}

func (s *HTTPServer) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	authed := chain(http.HandlerFunc(s.serveNotes), s.withAuth())
	mux.Handle("POST /api/notes", authed)
	mux.Handle("GET /api/notes", authed)
	mux.Handle("GET /api/notes/{id}", authed)
	mux.Handle("PUT /api/notes/{id}", authed)
	mux.Handle("DELETE /api/notes/{id}", authed)
}

// serveNotes dispatches the already-authenticated note requests.
func (s *HTTPServer) serveNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: msgMissingToken})
		return
	}

	if r.PathValue("id") == "" {
		switch r.Method {
		case http.MethodPost:
			s.handleCreateNote(w, r, ownerID)
		default:
			s.handleListNotes(w, r, ownerID)
		}
		return
	}

	// A non-numeric id cannot name a note; answer exactly like a missing one.
	noteID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || noteID <= 0 {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: msgNoteNotFound})
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetNote(w, r, ownerID, noteID)
	case http.MethodPut:
		s.handleUpdateNote(w, r, ownerID, noteID)
	case http.MethodDelete:
		s.handleDeleteNote(w, r, ownerID, noteID)
	}
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, messageResponse{Message: msgUserCreated})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

func (s *HTTPServer) handleCreateNote(w http.ResponseWriter, r *http.Request, ownerID int64) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	note, err := s.notes.Create(r.Context(), ownerID, req.Title, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, noteToResponse(note))
}

func (s *HTTPServer) handleListNotes(w http.ResponseWriter, r *http.Request, ownerID int64) {
	notes, err := s.notes.List(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		result = append(result, noteToResponse(n))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleGetNote(w http.ResponseWriter, r *http.Request, ownerID, noteID int64) {
	note, err := s.notes.Get(r.Context(), ownerID, noteID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

func (s *HTTPServer) handleUpdateNote(w http.ResponseWriter, r *http.Request, ownerID, noteID int64) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	note, err := s.notes.Update(r.Context(), ownerID, noteID, services.NoteUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

func (s *HTTPServer) handleDeleteNote(w http.ResponseWriter, r *http.Request, ownerID, noteID int64) {
	if err := s.notes.Delete(r.Context(), ownerID, noteID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msgNoteDeleted})
}
