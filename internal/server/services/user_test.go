package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	notesrepo "github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	lastCreated *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.lastCreated = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRepoManager struct {
	u usersrepo.Repository
	n notesrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository      { return m.n }

// --- Register ---

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	u, err := s.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID != 1 || u.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if repo.lastCreated.PasswordHash == "pw1" || repo.lastCreated.PasswordHash == "" {
		t.Fatal("password must be stored hashed, never in plaintext")
	}
	if !auth.CheckPassword("pw1", repo.lastCreated.PasswordHash) {
		t.Fatal("stored hash must verify against the original password")
	}
}

func TestRegister_EmptyUsernameCheckedFirst(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	// Username precedence holds even when the password is missing too.
	_, err := s.Register(context.Background(), "", "")
	if !errors.Is(err, common.ErrUsernameRequired) {
		t.Fatalf("want common.ErrUsernameRequired, got %v", err)
	}
}

func TestRegister_EmptyPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	_, err := s.Register(context.Background(), "alice", "")
	if !errors.Is(err, common.ErrPasswordRequired) {
		t.Fatalf("want common.ErrPasswordRequired, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getOut: &models.User{ID: 1, UserName: "alice"}}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.Register(context.Background(), "alice", "pw2")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
	if repo.lastCreated != nil {
		t.Fatal("Create must not run for a duplicate username")
	}
}

func TestRegister_CreateRaceDuplicate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getErr: common.ErrorNotFound, createErr: common.ErrorAlreadyExists}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.Register(context.Background(), "alice", "pw1")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_LookupInternalError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getErr: errors.New("db down")}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.Register(context.Background(), "alice", "pw1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

// --- Login ---

func registeredUser(t *testing.T, id int64, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &models.User{ID: id, UserName: username, PasswordHash: hash}
}

func TestLogin_Success_TokenAssertsUserID(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getOut: registeredUser(t, 42, "alice", "pw1")}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	token, err := s.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("token asserts user %d, want 42", userID)
	}
}

func TestLogin_WrongPasswordAndUnknownUserAreIdentical(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	withUser := &fakeUsersRepo{getOut: registeredUser(t, 1, "alice", "pw1")}
	s1 := newUserService(t, db, &fakeRepoManager{u: withUser})
	_, errWrongPassword := s1.Login(context.Background(), "alice", "nope")

	withoutUser := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s2 := newUserService(t, db, &fakeRepoManager{u: withoutUser})
	_, errUnknownUser := s2.Login(context.Background(), "ghost", "pw1")

	if !errors.Is(errWrongPassword, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: want common.ErrorUnauthorized, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, common.ErrorUnauthorized) {
		t.Fatalf("unknown user: want common.ErrorUnauthorized, got %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatal("wrong-password and unknown-user errors must be indistinguishable")
	}
}

func TestLogin_LookupInternalError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getErr: errors.New("db down")}
	s := newUserService(t, db, &fakeRepoManager{u: repo})

	_, err := s.Login(context.Background(), "alice", "pw1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}
