package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jobdesk/jobdesk-be/internal/apperr"
	"github.com/jobdesk/jobdesk-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides registration and credential verification.
type UserService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, events EventServiceProvider) *UserService {
	return &UserService{db: db, events: events}
}

// GetUserByID retrieves a single user by their ID. The password hash is
// never loaded on this path.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return models.User{}, apperr.Wrap(apperr.CodeStore, "failed to load user", err)
	}
	return user, nil
}

// getUserByEmail retrieves a single user by their email, including the
// password hash. Used only by Authenticate.
func (s *UserService) getUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return models.User{}, apperr.Wrap(apperr.CodeStore, "failed to load user", err)
	}
	return user, nil
}

// Register creates a new user with a bcrypt-hashed password. A taken email
// fails with duplicate_email. The raw password is never stored or returned.
func (s *UserService) Register(email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, apperr.Validation("a valid email is required")
	}
	if password == "" {
		return models.User{}, apperr.Validation("a password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.CodeStore, "failed to hash password", err)
	}

	user := models.User{
		ID:    uuid.New().String(),
		Email: email,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, email, password_hash) VALUES(?, ?, ?)")
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.CodeStore, "failed to prepare statement", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Email, string(hashedPassword))
	if err != nil {
		// The users.email UNIQUE constraint is the source of truth for
		// duplicates; no pre-check, so concurrent registrations cannot race
		// past it.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, apperr.New(apperr.CodeDuplicateEmail, "email is already registered")
		}
		return models.User{}, apperr.Wrap(apperr.CodeStore, "failed to create user", err)
	}

	s.events.Record("user.register", "info", "user registered: "+user.Email, &user.ID)
	return s.GetUserByID(user.ID)
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password fail identically, so responses never reveal whether an email
// is registered.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return models.User{}, apperr.New(apperr.CodeInvalidCredentials, "invalid credentials")
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperr.New(apperr.CodeInvalidCredentials, "invalid credentials")
	}

	s.events.Record("user.login", "info", "user logged in: "+user.Email, &user.ID)

	// Don't hand the password hash back to callers
	user.PasswordHash = ""
	return user, nil
}
