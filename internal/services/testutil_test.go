package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jobdesk/jobdesk-be/internal/database"
	"github.com/jobdesk/jobdesk-be/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newUserService(t *testing.T) (*UserService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(db, NewEventService(db)), db
}

func newJobService(t *testing.T) (*JobService, *UserService) {
	t.Helper()
	db := newTestDB(t)
	events := NewEventService(db)
	return NewJobService(db, events), NewUserService(db, events)
}

func registerUser(t *testing.T, users *UserService, email string) models.User {
	t.Helper()
	user, err := users.Register(email, "secret1")
	require.NoError(t, err)
	return user
}

func sampleFields() models.JobFields {
	return models.JobFields{
		Title:       "Backend Engineer",
		Description: "Build and run the API",
		Category:    "Engineering",
		JobType:     "Full-time",
		Location:    "Remote",
		Salary:      "100k",
	}
}
