package services

import (
	"testing"

	"github.com/jobdesk/jobdesk-be/internal/apperr"
	"github.com/jobdesk/jobdesk-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_SetsOwner(t *testing.T) {
	jobs, users := newJobService(t)
	alice := registerUser(t, users, "alice@example.com")

	job, err := jobs.Create(alice.ID, sampleFields())
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, alice.ID, job.OwnerID)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestCreate_Validation(t *testing.T) {
	jobs, users := newJobService(t)
	alice := registerUser(t, users, "alice@example.com")

	missingTitle := sampleFields()
	missingTitle.Title = "  "
	_, err := jobs.Create(alice.ID, missingTitle)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	longDesc := sampleFields()
	for len(longDesc.Description) <= MaxDescriptionLen {
		longDesc.Description += longDesc.Description
	}
	_, err = jobs.Create(alice.ID, longDesc)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestGetByID_NotFound(t *testing.T) {
	jobs, _ := newJobService(t)

	_, err := jobs.GetByID("no-such-id")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUpdate(t *testing.T) {
	jobs, users := newJobService(t)
	alice := registerUser(t, users, "alice@example.com")
	bob := registerUser(t, users, "bob@example.com")

	job, err := jobs.Create(alice.ID, sampleFields())
	require.NoError(t, err)

	changed := sampleFields()
	changed.Title = "Staff Engineer"
	changed.Salary = "150k"

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := jobs.Update(bob.ID, job.ID, changed)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.CodeForbidden))

		unchanged, err := jobs.GetByID(job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", unchanged.Title)
	})

	t.Run("owner succeeds", func(t *testing.T) {
		updated, err := jobs.Update(alice.ID, job.ID, changed)
		require.NoError(t, err)
		assert.Equal(t, "Staff Engineer", updated.Title)
		assert.Equal(t, "150k", updated.Salary)
		assert.Equal(t, alice.ID, updated.OwnerID)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := jobs.Update(alice.ID, "no-such-id", changed)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	})
}

func TestDelete(t *testing.T) {
	jobs, users := newJobService(t)
	alice := registerUser(t, users, "alice@example.com")
	bob := registerUser(t, users, "bob@example.com")

	job, err := jobs.Create(alice.ID, sampleFields())
	require.NoError(t, err)

	err = jobs.Delete(bob.ID, job.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	require.NoError(t, jobs.Delete(alice.ID, job.ID))

	// A second delete finds nothing: not idempotent on purpose.
	err = jobs.Delete(alice.ID, job.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListAll_And_ListOwned(t *testing.T) {
	jobs, users := newJobService(t)
	alice := registerUser(t, users, "alice@example.com")
	bob := registerUser(t, users, "bob@example.com")

	titles := []struct {
		owner string
		title string
	}{
		{alice.ID, "First"},
		{bob.ID, "Second"},
		{alice.ID, "Third"},
	}
	for _, tt := range titles {
		fields := sampleFields()
		fields.Title = tt.title
		_, err := jobs.Create(tt.owner, fields)
		require.NoError(t, err)
	}

	all, err := jobs.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Insertion order is stable.
	assert.Equal(t, "First", all[0].Title)
	assert.Equal(t, "Second", all[1].Title)
	assert.Equal(t, "Third", all[2].Title)

	aliceJobs, err := jobs.ListOwned(alice.ID)
	require.NoError(t, err)
	bobJobs, err := jobs.ListOwned(bob.ID)
	require.NoError(t, err)

	require.Len(t, aliceJobs, 2)
	require.Len(t, bobJobs, 1)

	// Every job appears in exactly one owner's list.
	seen := map[string]int{}
	for _, job := range append(aliceJobs, bobJobs...) {
		seen[job.ID]++
	}
	assert.Len(t, seen, 3)
	for id, n := range seen {
		assert.Equal(t, 1, n, "job %s appears in more than one owned list", id)
	}

	for _, job := range aliceJobs {
		assert.Equal(t, alice.ID, job.OwnerID)
	}
}

func TestEvents_RecordedForJobActivity(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	users := NewUserService(db, events)
	jobs := NewJobService(db, events)

	alice := registerUser(t, users, "alice@example.com")
	job, err := jobs.Create(alice.ID, sampleFields())
	require.NoError(t, err)
	require.NoError(t, jobs.Delete(alice.ID, job.ID))

	recent, err := events.GetRecentEvents(10)
	require.NoError(t, err)

	var types []string
	for _, ev := range recent {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, "user.register")
	assert.Contains(t, types, "job.create")
	assert.Contains(t, types, "job.delete")

	var ev models.Event
	for _, e := range recent {
		if e.Type == "job.create" {
			ev = e
		}
	}
	require.NotNil(t, ev.ActorID)
	assert.Equal(t, alice.ID, *ev.ActorID)
}
