package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jobdesk/jobdesk-be/internal/apperr"
	"github.com/jobdesk/jobdesk-be/internal/models"
)

// MaxDescriptionLen bounds job descriptions, matching the column width of
// the original schema.
const MaxDescriptionLen = 1000

// JobServiceProvider defines the interface for job posting services.
type JobServiceProvider interface {
	ListOwned(ownerID string) ([]models.Job, error)
	ListAll() ([]models.Job, error)
	Create(ownerID string, fields models.JobFields) (models.Job, error)
	GetByID(id string) (models.Job, error)
	Update(ownerID, id string, fields models.JobFields) (models.Job, error)
	Delete(ownerID, id string) error
}

// JobService provides business logic for job posting management.
type JobService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewJobService creates a new JobService.
func NewJobService(db *sql.DB, events EventServiceProvider) *JobService {
	return &JobService{db: db, events: events}
}

const jobColumns = "id, title, description, category, job_type, location, salary, owner_id, created_at"

// scanJob is a helper to scan a job from a row or rows object.
func scanJob(scanner interface{ Scan(...interface{}) error }) (models.Job, error) {
	var job models.Job
	err := scanner.Scan(
		&job.ID, &job.Title, &job.Description, &job.Category,
		&job.JobType, &job.Location, &job.Salary, &job.OwnerID, &job.CreatedAt,
	)
	return job, err
}

func (s *JobService) queryJobs(query string, args ...interface{}) ([]models.Job, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStore, "failed to query jobs", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeStore, "failed to scan job", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ListOwned returns the jobs owned by the given user, in insertion order.
func (s *JobService) ListOwned(ownerID string) ([]models.Job, error) {
	return s.queryJobs("SELECT "+jobColumns+" FROM jobs WHERE owner_id = ? ORDER BY created_at, rowid", ownerID)
}

// ListAll returns every job regardless of owner, in insertion order. This
// listing is intentionally public for browse/discovery.
func (s *JobService) ListAll() ([]models.Job, error) {
	return s.queryJobs("SELECT " + jobColumns + " FROM jobs ORDER BY created_at, rowid")
}

// GetByID retrieves a single job by its ID. Reads are not owner-gated;
// ownership gates mutation only.
func (s *JobService) GetByID(id string) (models.Job, error) {
	row := s.db.QueryRow("SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Job{}, apperr.New(apperr.CodeNotFound, "job not found")
		}
		return models.Job{}, apperr.Wrap(apperr.CodeStore, "failed to load job", err)
	}
	return job, nil
}

func validateJobFields(fields models.JobFields) error {
	required := map[string]string{
		"title":       fields.Title,
		"description": fields.Description,
		"category":    fields.Category,
		"job_type":    fields.JobType,
		"location":    fields.Location,
		"salary":      fields.Salary,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return apperr.Validation(name + " is required")
		}
	}
	if len(fields.Description) > MaxDescriptionLen {
		return apperr.Validation("description is too long")
	}
	return nil
}

// Create adds a new job posting. The owner is always the authenticated
// user; any owner value supplied by the client is ignored.
func (s *JobService) Create(ownerID string, fields models.JobFields) (models.Job, error) {
	if err := validateJobFields(fields); err != nil {
		return models.Job{}, err
	}

	id := uuid.New().String()
	stmt, err := s.db.Prepare(`
		INSERT INTO jobs(id, title, description, category, job_type, location, salary, owner_id)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Job{}, apperr.Wrap(apperr.CodeStore, "failed to prepare statement", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(id, fields.Title, fields.Description, fields.Category,
		fields.JobType, fields.Location, fields.Salary, ownerID)
	if err != nil {
		return models.Job{}, apperr.Wrap(apperr.CodeStore, "failed to create job", err)
	}

	s.events.Record("job.create", "info", "job created: "+fields.Title, &ownerID)
	return s.GetByID(id)
}

// Update overwrites the mutable fields of a job owned by ownerID. The write
// is a single conditional statement keyed on both id and owner, so a
// concurrent delete cannot slip between an ownership check and the
// mutation. Zero rows affected is classified afterwards: not_found if the
// job is gone, forbidden if it belongs to someone else.
func (s *JobService) Update(ownerID, id string, fields models.JobFields) (models.Job, error) {
	if err := validateJobFields(fields); err != nil {
		return models.Job{}, err
	}

	res, err := s.db.Exec(`
		UPDATE jobs SET title = ?, description = ?, category = ?, job_type = ?, location = ?, salary = ?
		WHERE id = ? AND owner_id = ?`,
		fields.Title, fields.Description, fields.Category, fields.JobType,
		fields.Location, fields.Salary, id, ownerID)
	if err != nil {
		return models.Job{}, apperr.Wrap(apperr.CodeStore, "failed to update job", err)
	}

	if err := s.classifyNoEffect(res, id); err != nil {
		return models.Job{}, err
	}

	s.events.Record("job.update", "info", "job updated: "+fields.Title, &ownerID)
	return s.GetByID(id)
}

// Delete removes a job owned by ownerID, with the same conditional-write
// ownership enforcement as Update. Deleting an already-deleted job yields
// not_found.
func (s *JobService) Delete(ownerID, id string) error {
	res, err := s.db.Exec("DELETE FROM jobs WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return apperr.Wrap(apperr.CodeStore, "failed to delete job", err)
	}

	if err := s.classifyNoEffect(res, id); err != nil {
		return err
	}

	s.events.Record("job.delete", "info", "job deleted: "+id, &ownerID)
	return nil
}

// classifyNoEffect turns a zero-row conditional write into not_found or
// forbidden by re-reading the job.
func (s *JobService) classifyNoEffect(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.CodeStore, "failed to read affected rows", err)
	}
	if affected > 0 {
		return nil
	}
	if _, err := s.GetByID(id); err != nil {
		return err // not_found or a store failure
	}
	return apperr.New(apperr.CodeForbidden, "not the owner of this job")
}
