package models

import "time"

// Job represents a single job posting. Every job is owned by exactly one
// user; only the owner may update or delete it.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	JobType     string    `json:"job_type"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobFields holds the client-writable fields of a job posting. The owner is
// never taken from the client; it always comes from the authenticated
// identity.
type JobFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	JobType     string `json:"job_type"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
}
