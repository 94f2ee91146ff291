package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jobdesk/jobdesk-be/internal/apperr"
	"github.com/jobdesk/jobdesk-be/internal/models"
	"github.com/rs/zerolog/log"
)

// EventServiceProvider defines the interface for activity event services.
type EventServiceProvider interface {
	Record(eventType, level, message string, actorID *string)
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records activity events for the job board.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// Record logs a new activity event. Event writes are best-effort: a failure
// is logged and must never fail the request that triggered it.
func (s *EventService) Record(eventType, level, message string, actorID *string) {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		ActorID: actorID,
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, type, level, message, actor_id) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.ActorID,
	)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("Failed to record event")
	}
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, actor_id, created_at FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStore, "failed to query events", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.ActorID, &event.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.CodeStore, "failed to scan event", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
