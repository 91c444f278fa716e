package events

import (
	"time"

	"github.com/rs/zerolog"
)

// EventType represents different event types
type EventType string

const (
	HoldingAdded      EventType = "HOLDING_ADDED"
	AnalysisCompleted EventType = "ANALYSIS_COMPLETED"
	DataFetchFailed   EventType = "DATA_FETCH_FAILED"
	CacheSwept        EventType = "CACHE_SWEPT"
	ErrorOccurred     EventType = "ERROR_OCCURRED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Manager handles event emission and logging
type Manager struct {
	log zerolog.Logger
}

// NewManager creates a new event manager
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log: log.With().Str("service", "events").Logger(),
	}
}

// Emit records a domain event in the structured log
func (m *Manager) Emit(module string, eventType EventType, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
		Module:    module,
	}

	m.log.Info().
		Str("event", string(event.Type)).
		Str("module", event.Module).
		Fields(event.Data).
		Msg("Event emitted")
}
