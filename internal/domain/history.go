package domain

import "time"

// HistoryEvent is a single entry of a project's activity log.
type HistoryEvent struct {
	ID          int64
	ProjectID   int64
	ProjectName string
	NodeID      *int64
	NodeTitle   string
	Type        HistoryEventType
	ActorID     int64
	ActorName   string
	Message     string
	CreatedAt   time.Time
}
