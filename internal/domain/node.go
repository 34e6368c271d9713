package domain

import "time"

// Node is a workflow step within a project.
type Node struct {
	// ID is a client-local identity used while reordering; it is never sent
	// to the backend.
	ID            string
	ProjectNodeID int64
	ProjectID     int64
	Title         string
	Description   string
	Status        NodeStatus
	ConfirmStatus *string // nullable, raw backend value
	NodeOrder     int
	Deadline      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NodeOrder is one entry of the order update payload.
type NodeOrder struct {
	ProjectNodeID int64
	NodeOrder     int
}
