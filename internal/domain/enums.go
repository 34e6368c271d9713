package domain

// Raw enum values exactly as the backend sends them. The mapper package turns
// these into display view-models; nothing here validates membership because
// upstream data is not guaranteed to match the known sets.

type ProjectStatus string

const (
	ProjectContract   ProjectStatus = "CONTRACT"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

type NodeStatus string

const (
	NodeNotStarted NodeStatus = "NOT_STARTED"
	NodeInProgress NodeStatus = "IN_PROGRESS"
	NodeReview     NodeStatus = "REVIEW"
	NodeCompleted  NodeStatus = "COMPLETED"
)

type ConfirmStatus string

const (
	ConfirmApproved ConfirmStatus = "APPROVED"
	ConfirmRejected ConfirmStatus = "REJECTED"
	ConfirmPending  ConfirmStatus = "PENDING"
)

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleDeveloper UserRole = "DEVELOPER"
	RoleClient    UserRole = "CLIENT"
)

type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "ACTIVE"
	CompanyInactive  CompanyStatus = "INACTIVE"
	CompanySuspended CompanyStatus = "SUSPENDED"
)

type HistoryEventType string

const (
	EventProjectCreated    HistoryEventType = "PROJECT_CREATED"
	EventNodeCreated       HistoryEventType = "NODE_CREATED"
	EventNodeStatusChanged HistoryEventType = "NODE_STATUS_CHANGED"
	EventNodeReordered     HistoryEventType = "NODE_REORDERED"
	EventApprovalRequested HistoryEventType = "APPROVAL_REQUESTED"
	EventApprovalDecided   HistoryEventType = "APPROVAL_DECIDED"
	EventCommentAdded      HistoryEventType = "COMMENT_ADDED"
)

// ProjectStatuses lists the known project statuses in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectContract, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled,
}

// NodeStatuses lists the known node statuses in workflow order.
var NodeStatuses = []NodeStatus{
	NodeNotStarted, NodeInProgress, NodeReview, NodeCompleted,
}
