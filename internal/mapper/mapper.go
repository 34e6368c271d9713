// Package mapper translates raw backend enums into display view-models.
//
// Every mapper is total: input outside the known set maps to a fixed default
// and never produces an error, because upstream data is not guaranteed to
// match the enums exhaustively.
package mapper

import (
	"strings"

	"github.com/alexanderramin/workhub/internal/domain"
)

// Tone is the closed set of visual emphasis levels a view-model can carry.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// StatusView is the UI-facing form of a project or node status.
type StatusView struct {
	Key   string // stable camelCase key, e.g. "inProgress"
	Label string
	Tone  Tone
}

// normalize upper-cases and trims a raw enum value so "in_progress " matches.
func normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

var projectStatusViews = map[domain.ProjectStatus]StatusView{
	domain.ProjectContract:   {Key: "contract", Label: "Contract", Tone: ToneInfo},
	domain.ProjectInProgress: {Key: "inProgress", Label: "In Progress", Tone: ToneSuccess},
	domain.ProjectCompleted:  {Key: "completed", Label: "Completed", Tone: ToneNeutral},
	domain.ProjectOnHold:     {Key: "onHold", Label: "On Hold", Tone: ToneWarning},
	domain.ProjectCancelled:  {Key: "cancelled", Label: "Cancelled", Tone: ToneDanger},
}

// ProjectStatus maps a project status. Unknown values show as in progress.
func ProjectStatus(raw domain.ProjectStatus) StatusView {
	if v, ok := projectStatusViews[domain.ProjectStatus(normalize(string(raw)))]; ok {
		return v
	}
	return projectStatusViews[domain.ProjectInProgress]
}

var nodeStatusViews = map[domain.NodeStatus]StatusView{
	domain.NodeNotStarted: {Key: "notStarted", Label: "Not Started", Tone: ToneNeutral},
	domain.NodeInProgress: {Key: "inProgress", Label: "In Progress", Tone: ToneInfo},
	domain.NodeReview:     {Key: "review", Label: "In Review", Tone: ToneWarning},
	domain.NodeCompleted:  {Key: "completed", Label: "Completed", Tone: ToneSuccess},
}

// NodeStatus maps a node status. Unknown values show as not started.
func NodeStatus(raw domain.NodeStatus) StatusView {
	if v, ok := nodeStatusViews[domain.NodeStatus(normalize(string(raw)))]; ok {
		return v
	}
	return nodeStatusViews[domain.NodeNotStarted]
}

// ConfirmView is the UI-facing form of a node's approval state.
type ConfirmView struct {
	Status domain.ConfirmStatus
	Label  string
	Tone   Tone
}

// ConfirmStatus maps a nullable approval status. nil, blank and unknown
// values all yield nil: the node simply has no approval state to show.
func ConfirmStatus(raw *string) *ConfirmView {
	if raw == nil {
		return nil
	}
	switch domain.ConfirmStatus(normalize(*raw)) {
	case domain.ConfirmApproved:
		return &ConfirmView{Status: domain.ConfirmApproved, Label: "Approved", Tone: ToneSuccess}
	case domain.ConfirmRejected:
		return &ConfirmView{Status: domain.ConfirmRejected, Label: "Rejected", Tone: ToneDanger}
	case domain.ConfirmPending:
		return &ConfirmView{Status: domain.ConfirmPending, Label: "Awaiting Approval", Tone: ToneWarning}
	}
	return nil
}

// RoleView is the UI-facing form of an admin user's role.
type RoleView struct {
	Role  domain.UserRole
	Label string
}

// AdminUserRole maps a backend role, accepting both "ADMIN" and the
// Spring-style "ROLE_ADMIN" spelling. Unknown roles fall back to client, the
// least privileged role.
func AdminUserRole(raw domain.UserRole) RoleView {
	r := strings.TrimPrefix(normalize(string(raw)), "ROLE_")
	switch domain.UserRole(r) {
	case domain.RoleAdmin:
		return RoleView{Role: domain.RoleAdmin, Label: "Administrator"}
	case domain.RoleDeveloper:
		return RoleView{Role: domain.RoleDeveloper, Label: "Developer"}
	}
	return RoleView{Role: domain.RoleClient, Label: "Client"}
}

// CompanyStatus canonicalizes a company status. Unknown values are ACTIVE.
func CompanyStatus(raw domain.CompanyStatus) domain.CompanyStatus {
	switch s := domain.CompanyStatus(normalize(string(raw))); s {
	case domain.CompanyActive, domain.CompanyInactive, domain.CompanySuspended:
		return s
	}
	return domain.CompanyActive
}

// CompanyStatusLabel returns the display label of a (possibly unknown) status.
func CompanyStatusLabel(raw domain.CompanyStatus) string {
	switch CompanyStatus(raw) {
	case domain.CompanyInactive:
		return "Inactive"
	case domain.CompanySuspended:
		return "Suspended"
	default:
		return "Active"
	}
}
