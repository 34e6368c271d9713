package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/workhub/internal/domain"
)

// Wire types mirror the backend's camelCase JSON. Timestamps arrive as
// strings in more than one layout, so they are parsed by parseTime.

type memberDTO struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

type projectDTO struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CompanyID   int64       `json:"companyId"`
	CompanyName string      `json:"companyName"`
	Status      string      `json:"status"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Developers  []memberDTO `json:"developers"`
	Clients     []memberDTO `json:"clients"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

type projectPageDTO struct {
	Projects   []projectDTO    `json:"projects"`
	NextCursor json.RawMessage `json:"nextCursor"`
	HasNext    bool            `json:"hasNext"`
}

type nodeDTO struct {
	ProjectNodeID int64   `json:"projectNodeId"`
	ProjectID     int64   `json:"projectId"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	NodeStatus    string  `json:"nodeStatus"`
	ConfirmStatus *string `json:"confirmStatus"`
	NodeOrder     int     `json:"nodeOrder"`
	Deadline      string  `json:"deadline"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type adminUserDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	CompanyID   *int64 `json:"companyId"`
	CompanyName string `json:"companyName"`
	CreatedAt   string `json:"createdAt"`
}

type companyDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	BusinessNumber string `json:"businessNumber"`
	CEOName        string `json:"ceoName"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

type historyDTO struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"projectId"`
	ProjectName string `json:"projectName"`
	NodeID      *int64 `json:"nodeId"`
	NodeTitle   string `json:"nodeTitle"`
	Type        string `json:"type"`
	ActorID     int64  `json:"actorId"`
	ActorName   string `json:"actorName"`
	Message     string `json:"message"`
	CreatedAt   string `json:"createdAt"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTimePtr(s string) *time.Time {
	t := parseTime(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// cursorString accepts a cursor encoded as a JSON string, number or null.
func cursorString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func toMembers(in []memberDTO) []domain.Member {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Member, len(in))
	for i, m := range in {
		out[i] = domain.Member{UserID: m.UserID, Name: m.Name}
	}
	return out
}

func (d projectDTO) toDomain() domain.Project {
	return domain.Project{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CompanyID:   d.CompanyID,
		CompanyName: d.CompanyName,
		Status:      domain.ProjectStatus(d.Status),
		StartDate:   parseTime(d.StartDate),
		EndDate:     parseTimePtr(d.EndDate),
		Developers:  toMembers(d.Developers),
		Clients:     toMembers(d.Clients),
		CreatedAt:   parseTime(d.CreatedAt),
		UpdatedAt:   parseTime(d.UpdatedAt),
	}
}

// toDomain assigns a fresh client-local ID; the backend never sees it.
func (d nodeDTO) toDomain() domain.Node {
	return domain.Node{
		ID:            uuid.NewString(),
		ProjectNodeID: d.ProjectNodeID,
		ProjectID:     d.ProjectID,
		Title:         d.Title,
		Description:   d.Description,
		Status:        domain.NodeStatus(domain.CoalesceStr(d.Status, d.NodeStatus)),
		ConfirmStatus: d.ConfirmStatus,
		NodeOrder:     d.NodeOrder,
		Deadline:      parseTimePtr(d.Deadline),
		CreatedAt:     parseTime(d.CreatedAt),
		UpdatedAt:     parseTime(d.UpdatedAt),
	}
}

func (d adminUserDTO) toDomain() domain.AdminUser {
	return domain.AdminUser{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Role:        domain.UserRole(d.Role),
		CompanyID:   d.CompanyID,
		CompanyName: d.CompanyName,
		CreatedAt:   parseTime(d.CreatedAt),
	}
}

func (d companyDTO) toDomain() domain.Company {
	return domain.Company{
		ID:             d.ID,
		Name:           d.Name,
		BusinessNumber: d.BusinessNumber,
		CEOName:        d.CEOName,
		Address:        d.Address,
		Phone:          d.Phone,
		Email:          d.Email,
		Status:         domain.CompanyStatus(d.Status),
		CreatedAt:      parseTime(d.CreatedAt),
	}
}

func (d historyDTO) toDomain() domain.HistoryEvent {
	return domain.HistoryEvent{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		NodeID:      d.NodeID,
		NodeTitle:   d.NodeTitle,
		Type:        domain.HistoryEventType(d.Type),
		ActorID:     d.ActorID,
		ActorName:   d.ActorName,
		Message:     d.Message,
		CreatedAt:   parseTime(d.CreatedAt),
	}
}
