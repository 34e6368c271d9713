package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/repository"
)

// HistoryFilter narrows the activity log. Zero fields match everything.
type HistoryFilter struct {
	ProjectID int64
	Types     []domain.HistoryEventType
	// ActorQuery is a case-insensitive substring of the actor name.
	ActorQuery string
	// From and To bound CreatedAt inclusively. To is a date: the whole day
	// is included.
	From *time.Time
	To   *time.Time
	// Query is a case-insensitive substring of message, node title or
	// project name.
	Query string
}

func (f HistoryFilter) Validate() error {
	fe := &FormError{}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		fe.add("to", "must not be before from")
	}
	if f.ProjectID < 0 {
		fe.add("projectId", "must be positive")
	}
	return fe.orNil()
}

// Match reports whether e passes every set criterion.
func (f HistoryFilter) Match(e domain.HistoryEvent) bool {
	if f.ProjectID != 0 && e.ProjectID != f.ProjectID {
		return false
	}
	if len(f.Types) > 0 && !slices.ContainsFunc(f.Types, func(t domain.HistoryEventType) bool {
		return strings.EqualFold(string(t), string(e.Type))
	}) {
		return false
	}
	if q := strings.TrimSpace(f.ActorQuery); q != "" && !containsFold(e.ActorName, q) {
		return false
	}
	if f.From != nil && e.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.CreatedAt.Before(endOfDay(*f.To)) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" &&
		!containsFold(e.Message, q) && !containsFold(e.NodeTitle, q) && !containsFold(e.ProjectName, q) {
		return false
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// HistoryRow is one rendered entry of the history view.
type HistoryRow struct {
	Event domain.HistoryEvent
	View  mapper.EventView
}

// BuildHistoryView filters events and orders them newest first. Events with
// equal timestamps are ordered by descending ID.
func BuildHistoryView(events []domain.HistoryEvent, f HistoryFilter) []HistoryRow {
	rows := make([]HistoryRow, 0, len(events))
	for _, e := range events {
		if f.Match(e) {
			rows = append(rows, HistoryRow{Event: e, View: mapper.HistoryEventType(e.Type)})
		}
	}
	slices.SortStableFunc(rows, func(a, b HistoryRow) int {
		if c := b.Event.CreatedAt.Compare(a.Event.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.Event.ID > b.Event.ID:
			return -1
		case a.Event.ID < b.Event.ID:
			return 1
		}
		return 0
	})
	return rows
}

// NewHistoryResource loads the events of f.ProjectID (all projects when 0)
// and applies f.
func NewHistoryResource(history repository.HistoryRepo, f HistoryFilter) *Resource[[]HistoryRow] {
	return NewResource(func(ctx context.Context) ([]HistoryRow, error) {
		events, err := history.List(ctx, f.ProjectID)
		if err != nil {
			return nil, err
		}
		return BuildHistoryView(events, f), nil
	})
}

type historyService struct {
	history  repository.HistoryRepo
	observer UseCaseObserver
}

func NewHistoryService(history repository.HistoryRepo, observers ...UseCaseObserver) HistoryService {
	return &historyService{history: history, observer: useCaseObserverOrNoop(observers)}
}

func (s *historyService) List(ctx context.Context, f HistoryFilter) (rows []HistoryRow, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": f.ProjectID}
	defer func() { observe(ctx, s.observer, "list-history", startedAt, fields, &err) }()

	if err := f.Validate(); err != nil {
		return nil, err
	}
	rows, err = NewHistoryResource(s.history, f).fetch(ctx)
	fields["rows"] = len(rows)
	return rows, err
}
