package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/testutil"
)

var historyBase = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func historyEvents() []domain.HistoryEvent {
	return []domain.HistoryEvent{
		{ID: 1, ProjectID: 1, ProjectName: "Bluefin", Type: domain.EventProjectCreated, ActorName: "Ana Admin", Message: "created", CreatedAt: historyBase},
		{ID: 2, ProjectID: 1, ProjectName: "Bluefin", NodeTitle: "Design", Type: domain.EventNodeCreated, ActorName: "Ben Dev", Message: "step added", CreatedAt: historyBase.Add(time.Hour)},
		{ID: 3, ProjectID: 2, ProjectName: "Orbit", Type: domain.EventCommentAdded, ActorName: "Cleo Client", Message: "looks good", CreatedAt: historyBase.AddDate(0, 0, 1)},
		{ID: 4, ProjectID: 1, ProjectName: "Bluefin", Type: "SOMETHING_NEW", ActorName: "Ben Dev", Message: "mystery", CreatedAt: historyBase.Add(time.Hour)},
	}
}

func rowIDs(rows []HistoryRow) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Event.ID
	}
	return out
}

func TestBuildHistoryView_NewestFirst(t *testing.T) {
	rows := BuildHistoryView(historyEvents(), HistoryFilter{})
	assert.Equal(t, []int64{3, 4, 2, 1}, rowIDs(rows))
	assert.Equal(t, mapper.CategoryOther, rows[1].View.Category)
	assert.Equal(t, "Activity", rows[1].View.Label)
	assert.Equal(t, mapper.CategoryComment, rows[0].View.Category)
}

func TestHistoryFilter_Match(t *testing.T) {
	day2 := historyBase.AddDate(0, 0, 1)
	tests := []struct {
		name   string
		filter HistoryFilter
		want   []int64
	}{
		{"project", HistoryFilter{ProjectID: 2}, []int64{3}},
		{"types", HistoryFilter{Types: []domain.HistoryEventType{"node_created", domain.EventProjectCreated}}, []int64{2, 1}},
		{"actor", HistoryFilter{ActorQuery: "ben"}, []int64{4, 2}},
		{"query matches node title", HistoryFilter{Query: "design"}, []int64{2}},
		{"query matches project name", HistoryFilter{Query: "orbit"}, []int64{3}},
		{"to is inclusive of the whole day", HistoryFilter{To: &historyBase}, []int64{4, 2, 1}},
		{"from", HistoryFilter{From: &day2}, []int64{3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rowIDs(BuildHistoryView(historyEvents(), tc.filter)))
		})
	}
}

func TestHistoryFilter_ValidateRange(t *testing.T) {
	from := historyBase
	to := historyBase.AddDate(0, 0, -1)
	err := HistoryFilter{From: &from, To: &to}.Validate()
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Fields, "to")

	assert.NoError(t, HistoryFilter{From: &to, To: &from}.Validate())
	assert.NoError(t, HistoryFilter{}.Validate())
}

func TestHistoryService_List(t *testing.T) {
	fake := testutil.NewFakeBackend()
	for _, e := range historyEvents() {
		fake.AddEvent(e)
	}
	svc := NewHistoryService(fake.Repos().History)

	rows, err := svc.List(context.Background(), HistoryFilter{ProjectID: 1, ActorQuery: "ana"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, rowIDs(rows))
}

func TestHistoryService_InvalidFilterSkipsFetch(t *testing.T) {
	fake := testutil.NewFakeBackend()
	svc := NewHistoryService(fake.Repos().History)
	from, to := historyBase, historyBase.AddDate(0, -1, 0)

	_, err := svc.List(context.Background(), HistoryFilter{From: &from, To: &to})
	require.Error(t, err)
	assert.Zero(t, fake.Calls("history.List"))
}

func TestHistoryService_BackendError(t *testing.T) {
	fake := testutil.NewFakeBackend()
	fake.FailOn("history.List", errors.New("gateway timeout"))
	_, err := NewHistoryService(fake.Repos().History).List(context.Background(), HistoryFilter{})
	assert.EqualError(t, err, "gateway timeout")
}
