package mapper

import "github.com/alexanderramin/workhub/internal/domain"

// EventCategory groups history events for filtering chips.
type EventCategory string

const (
	CategoryProject  EventCategory = "project"
	CategoryNode     EventCategory = "node"
	CategoryApproval EventCategory = "approval"
	CategoryComment  EventCategory = "comment"
	CategoryOther    EventCategory = "other"
)

// EventView is the UI-facing form of a history event type.
type EventView struct {
	Category EventCategory
	Label    string
	Icon     string
}

var eventViews = map[domain.HistoryEventType]EventView{
	domain.EventProjectCreated:    {Category: CategoryProject, Label: "Project created", Icon: "◆"},
	domain.EventNodeCreated:       {Category: CategoryNode, Label: "Step added", Icon: "+"},
	domain.EventNodeStatusChanged: {Category: CategoryNode, Label: "Step status changed", Icon: "●"},
	domain.EventNodeReordered:     {Category: CategoryNode, Label: "Steps reordered", Icon: "↕"},
	domain.EventApprovalRequested: {Category: CategoryApproval, Label: "Approval requested", Icon: "?"},
	domain.EventApprovalDecided:   {Category: CategoryApproval, Label: "Approval decided", Icon: "✔"},
	domain.EventCommentAdded:      {Category: CategoryComment, Label: "Comment", Icon: "✎"},
}

// HistoryEventType maps an event type. Unknown types are generic activity.
func HistoryEventType(raw domain.HistoryEventType) EventView {
	if v, ok := eventViews[domain.HistoryEventType(normalize(string(raw)))]; ok {
		return v
	}
	return EventView{Category: CategoryOther, Label: "Activity", Icon: "·"}
}
