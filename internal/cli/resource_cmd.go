package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/service"
)

// resourceMsg tells the view owning res that a fetch finished. Views read
// res.Snapshot() on receipt, so a late reply from an older fetch never shows
// stale data.
type resourceMsg[T any] struct {
	res *service.Resource[T]
}

// mountResource runs the resource's initial fetch off the update loop.
func mountResource[T any](res *service.Resource[T]) tea.Cmd {
	return func() tea.Msg {
		res.Mount(context.Background())
		return resourceMsg[T]{res: res}
	}
}

// refetchResource reloads the resource off the update loop.
func refetchResource[T any](res *service.Resource[T]) tea.Cmd {
	return func() tea.Msg {
		res.Refetch(context.Background())
		return resourceMsg[T]{res: res}
	}
}

func (resourceMsg[T]) resourceReply() {}
