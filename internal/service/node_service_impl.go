package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/reorder"
	"github.com/alexanderramin/workhub/internal/repository"
)

type nodeService struct {
	nodes    repository.NodeRepo
	observer UseCaseObserver
}

func NewNodeService(nodes repository.NodeRepo, observers ...UseCaseObserver) NodeService {
	return &nodeService{nodes: nodes, observer: useCaseObserverOrNoop(observers)}
}

func (s *nodeService) List(ctx context.Context, projectID int64) ([]domain.Node, error) {
	nodes, err := s.nodes.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return reorder.SortByOrder(nodes), nil
}

func (s *nodeService) Add(ctx context.Context, form *CreateNodeForm) (n *domain.Node, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": form.ProjectID}
	defer func() { observe(ctx, s.observer, "add-node", startedAt, fields, &err) }()

	if err := form.Validate(); err != nil {
		return nil, err
	}
	n = form.ToDomain()
	if err := s.nodes.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("adding node to project %d: %w", form.ProjectID, err)
	}
	fields["node_order"] = n.NodeOrder
	return n, nil
}

// Board returns a board loaded with the project's current order.
func (s *nodeService) Board(ctx context.Context, projectID int64, opts reorder.BoardOptions) (*reorder.Board, error) {
	b := reorder.NewBoard(projectID, nil, s.nodes, opts)
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Move performs a single reorder with 1-based positions and waits for the
// sync to settle.
func (s *nodeService) Move(ctx context.Context, projectID int64, from, to int) (res *MoveResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "from": from, "to": to}
	defer func() { observe(ctx, s.observer, "move-node", startedAt, fields, &err) }()

	res = &MoveResult{}
	b, err := s.Board(ctx, projectID, reorder.BoardOptions{
		OnSettled: func(r reorder.SyncResult) {
			res.Sync = r
			res.Sent = true
		},
	})
	if err != nil {
		return nil, err
	}
	if n := len(b.Nodes()); from < 1 || from > n || to < 1 || to > n {
		return nil, fmt.Errorf("moving step %d to %d: positions run 1 to %d: %w", from, to, n, reorder.ErrIndexOutOfRange)
	}
	b.ToggleMode()
	if _, err := b.Drop(ctx, from-1, to-1); err != nil {
		return nil, err
	}
	b.Wait()
	res.Nodes = b.Nodes()
	if res.Sync.Err != nil {
		return res, fmt.Errorf("syncing node order: %w", res.Sync.Err)
	}
	return res, nil
}
