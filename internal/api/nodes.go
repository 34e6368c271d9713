package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/logging"
)

// NodesAPI implements repository.NodeRepo over REST.
type NodesAPI struct {
	c *Client
}

type createNodeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

type nodeOrderEntry struct {
	ProjectNodeID int64 `json:"projectNodeId"`
	NodeOrder     int   `json:"nodeOrder"`
}

type updateOrderRequest struct {
	Orders []nodeOrderEntry `json:"orders"`
}

func (a *NodesAPI) ListByProject(ctx context.Context, projectID int64) ([]domain.Node, error) {
	ctx = logging.WithProjectID(ctx, projectID)
	var dtos []nodeDTO
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/nodes", projectID), nil, nil, &dtos); err != nil {
		return nil, err
	}
	nodes := make([]domain.Node, 0, len(dtos))
	for _, d := range dtos {
		n := d.toDomain()
		if n.ProjectID == 0 {
			n.ProjectID = projectID
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (a *NodesAPI) Create(ctx context.Context, n *domain.Node) error {
	req := createNodeRequest{
		Title:       n.Title,
		Description: n.Description,
		Deadline:    formatDatePtr(n.Deadline),
	}
	ctx = logging.WithProjectID(ctx, n.ProjectID)
	var dto nodeDTO
	if err := a.c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/nodes", n.ProjectID), nil, req, &dto); err != nil {
		return err
	}
	localID, projectID := n.ID, n.ProjectID
	*n = dto.toDomain()
	if localID != "" {
		n.ID = localID
	}
	if n.ProjectID == 0 {
		n.ProjectID = projectID
	}
	return nil
}

// UpdateOrder sends the full order of the project's nodes.
func (a *NodesAPI) UpdateOrder(ctx context.Context, projectID int64, orders []domain.NodeOrder) error {
	req := updateOrderRequest{Orders: make([]nodeOrderEntry, len(orders))}
	for i, o := range orders {
		req.Orders[i] = nodeOrderEntry{ProjectNodeID: o.ProjectNodeID, NodeOrder: o.NodeOrder}
	}
	ctx = logging.WithProjectID(ctx, projectID)
	return a.c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d/nodes/order", projectID), nil, req, nil)
}
