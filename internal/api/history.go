package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexanderramin/workhub/internal/domain"
)

// HistoryAPI implements repository.HistoryRepo over REST.
type HistoryAPI struct {
	c *Client
}

func (a *HistoryAPI) List(ctx context.Context, projectID int64) ([]domain.HistoryEvent, error) {
	var q url.Values
	if projectID != 0 {
		q = url.Values{"projectId": {strconv.FormatInt(projectID, 10)}}
	}
	var dtos []historyDTO
	if err := a.c.do(ctx, http.MethodGet, "/histories", q, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.HistoryEvent, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}
