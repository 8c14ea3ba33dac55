// Package technology talks to the remote Technology service. Lookups are
// lenient: a technology that no longer exists is reported as absent, not as a
// failure.
package technology

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/httpx"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type Client interface {
	// ExistAll reports whether every id exists remotely.
	ExistAll(ctx context.Context, ids []int64) (bool, error)
	// GetByID returns (nil, nil) when the technology does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Technology, error)
	// GetByIDs resolves ids with bounded fan-out; missing ids are omitted.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Technology, error)
}

type client struct {
	httpx       *httpx.Client
	log         *logger.Logger
	concurrency int
}

func New(cfg httpx.Config, concurrency int, baseLog *logger.Logger) (Client, error) {
	hc, err := httpx.New("technology", cfg, baseLog)
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = 5
	}
	return &client{
		httpx:       hc,
		log:         baseLog.With("client", "TechnologyClient"),
		concurrency: concurrency,
	}, nil
}

type validateRequest struct {
	TechnologyIDs []int64 `json:"technologyIds"`
}

type validateResponse struct {
	AllExist bool `json:"allExist"`
}

func (c *client) ExistAll(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var out validateResponse
	if _, err := c.httpx.DoJSON(ctx, http.MethodPost, "/api/technologies/validate",
		validateRequest{TechnologyIDs: ids}, &out); err != nil {
		return false, err
	}
	return out.AllExist, nil
}

func (c *client) GetByID(ctx context.Context, id int64) (*domain.Technology, error) {
	var out domain.Technology
	status, err := c.httpx.DoJSON(ctx, http.MethodGet,
		fmt.Sprintf("/api/technologies/%d", id), nil, &out)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Technology, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var (
		mu  sync.Mutex
		out []*domain.Technology
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			tech, err := c.GetByID(gctx, id)
			if err != nil {
				return err
			}
			if tech == nil {
				return nil
			}
			mu.Lock()
			out = append(out, tech)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
