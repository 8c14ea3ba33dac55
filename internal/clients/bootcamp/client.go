// Package bootcamp talks to the remote Bootcamp service, the system of record
// for bootcamps and their capability references.
package bootcamp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/httpx"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type Client interface {
	Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	List(ctx context.Context, page, size int, sortBy, direction string) (*domain.Page[*domain.Bootcamp], error)
	Delete(ctx context.Context, id int64) error

	// CountByCapability returns how many bootcamps still reference the
	// capability.
	CountByCapability(ctx context.Context, capabilityID int64) (int64, error)

	// CapabilityIDs snapshots the capability references of a bootcamp.
	CapabilityIDs(ctx context.Context, bootcampID int64) ([]int64, error)

	// Top returns the bootcamp with the most enrollments, or
	// *domain.BootcampNotFoundError when the remote has none.
	Top(ctx context.Context) (*domain.Bootcamp, error)
}

type client struct {
	httpx *httpx.Client
	log   *logger.Logger
}

func New(cfg httpx.Config, baseLog *logger.Logger) (Client, error) {
	hc, err := httpx.New("bootcamp", cfg, baseLog)
	if err != nil {
		return nil, err
	}
	return &client{httpx: hc, log: baseLog.With("client", "BootcampClient")}, nil
}

type createRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	CapabilityIDs []int64 `json:"capabilityIds"`
}

func (c *client) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	var out domain.Bootcamp
	if _, err := c.httpx.DoJSON(ctx, http.MethodPost, "/api/bootcamps", createRequest{
		Name:          b.Name,
		Description:   b.Description,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		CapabilityIDs: b.CapabilityIDs,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) List(ctx context.Context, page, size int, sortBy, direction string) (*domain.Page[*domain.Bootcamp], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	q.Set("sortBy", sortBy)
	q.Set("direction", direction)

	var out domain.Page[*domain.Bootcamp]
	if _, err := c.httpx.DoJSON(ctx, http.MethodGet, "/api/bootcamps?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Delete(ctx context.Context, id int64) error {
	_, err := c.httpx.DoJSON(ctx, http.MethodDelete,
		fmt.Sprintf("/api/bootcamps/%d", id), nil, nil)
	return err
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (c *client) CountByCapability(ctx context.Context, capabilityID int64) (int64, error) {
	var out countResponse
	if _, err := c.httpx.DoJSON(ctx, http.MethodGet,
		fmt.Sprintf("/api/bootcamps/count-by-capability/%d", capabilityID), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *client) CapabilityIDs(ctx context.Context, bootcampID int64) ([]int64, error) {
	var out []int64
	if _, err := c.httpx.DoJSON(ctx, http.MethodGet,
		fmt.Sprintf("/api/bootcamps/%d/capabilities", bootcampID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Top(ctx context.Context) (*domain.Bootcamp, error) {
	var out domain.Bootcamp
	status, err := c.httpx.DoJSON(ctx, http.MethodGet, "/api/bootcamps/top", nil, &out)
	if status == http.StatusNotFound {
		return nil, &domain.BootcampNotFoundError{}
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
