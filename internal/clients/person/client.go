// Package person talks to the remote Person service, which owns enrollments.
package person

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/httpx"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type Client interface {
	// Enroll registers a person into a bootcamp.
	Enroll(ctx context.Context, personID, bootcampID int64) error

	// DeleteEnrollmentsByBootcamp removes every enrollment of a bootcamp.
	// Deleting a bootcamp with no enrollments is a no-op remotely.
	DeleteEnrollmentsByBootcamp(ctx context.Context, bootcampID int64) error
}

type client struct {
	httpx *httpx.Client
	log   *logger.Logger
}

func New(cfg httpx.Config, baseLog *logger.Logger) (Client, error) {
	hc, err := httpx.New("person", cfg, baseLog)
	if err != nil {
		return nil, err
	}
	return &client{httpx: hc, log: baseLog.With("client", "PersonClient")}, nil
}

type enrollRequest struct {
	PersonID   int64 `json:"personId"`
	BootcampID int64 `json:"bootcampId"`
}

func (c *client) Enroll(ctx context.Context, personID, bootcampID int64) error {
	_, err := c.httpx.DoJSON(ctx, http.MethodPost, "/api/enrollments",
		enrollRequest{PersonID: personID, BootcampID: bootcampID}, nil)
	return err
}

func (c *client) DeleteEnrollmentsByBootcamp(ctx context.Context, bootcampID int64) error {
	_, err := c.httpx.DoJSON(ctx, http.MethodDelete,
		fmt.Sprintf("/api/enrollments/bootcamp/%d", bootcampID), nil, nil)
	return err
}
