package bootcamp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/httpx"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(t *testing.T, roundTrip roundTripFunc) *client {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := New(httpx.Config{BaseURL: "http://bootcamp.local"}, log)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	impl := c.(*client)
	impl.httpx.SetTransport(roundTrip)
	return impl
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestCreate_SendsPayloadAndDecodes(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bootcamps" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Name != "Go Bootcamp" || len(req.CapabilityIDs) != 2 {
			t.Fatalf("unexpected payload: %+v", req)
		}
		return jsonResponse(201, `{"id":7,"name":"Go Bootcamp","capabilityIds":[1,2]}`), nil
	})

	created, err := c.Create(context.Background(), &domain.Bootcamp{
		Name:          "Go Bootcamp",
		CapabilityIDs: []int64{1, 2},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected remote id, got %d", created.ID)
	}
}

func TestList_QueriesPageParams(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "5" || q.Get("sortBy") != "name" || q.Get("direction") != "DESC" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		return jsonResponse(200, `{"content":[{"id":1}],"pageNumber":2,"pageSize":5,"totalElements":11}`), nil
	})

	page, err := c.List(context.Background(), 2, 5, "name", "DESC")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalElements != 11 || len(page.Content) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestCountByCapability(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/bootcamps/count-by-capability/4" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		return jsonResponse(200, `{"count":3}`), nil
	})

	count, err := c.CountByCapability(context.Background(), 4)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}
}

func TestTop_NotFoundBecomesDomainError(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(404, ``), nil
	})

	_, err := c.Top(context.Background())
	var notFound *domain.BootcampNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected bootcamp not-found, got %v", err)
	}
}

func TestDelete_FailureWraps(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(500, `boom`), nil
	})

	err := c.Delete(context.Background(), 7)
	var extErr *domain.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected external service error, got %v", err)
	}
	if extErr.Service != "bootcamp" {
		t.Fatalf("unexpected service tag %q", extErr.Service)
	}
}

func TestCapabilityIDs(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/bootcamps/7/capabilities" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		return jsonResponse(200, `[1,2,3]`), nil
	})

	ids, err := c.CapabilityIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("capability ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %v", ids)
	}
}
