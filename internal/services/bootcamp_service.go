package services

import (
	"context"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/bootcamp"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/person"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/technology"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/enrich"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

// BootcampService orchestrates bootcamp operations across the remote
// Bootcamp and Person services, the local capability store, and the report
// write-behind.
type BootcampService interface {
	// Create validates the referenced capabilities locally, creates the
	// bootcamp remotely, kicks off the report snapshot, and returns the
	// bootcamp with its capabilities resolved.
	Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)

	// List pages bootcamps from the remote service and resolves each one's
	// capabilities and technologies.
	List(ctx context.Context, page, size int, sortBy, direction string) (*domain.Page[*domain.Bootcamp], error)

	// Delete runs the deletion saga for the bootcamp.
	Delete(ctx context.Context, id int64) error

	// Enroll registers a person remotely and bumps the report counter.
	Enroll(ctx context.Context, personID, bootcampID int64) error

	// Top returns the most-enrolled bootcamp, capabilities resolved.
	Top(ctx context.Context) (*domain.Bootcamp, error)
}

type bootcampService struct {
	bootcamps   bootcamp.Client
	persons     person.Client
	techs       technology.Client
	caps        CapabilityService
	saga        BootcampDeletionSaga
	reports     ReportService
	log         *logger.Logger
	concurrency int
}

func NewBootcampService(
	bootcamps bootcamp.Client,
	persons person.Client,
	techs technology.Client,
	caps CapabilityService,
	saga BootcampDeletionSaga,
	reports ReportService,
	concurrency int,
	baseLog *logger.Logger,
) BootcampService {
	if concurrency <= 0 {
		concurrency = enrich.DefaultConcurrency
	}
	return &bootcampService{
		bootcamps:   bootcamps,
		persons:     persons,
		techs:       techs,
		caps:        caps,
		saga:        saga,
		reports:     reports,
		log:         baseLog.With("service", "BootcampService"),
		concurrency: concurrency,
	}
}

func (s *bootcampService) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	found, err := s.caps.GetByIDs(ctx, b.CapabilityIDs)
	if err != nil {
		return nil, err
	}
	if missing := firstMissing(b.CapabilityIDs, found); missing != 0 {
		return nil, &domain.CapabilityNotFoundError{ID: missing}
	}

	created, err := s.bootcamps.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	if len(created.CapabilityIDs) == 0 {
		created.CapabilityIDs = b.CapabilityIDs
	}
	s.log.Info("bootcamp created", "bootcamp_id", created.ID)

	s.reports.SnapshotForBootcamp(created)

	resolved, err := s.resolveCapabilities(ctx, created.CapabilityIDs)
	if err != nil {
		return nil, err
	}
	created.Capabilities = resolved
	return created, nil
}

func (s *bootcampService) List(ctx context.Context, page, size int, sortBy, direction string) (*domain.Page[*domain.Bootcamp], error) {
	result, err := s.bootcamps.List(ctx, page, size, sortBy, direction)
	if err != nil {
		return nil, err
	}

	enriched, err := enrich.Resolve(ctx, s.concurrency, result.Content,
		func(b *domain.Bootcamp) []int64 { return b.CapabilityIDs },
		s.resolveCapabilities,
		func(b *domain.Bootcamp, caps []*domain.Capability) *domain.Bootcamp {
			b.Capabilities = caps
			return b
		})
	if err != nil {
		return nil, err
	}

	result.Content = enriched
	return result, nil
}

func (s *bootcampService) Delete(ctx context.Context, id int64) error {
	return s.saga.Execute(ctx, id)
}

func (s *bootcampService) Enroll(ctx context.Context, personID, bootcampID int64) error {
	if err := s.persons.Enroll(ctx, personID, bootcampID); err != nil {
		return err
	}
	s.reports.RecordEnrollment(bootcampID)
	return nil
}

func (s *bootcampService) Top(ctx context.Context) (*domain.Bootcamp, error) {
	top, err := s.bootcamps.Top(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := s.resolveCapabilities(ctx, top.CapabilityIDs)
	if err != nil {
		return nil, err
	}
	top.Capabilities = resolved
	return top, nil
}

// resolveCapabilities loads local capabilities and fills in their
// technologies from the Technology service.
func (s *bootcampService) resolveCapabilities(ctx context.Context, ids []int64) ([]*domain.Capability, error) {
	rows, err := s.caps.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return enrich.Resolve(ctx, s.concurrency, rows,
		func(c *domain.Capability) []int64 { return c.TechnologyIDs },
		s.techs.GetByIDs,
		func(c *domain.Capability, techs []*domain.Technology) *domain.Capability {
			c.Technologies = make([]domain.Technology, 0, len(techs))
			for _, t := range techs {
				c.Technologies = append(c.Technologies, *t)
			}
			return c
		})
}

func firstMissing(want []int64, got []*domain.Capability) int64 {
	present := make(map[int64]struct{}, len(got))
	for _, c := range got {
		present[c.ID] = struct{}{}
	}
	for _, id := range want {
		if _, ok := present[id]; !ok {
			return id
		}
	}
	return 0
}
