package services

import (
	"context"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/bootcamp"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/technology"
	"github.com/Paolahz1/bootcamp-capability/internal/data/repos"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/enrich"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type CapabilityService interface {
	// Create validates and persists a capability with its technology
	// relations. Validation short-circuits on the first broken rule.
	Create(ctx context.Context, name, description string, technologyIDs []int64) (*domain.Capability, error)

	// GetByID returns the capability with its technology ids attached, or a
	// *domain.CapabilityNotFoundError.
	GetByID(ctx context.Context, id int64) (*domain.Capability, error)

	// GetByIDs resolves the given ids; missing ids are silently omitted.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Capability, error)

	// List pages capabilities and resolves each one's full technologies from
	// the Technology service.
	List(ctx context.Context, page, size int, sortBy, direction string) (*domain.Page[*domain.Capability], error)

	// Delete removes a capability iff it exists and no bootcamp references it.
	Delete(ctx context.Context, id int64) error

	// CountByTechnology reports how many capabilities use a technology.
	CountByTechnology(ctx context.Context, technologyID int64) (int64, error)
}

type capabilityService struct {
	caps        repos.CapabilityRepo
	techs       technology.Client
	bootcamps   bootcamp.Client
	log         *logger.Logger
	concurrency int
}

func NewCapabilityService(
	caps repos.CapabilityRepo,
	techs technology.Client,
	bootcamps bootcamp.Client,
	concurrency int,
	baseLog *logger.Logger,
) CapabilityService {
	if concurrency <= 0 {
		concurrency = enrich.DefaultConcurrency
	}
	return &capabilityService{
		caps:        caps,
		techs:       techs,
		bootcamps:   bootcamps,
		log:         baseLog.With("service", "CapabilityService"),
		concurrency: concurrency,
	}
}

func (s *capabilityService) Create(ctx context.Context, name, description string, technologyIDs []int64) (*domain.Capability, error) {
	// A nil id list is a count failure, same as any other out-of-range size.
	if len(technologyIDs) < domain.MinTechnologiesPerCapability ||
		len(technologyIDs) > domain.MaxTechnologiesPerCapability {
		return nil, &domain.InvalidCapabilityError{Reason: domain.ReasonTechnologyCount}
	}

	seen := make(map[int64]struct{}, len(technologyIDs))
	for _, id := range technologyIDs {
		if _, dup := seen[id]; dup {
			return nil, &domain.InvalidCapabilityError{Reason: domain.ReasonDuplicateTechnologies}
		}
		seen[id] = struct{}{}
	}

	allExist, err := s.techs.ExistAll(ctx, technologyIDs)
	if err != nil {
		return nil, err
	}
	if !allExist {
		return nil, &domain.InvalidCapabilityError{Reason: domain.ReasonTechnologiesNotFound}
	}

	exists, err := s.caps.ExistsByName(ctx, nil, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.InvalidCapabilityError{Reason: domain.ReasonDuplicateName}
	}

	saved, err := s.caps.Save(ctx, nil, &domain.Capability{
		Name:        name,
		Description: description,
	}, technologyIDs)
	if err != nil {
		return nil, err
	}

	s.log.Info("capability created", "capability_id", saved.ID, "technologies", len(technologyIDs))
	return saved, nil
}

func (s *capabilityService) GetByID(ctx context.Context, id int64) (*domain.Capability, error) {
	row, err := s.caps.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &domain.CapabilityNotFoundError{ID: id}
	}
	techIDs, err := s.caps.TechnologyIDsByCapabilityID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	row.TechnologyIDs = techIDs
	return row, nil
}

func (s *capabilityService) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Capability, error) {
	rows, err := s.caps.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}
	return s.attachTechnologyIDs(ctx, rows)
}

func (s *capabilityService) List(ctx context.Context, page, size int, sortBy, direction string) (*domain.Page[*domain.Capability], error) {
	result, err := s.caps.List(ctx, nil, page, size, sortBy, direction)
	if err != nil {
		return nil, err
	}
	rows, err := s.attachTechnologyIDs(ctx, result.Content)
	if err != nil {
		return nil, err
	}

	enriched, err := enrich.Resolve(ctx, s.concurrency, rows,
		func(c *domain.Capability) []int64 { return c.TechnologyIDs },
		s.techs.GetByIDs,
		func(c *domain.Capability, techs []*domain.Technology) *domain.Capability {
			c.Technologies = make([]domain.Technology, 0, len(techs))
			for _, t := range techs {
				c.Technologies = append(c.Technologies, *t)
			}
			return c
		})
	if err != nil {
		return nil, err
	}

	result.Content = enriched
	return result, nil
}

func (s *capabilityService) Delete(ctx context.Context, id int64) error {
	row, err := s.caps.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if row == nil {
		return &domain.CapabilityNotFoundError{ID: id}
	}

	count, err := s.bootcamps.CountByCapability(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.CapabilityInUseError{ID: id, BootcampCount: count}
	}

	if err := s.caps.DeleteByID(ctx, nil, id); err != nil {
		return err
	}
	s.log.Info("capability deleted", "capability_id", id)
	return nil
}

func (s *capabilityService) CountByTechnology(ctx context.Context, technologyID int64) (int64, error) {
	return s.caps.CountByTechnologyID(ctx, nil, technologyID)
}

func (s *capabilityService) attachTechnologyIDs(ctx context.Context, rows []*domain.Capability) ([]*domain.Capability, error) {
	if len(rows) == 0 {
		return rows, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	byCapability, err := s.caps.TechnologyIDsByCapabilityIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.TechnologyIDs = byCapability[row.ID]
	}
	return rows, nil
}
