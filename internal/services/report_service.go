package services

import (
	"context"
	"sync"
	"time"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/reportstore"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/technology"
	"github.com/Paolahz1/bootcamp-capability/internal/data/repos"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/enrich"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

const defaultWriteTimeout = 15 * time.Second

// ReportService maintains the denormalized bootcamp report documents. Every
// method detaches from the caller: work runs on a background context with its
// own timeout, failures are logged and dropped, and the primary operation
// never waits on them.
type ReportService interface {
	// SnapshotForBootcamp builds and stores the report for a freshly created
	// bootcamp, with enrollmentCount starting at zero.
	SnapshotForBootcamp(b *domain.Bootcamp)

	// RecordEnrollment bumps the report's enrollment counter.
	RecordEnrollment(bootcampID int64)

	// DeleteForBootcamp drops the report after the bootcamp is gone.
	DeleteForBootcamp(bootcampID int64)

	// Flush blocks until all in-flight background writes settle.
	Flush()
}

type reportService struct {
	store       reportstore.Store
	caps        repos.CapabilityRepo
	techs       technology.Client
	log         *logger.Logger
	concurrency int
	timeout     time.Duration

	bg sync.WaitGroup
}

func NewReportService(
	store reportstore.Store,
	caps repos.CapabilityRepo,
	techs technology.Client,
	concurrency int,
	timeout time.Duration,
	baseLog *logger.Logger,
) ReportService {
	if concurrency <= 0 {
		concurrency = enrich.DefaultConcurrency
	}
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &reportService{
		store:       store,
		caps:        caps,
		techs:       techs,
		log:         baseLog.With("service", "ReportService"),
		concurrency: concurrency,
		timeout:     timeout,
	}
}

func (s *reportService) SnapshotForBootcamp(b *domain.Bootcamp) {
	snapshot := *b
	s.detach(func(ctx context.Context) {
		if err := s.snapshot(ctx, &snapshot); err != nil {
			s.log.Warn("report snapshot failed", "bootcamp_id", snapshot.ID, "error", err)
		}
	})
}

func (s *reportService) RecordEnrollment(bootcampID int64) {
	s.detach(func(ctx context.Context) {
		if err := s.recordEnrollment(ctx, bootcampID); err != nil {
			s.log.Warn("report enrollment update failed", "bootcamp_id", bootcampID, "error", err)
		}
	})
}

func (s *reportService) DeleteForBootcamp(bootcampID int64) {
	s.detach(func(ctx context.Context) {
		if err := s.store.DeleteByBootcampID(ctx, bootcampID); err != nil {
			s.log.Warn("report delete failed", "bootcamp_id", bootcampID, "error", err)
		}
	})
}

func (s *reportService) Flush() { s.bg.Wait() }

// detach runs fn on a fresh context so a cancelled request cannot abort the
// write-behind work it triggered.
func (s *reportService) detach(fn func(ctx context.Context)) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *reportService) snapshot(ctx context.Context, b *domain.Bootcamp) error {
	caps, err := s.caps.GetByIDs(ctx, nil, b.CapabilityIDs)
	if err != nil {
		return err
	}
	idsByCapability, err := s.caps.TechnologyIDsByCapabilityIDs(ctx, nil, b.CapabilityIDs)
	if err != nil {
		return err
	}
	for _, c := range caps {
		c.TechnologyIDs = idsByCapability[c.ID]
	}

	resolved, err := enrich.Resolve(ctx, s.concurrency, caps,
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
		return err
	}

	now := time.Now().UTC()
	report := &domain.BootcampReport{
		BootcampID:  b.ID,
		Name:        b.Name,
		Description: b.Description,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Sum of per-capability technology counts; a technology shared by two
	// capabilities counts twice.
	technologyCount := 0
	for _, c := range resolved {
		snap := domain.CapabilitySnapshot{
			ID:           c.ID,
			Name:         c.Name,
			Description:  c.Description,
			Technologies: c.Technologies,
		}
		report.Capabilities = append(report.Capabilities, snap)
		technologyCount += len(c.Technologies)
	}
	report.CapacityCount = len(report.Capabilities)
	report.TechnologyCount = technologyCount

	return s.store.Save(ctx, report)
}

// recordEnrollment is a plain read-modify-write; concurrent enrollments may
// race and lose an increment. The report is advisory data, not a ledger.
func (s *reportService) recordEnrollment(ctx context.Context, bootcampID int64) error {
	report, err := s.store.GetByBootcampID(ctx, bootcampID)
	if err != nil {
		return err
	}
	if report == nil {
		s.log.Warn("no report to update for enrollment", "bootcamp_id", bootcampID)
		return nil
	}
	report.EnrollmentCount++
	report.UpdatedAt = time.Now().UTC()
	return s.store.Save(ctx, report)
}
