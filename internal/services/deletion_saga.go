package services

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/bootcamp"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/person"
	"github.com/Paolahz1/bootcamp-capability/internal/data/repos"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/enrich"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

// DeletionState tags the progress of a bootcamp deletion run.
type DeletionState string

const (
	StateStart                   DeletionState = "start"
	StateEnrollmentsDeleted      DeletionState = "enrollments_deleted"
	StateCapabilitiesSnapshotted DeletionState = "capabilities_snapshotted"
	StateBootcampDeleted         DeletionState = "bootcamp_deleted"
	StateCompleted               DeletionState = "completed"
	StateFailed                  DeletionState = "failed"
)

// deletionTransitions is the only legal successor of each state. StateFailed
// absorbs from anywhere; there is no backward edge and no compensation.
var deletionTransitions = map[DeletionState]DeletionState{
	StateStart:                   StateEnrollmentsDeleted,
	StateEnrollmentsDeleted:      StateCapabilitiesSnapshotted,
	StateCapabilitiesSnapshotted: StateBootcampDeleted,
	StateBootcampDeleted:         StateCompleted,
}

// BootcampDeletionSaga walks a bootcamp deletion forward across the Person
// and Bootcamp services and finishes with local orphan-capability cleanup.
// A failure at any step stops the run where it stands.
type BootcampDeletionSaga interface {
	Execute(ctx context.Context, bootcampID int64) error
}

type deletionSaga struct {
	persons     person.Client
	bootcamps   bootcamp.Client
	caps        repos.CapabilityRepo
	runs        repos.SagaRunRepo
	reports     ReportService
	log         *logger.Logger
	concurrency int
}

func NewBootcampDeletionSaga(
	persons person.Client,
	bootcamps bootcamp.Client,
	caps repos.CapabilityRepo,
	runs repos.SagaRunRepo,
	reports ReportService,
	concurrency int,
	baseLog *logger.Logger,
) BootcampDeletionSaga {
	if concurrency <= 0 {
		concurrency = enrich.DefaultConcurrency
	}
	return &deletionSaga{
		persons:     persons,
		bootcamps:   bootcamps,
		caps:        caps,
		runs:        runs,
		reports:     reports,
		log:         baseLog.With("service", "BootcampDeletionSaga"),
		concurrency: concurrency,
	}
}

func (s *deletionSaga) Execute(ctx context.Context, bootcampID int64) error {
	state := StateStart
	run := s.auditStart(ctx, bootcampID)
	log := s.log.With("bootcamp_id", bootcampID)

	if err := s.persons.DeleteEnrollmentsByBootcamp(ctx, bootcampID); err != nil {
		s.auditFail(ctx, run, state, "delete_enrollments", err)
		return err
	}
	state = s.advance(ctx, run, state)

	// Snapshot capability references before the bootcamp record disappears.
	capabilityIDs, err := s.bootcamps.CapabilityIDs(ctx, bootcampID)
	if err != nil {
		s.auditFail(ctx, run, state, "snapshot_capabilities", err)
		return err
	}
	s.auditSnapshot(ctx, run, capabilityIDs)
	state = s.advance(ctx, run, state)

	if err := s.bootcamps.Delete(ctx, bootcampID); err != nil {
		s.auditFail(ctx, run, state, "delete_bootcamp", err)
		return err
	}
	state = s.advance(ctx, run, state)

	if err := s.cleanupOrphans(ctx, capabilityIDs); err != nil {
		s.auditFail(ctx, run, state, "cleanup_orphans", err)
		return err
	}
	state = s.advance(ctx, run, state)

	log.Info("bootcamp deletion completed", "state", state, "capabilities", len(capabilityIDs))
	s.reports.DeleteForBootcamp(bootcampID)
	return nil
}

// cleanupOrphans deletes each snapshotted capability that no bootcamp
// references anymore. The first failure aborts the batch; capabilities not
// yet checked stay in place, which is acceptable because a later run of any
// deletion re-evaluates orphans from its own snapshot.
func (s *deletionSaga) cleanupOrphans(ctx context.Context, capabilityIDs []int64) error {
	if len(capabilityIDs) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, id := range capabilityIDs {
		id := id
		g.Go(func() error {
			count, err := s.bootcamps.CountByCapability(gctx, id)
			if err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
			if err := s.caps.DeleteByID(gctx, nil, id); err != nil {
				return err
			}
			s.log.Debug("orphan capability removed", "capability_id", id)
			return nil
		})
	}
	return g.Wait()
}

// advance moves the run to its successor in the transition table and records
// it. Only states with a successor may be advanced.
func (s *deletionSaga) advance(ctx context.Context, run *domain.SagaRun, from DeletionState) DeletionState {
	next, ok := deletionTransitions[from]
	if !ok {
		panic(fmt.Sprintf("no transition out of saga state %q", from))
	}
	s.auditState(ctx, run, next)
	return next
}

// Audit writes record saga progress for operators. They are best-effort; a
// failed audit write never gates a step.

func (s *deletionSaga) auditStart(ctx context.Context, bootcampID int64) *domain.SagaRun {
	run, err := s.runs.Create(ctx, nil, &domain.SagaRun{
		BootcampID: bootcampID,
		State:      string(StateStart),
	})
	if err != nil {
		s.log.Warn("saga audit create failed", "bootcamp_id", bootcampID, "error", err)
		return nil
	}
	return run
}

func (s *deletionSaga) auditState(ctx context.Context, run *domain.SagaRun, state DeletionState) {
	if run == nil {
		return
	}
	if err := s.runs.UpdateFields(ctx, nil, run.ID, map[string]any{
		"state": string(state),
	}); err != nil {
		s.log.Warn("saga audit update failed", "saga_run_id", run.ID, "error", err)
	}
}

func (s *deletionSaga) auditSnapshot(ctx context.Context, run *domain.SagaRun, capabilityIDs []int64) {
	if run == nil {
		return
	}
	raw, err := json.Marshal(capabilityIDs)
	if err != nil {
		return
	}
	if err := s.runs.UpdateFields(ctx, nil, run.ID, map[string]any{
		"capability_ids": raw,
	}); err != nil {
		s.log.Warn("saga audit snapshot failed", "saga_run_id", run.ID, "error", err)
	}
}

func (s *deletionSaga) auditFail(ctx context.Context, run *domain.SagaRun, reached DeletionState, step string, cause error) {
	s.log.Error("bootcamp deletion failed",
		"reached_state", reached, "failed_step", step, "error", cause)
	if run == nil {
		return
	}
	if err := s.runs.UpdateFields(ctx, nil, run.ID, map[string]any{
		"state":       string(StateFailed),
		"failed_step": step,
		"detail":      cause.Error(),
	}); err != nil {
		s.log.Warn("saga audit fail-write failed", "saga_run_id", run.ID, "error", err)
	}
}
