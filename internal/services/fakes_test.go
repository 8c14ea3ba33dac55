package services

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

func testLogger(t interface{ Fatalf(string, ...any) }) *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// fakeCapabilityRepo keeps capabilities in memory, guarded for the saga's
// concurrent orphan cleanup.
type fakeCapabilityRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Capability
	techs  map[int64][]int64

	existsByName map[string]bool
	saveErr      error
	deleteErr    error
	deleted      []int64
}

func newFakeCapabilityRepo() *fakeCapabilityRepo {
	return &fakeCapabilityRepo{
		rows:         map[int64]*domain.Capability{},
		techs:        map[int64][]int64{},
		existsByName: map[string]bool{},
	}
}

func (f *fakeCapabilityRepo) seed(id int64, name string, techIDs ...int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id] = &domain.Capability{ID: id, Name: name}
	f.techs[id] = techIDs
	f.existsByName[name] = true
}

func (f *fakeCapabilityRepo) Save(ctx context.Context, tx *gorm.DB, row *domain.Capability, technologyIDs []int64) (*domain.Capability, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	row.ID = f.nextID
	row.TechnologyIDs = technologyIDs
	f.rows[row.ID] = row
	f.techs[row.ID] = technologyIDs
	f.existsByName[row.Name] = true
	return row, nil
}

func (f *fakeCapabilityRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Capability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeCapabilityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*domain.Capability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Capability
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCapabilityRepo) List(ctx context.Context, tx *gorm.DB, page, size int, sortBy, direction string) (*domain.Page[*domain.Capability], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Capability
	for _, row := range f.rows {
		cp := *row
		out = append(out, &cp)
	}
	return &domain.Page[*domain.Capability]{
		Content:       out,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: int64(len(out)),
	}, nil
}

func (f *fakeCapabilityRepo) ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existsByName[name], nil
}

func (f *fakeCapabilityRepo) CountByTechnologyID(ctx context.Context, tx *gorm.DB, technologyID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ids := range f.techs {
		for _, id := range ids {
			if id == technologyID {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeCapabilityRepo) TechnologyIDsByCapabilityID(ctx context.Context, tx *gorm.DB, capabilityID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.techs[capabilityID], nil
}

func (f *fakeCapabilityRepo) TechnologyIDsByCapabilityIDs(ctx context.Context, tx *gorm.DB, capabilityIDs []int64) (map[int64][]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int64][]int64{}
	for _, id := range capabilityIDs {
		if ids, ok := f.techs[id]; ok {
			out[id] = ids
		}
	}
	return out, nil
}

func (f *fakeCapabilityRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	delete(f.techs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSagaRunRepo struct {
	mu      sync.Mutex
	nextID  int64
	runs    map[int64]*domain.SagaRun
	updates []map[string]any
}

func newFakeSagaRunRepo() *fakeSagaRunRepo {
	return &fakeSagaRunRepo{runs: map[int64]*domain.SagaRun{}}
}

func (f *fakeSagaRunRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.SagaRun) (*domain.SagaRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	row.ID = f.nextID
	f.runs[row.ID] = row
	return row, nil
}

func (f *fakeSagaRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fields)
	if run, ok := f.runs[id]; ok {
		if state, ok := fields["state"].(string); ok {
			run.State = state
		}
		if step, ok := fields["failed_step"].(string); ok {
			run.FailedStep = step
		}
	}
	return nil
}

func (f *fakeSagaRunRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.SagaRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs[id], nil
}

type fakeTechnologyClient struct {
	mu       sync.Mutex
	known    map[int64]*domain.Technology
	existErr error
	getErr   error
}

func newFakeTechnologyClient(ids ...int64) *fakeTechnologyClient {
	f := &fakeTechnologyClient{known: map[int64]*domain.Technology{}}
	for _, id := range ids {
		f.known[id] = &domain.Technology{ID: id, Name: "tech"}
	}
	return f
}

func (f *fakeTechnologyClient) ExistAll(ctx context.Context, ids []int64) (bool, error) {
	if f.existErr != nil {
		return false, f.existErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if _, ok := f.known[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeTechnologyClient) GetByID(ctx context.Context, id int64) (*domain.Technology, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.known[id], nil
}

func (f *fakeTechnologyClient) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Technology, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Technology
	for _, id := range ids {
		if t, ok := f.known[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeBootcampClient struct {
	mu sync.Mutex

	createFn    func(b *domain.Bootcamp) (*domain.Bootcamp, error)
	listPage    *domain.Page[*domain.Bootcamp]
	topBootcamp *domain.Bootcamp
	topErr      error

	countsByCapability map[int64]int64
	countErr           error
	countedIDs         []int64

	capabilityIDs    []int64
	capabilityIDsErr error

	deleteErr  error
	deletedIDs []int64
}

func newFakeBootcampClient() *fakeBootcampClient {
	return &fakeBootcampClient{countsByCapability: map[int64]int64{}}
}

func (f *fakeBootcampClient) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	if f.createFn != nil {
		return f.createFn(b)
	}
	cp := *b
	cp.ID = 100
	return &cp, nil
}

func (f *fakeBootcampClient) List(ctx context.Context, page, size int, sortBy, direction string) (*domain.Page[*domain.Bootcamp], error) {
	if f.listPage == nil {
		return &domain.Page[*domain.Bootcamp]{PageNumber: page, PageSize: size}, nil
	}
	return f.listPage, nil
}

func (f *fakeBootcampClient) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeBootcampClient) CountByCapability(ctx context.Context, capabilityID int64) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countedIDs = append(f.countedIDs, capabilityID)
	return f.countsByCapability[capabilityID], nil
}

func (f *fakeBootcampClient) CapabilityIDs(ctx context.Context, bootcampID int64) ([]int64, error) {
	if f.capabilityIDsErr != nil {
		return nil, f.capabilityIDsErr
	}
	return f.capabilityIDs, nil
}

func (f *fakeBootcampClient) Top(ctx context.Context) (*domain.Bootcamp, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	return f.topBootcamp, nil
}

type fakePersonClient struct {
	enrollErr       error
	enrolled        [][2]int64
	deleteErr       error
	deletedBootcamp []int64
}

func (f *fakePersonClient) Enroll(ctx context.Context, personID, bootcampID int64) error {
	if f.enrollErr != nil {
		return f.enrollErr
	}
	f.enrolled = append(f.enrolled, [2]int64{personID, bootcampID})
	return nil
}

func (f *fakePersonClient) DeleteEnrollmentsByBootcamp(ctx context.Context, bootcampID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedBootcamp = append(f.deletedBootcamp, bootcampID)
	return nil
}

type fakeReportStore struct {
	mu      sync.Mutex
	reports map[int64]*domain.BootcampReport
	saveErr error
	getErr  error
	deleted []int64
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: map[int64]*domain.BootcampReport{}}
}

func (f *fakeReportStore) Save(ctx context.Context, report *domain.BootcampReport) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *report
	f.reports[report.BootcampID] = &cp
	return nil
}

func (f *fakeReportStore) GetByBootcampID(ctx context.Context, bootcampID int64) (*domain.BootcampReport, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[bootcampID]
	if !ok {
		return nil, nil
	}
	cp := *report
	return &cp, nil
}

func (f *fakeReportStore) DeleteByBootcampID(ctx context.Context, bootcampID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reports, bootcampID)
	f.deleted = append(f.deleted, bootcampID)
	return nil
}

func (f *fakeReportStore) get(bootcampID int64) *domain.BootcampReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reports[bootcampID]
}

// noopReports satisfies ReportService for tests that do not care about the
// write-behind.
type noopReports struct{}

func (noopReports) SnapshotForBootcamp(*domain.Bootcamp) {}
func (noopReports) RecordEnrollment(int64)               {}
func (noopReports) DeleteForBootcamp(int64)              {}
func (noopReports) Flush()                               {}
