package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/Paolahz1/bootcamp-capability/internal/data/repos/testutil"
	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

func newTestRepo(t *testing.T) CapabilityRepo {
	t.Helper()
	db := testutil.DB(t)
	testutil.Reset(t, db)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewCapabilityRepo(db, log)
}

func TestCapabilityRepo_SavePersistsRelations(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, nil, &domain.Capability{
		Name:        "Backend Java",
		Description: "Server side development",
	}, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected generated id")
	}

	techIDs, err := repo.TechnologyIDsByCapabilityID(ctx, nil, saved.ID)
	if err != nil {
		t.Fatalf("technology ids: %v", err)
	}
	if len(techIDs) != 3 {
		t.Fatalf("expected 3 relations, got %d", len(techIDs))
	}
}

func TestCapabilityRepo_ExistsByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Save(ctx, nil, &domain.Capability{Name: "Data Science"}, []int64{4, 5, 6}); err != nil {
		t.Fatalf("save: %v", err)
	}

	exists, err := repo.ExistsByName(ctx, nil, "Data Science")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected name to exist")
	}
	exists, err = repo.ExistsByName(ctx, nil, "Unknown")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("expected name to be free")
	}
}

func TestCapabilityRepo_ListPagingAndSort(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("Capability %c", 'E'-i)
		if _, err := repo.Save(ctx, nil, &domain.Capability{Name: name}, []int64{1, 2, 3}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	page, err := repo.List(ctx, nil, 0, 2, "name", "ASC")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalElements != 5 {
		t.Fatalf("expected 5 total, got %d", page.TotalElements)
	}
	if len(page.Content) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page.Content))
	}
	if page.Content[0].Name != "Capability A" {
		t.Fatalf("expected ascending name sort, got %q", page.Content[0].Name)
	}

	// Unknown sort columns fall back to name instead of leaking into SQL.
	if _, err := repo.List(ctx, nil, 0, 2, "id; DROP TABLE capabilities", "ASC"); err != nil {
		t.Fatalf("list with bad sort: %v", err)
	}
}

func TestCapabilityRepo_DeleteCascadesRelations(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, nil, &domain.Capability{Name: "Mobile"}, []int64{7, 8, 9})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.DeleteByID(ctx, nil, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected capability to be gone")
	}

	count, err := repo.CountByTechnologyID(ctx, nil, 7)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected relations to be cascaded, got %d", count)
	}
}

func TestCapabilityRepo_TechnologyIDsBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.Save(ctx, nil, &domain.Capability{Name: "A"}, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := repo.Save(ctx, nil, &domain.Capability{Name: "B"}, []int64{3, 4, 5})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	byCapability, err := repo.TechnologyIDsByCapabilityIDs(ctx, nil, []int64{a.ID, b.ID})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(byCapability[a.ID]) != 3 || len(byCapability[b.ID]) != 3 {
		t.Fatalf("unexpected relation map: %#v", byCapability)
	}
}
