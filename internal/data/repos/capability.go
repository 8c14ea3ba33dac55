package repos

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type CapabilityRepo interface {
	// Save persists the capability row and its technology relation rows as one
	// transaction. The returned entity carries the relation ids.
	Save(ctx context.Context, tx *gorm.DB, row *domain.Capability, technologyIDs []int64) (*domain.Capability, error)

	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Capability, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*domain.Capability, error)
	List(ctx context.Context, tx *gorm.DB, page, size int, sortBy, direction string) (*domain.Page[*domain.Capability], error)

	ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	CountByTechnologyID(ctx context.Context, tx *gorm.DB, technologyID int64) (int64, error)

	TechnologyIDsByCapabilityID(ctx context.Context, tx *gorm.DB, capabilityID int64) ([]int64, error)
	TechnologyIDsByCapabilityIDs(ctx context.Context, tx *gorm.DB, capabilityIDs []int64) (map[int64][]int64, error)

	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error
}

type capabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCapabilityRepo(db *gorm.DB, baseLog *logger.Logger) CapabilityRepo {
	return &capabilityRepo{db: db, log: baseLog.With("repo", "CapabilityRepo")}
}

// Columns callers may sort the capability list by.
var capabilitySortColumns = map[string]string{
	"name":       "name",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

func (r *capabilityRepo) Save(ctx context.Context, tx *gorm.DB, row *domain.Capability, technologyIDs []int64) (*domain.Capability, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := t.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		if err := txx.Create(row).Error; err != nil {
			return err
		}
		relations := make([]*domain.CapabilityTechnology, 0, len(technologyIDs))
		for _, techID := range technologyIDs {
			relations = append(relations, &domain.CapabilityTechnology{
				CapabilityID: row.ID,
				TechnologyID: techID,
			})
		}
		if len(relations) == 0 {
			return nil
		}
		return txx.Create(&relations).Error
	})
	if err != nil {
		return nil, err
	}
	row.TechnologyIDs = technologyIDs
	return row, nil
}

func (r *capabilityRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Capability, error) {
	if id == 0 {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *capabilityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*domain.Capability, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Capability
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityRepo) List(ctx context.Context, tx *gorm.DB, page, size int, sortBy, direction string) (*domain.Page[*domain.Capability], error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	column, ok := capabilitySortColumns[sortBy]
	if !ok {
		column = "name"
	}
	order := column + " ASC"
	if strings.EqualFold(direction, "DESC") {
		order = column + " DESC"
	}

	var total int64
	if err := t.WithContext(ctx).Model(&domain.Capability{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []*domain.Capability
	if err := t.WithContext(ctx).
		Order(order).
		Offset(page * size).
		Limit(size).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return &domain.Page[*domain.Capability]{
		Content:       rows,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
	}, nil
}

func (r *capabilityRepo) ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&domain.Capability{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *capabilityRepo) CountByTechnologyID(ctx context.Context, tx *gorm.DB, technologyID int64) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&domain.CapabilityTechnology{}).
		Where("technology_id = ?", technologyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *capabilityRepo) TechnologyIDsByCapabilityID(ctx context.Context, tx *gorm.DB, capabilityID int64) ([]int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []int64
	if err := t.WithContext(ctx).
		Model(&domain.CapabilityTechnology{}).
		Where("capability_id = ?", capabilityID).
		Pluck("technology_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *capabilityRepo) TechnologyIDsByCapabilityIDs(ctx context.Context, tx *gorm.DB, capabilityIDs []int64) (map[int64][]int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := make(map[int64][]int64, len(capabilityIDs))
	if len(capabilityIDs) == 0 {
		return out, nil
	}
	var relations []*domain.CapabilityTechnology
	if err := t.WithContext(ctx).
		Where("capability_id IN ?", capabilityIDs).
		Find(&relations).Error; err != nil {
		return nil, err
	}
	for _, rel := range relations {
		out[rel.CapabilityID] = append(out[rel.CapabilityID], rel.TechnologyID)
	}
	return out, nil
}

func (r *capabilityRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == 0 {
		return nil
	}
	return t.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		if err := txx.Where("capability_id = ?", id).
			Delete(&domain.CapabilityTechnology{}).Error; err != nil {
			return err
		}
		return txx.Where("id = ?", id).
			Delete(&domain.Capability{}).Error
	})
}
