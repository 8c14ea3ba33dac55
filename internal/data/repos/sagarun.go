package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type SagaRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.SagaRun) (*domain.SagaRun, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]any) error
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.SagaRun, error)
}

type sagaRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSagaRunRepo(db *gorm.DB, baseLog *logger.Logger) SagaRunRepo {
	return &sagaRunRepo{db: db, log: baseLog.With("repo", "SagaRunRepo")}
}

func (r *sagaRunRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.SagaRun) (*domain.SagaRun, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *sagaRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]any) error {
	t := tx
	if t == nil {
		t = r.db
	}
	fields["updated_at"] = time.Now().UTC()
	return t.WithContext(ctx).
		Model(&domain.SagaRun{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *sagaRunRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.SagaRun, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.SagaRun
	if err := t.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
