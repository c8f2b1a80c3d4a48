package adminrepo

import (
	"context"
	"errors"

	"shiptrack/internal/adapters/out/postgres/dberr"
	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormAdminRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAdminRepository(db *gorm.DB, tracker aggregateTracker) *GormAdminRepository {
	return &GormAdminRepository{db: db, tracker: tracker}
}

func (r *GormAdminRepository) Add(ctx context.Context, aggregate *admin.Admin) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("email", dto.Email, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAdminRepository) Get(ctx context.Context, id kernel.UUID) (*admin.Admin, error) {
	return r.first(ctx, "admin", id.String(), "id = ?", id.Bytes())
}

func (r *GormAdminRepository) GetByEmail(ctx context.Context, email kernel.Email) (*admin.Admin, error) {
	return r.first(ctx, "email", email.String(), "email = ?", email.String())
}

func (r *GormAdminRepository) first(ctx context.Context, param, value string, cond string, arg any) (*admin.Admin, error) {
	var dto AdminDTO
	if err := r.db.WithContext(ctx).First(&dto, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, value)
		}
		return nil, err
	}
	return toDomain(dto)
}
