package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/core/domain/model/kernel"
)

type AdminRepository interface {
	Add(ctx context.Context, aggregate *admin.Admin) error
	Get(ctx context.Context, id kernel.UUID) (*admin.Admin, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*admin.Admin, error)
}
