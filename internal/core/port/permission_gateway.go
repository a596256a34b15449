package port

import (
	"context"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// PermissionGateway handles permission CRUD against the platform API.
type PermissionGateway interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.Permission, error)
	Create(ctx context.Context, scope domain.Scope, permission domain.Permission) (*domain.Permission, error)
	Update(ctx context.Context, scope domain.Scope, permission domain.Permission) (*domain.Permission, error)
	Delete(ctx context.Context, scope domain.Scope, id string) error
}
