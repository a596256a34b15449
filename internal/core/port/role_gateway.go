package port

import (
	"context"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// RoleGateway handles role CRUD. Listed roles come back with their nested
// permission sets and user counts. Create and Update submit the role's
// complete permission ID set; the server replaces the relation wholesale.
type RoleGateway interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.Role, error)
	Create(ctx context.Context, scope domain.Scope, role domain.Role) (*domain.Role, error)
	Update(ctx context.Context, scope domain.Scope, role domain.Role) (*domain.Role, error)
	Delete(ctx context.Context, scope domain.Scope, id string) error
}
