package port

import (
	"context"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// UserGateway handles user CRUD. Listed users come back with their nested
// role sets. The password travels outside the entity: required on create,
// empty on update means "no change" and the field is omitted from the
// payload entirely.
type UserGateway interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.User, error)
	Create(ctx context.Context, scope domain.Scope, user domain.User, password string) (*domain.User, error)
	Update(ctx context.Context, scope domain.Scope, user domain.User, password string) (*domain.User, error)
	Delete(ctx context.Context, scope domain.Scope, id string) error
}
