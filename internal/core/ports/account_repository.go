package ports

import (
	"context"

	"github.com/99minutos/gesture-portal/internal/core/domain"
)

// AccountRepository is the credential store. Implementations must enforce
// email uniqueness themselves and report a collision as domain.ErrDuplicateIdentity.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}
