package account

import (
	"context"

	"github.com/vidalapps/salon-manager/internal/models"
)

type Repository interface {
	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Account, error)

	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.Account, error)

	FindByUsername(
		ctx context.Context,
		username string,
	) (*models.Account, error)

	Create(
		ctx context.Context,
		acct *models.Account,
	) error
}
