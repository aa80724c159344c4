package catalog

import (
	"context"

	"github.com/vidalapps/salon-manager/internal/models"
)

type Repository interface {
	// List retorna os serviços ordenados por nome (ASC).
	List(
		ctx context.Context,
	) ([]models.Service, error)

	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// FindByName ignora o próprio registro quando excludeID > 0,
	// para a edição não se auto-rejeitar como duplicada.
	FindByName(
		ctx context.Context,
		name string,
		excludeID uint,
	) (*models.Service, error)

	Create(
		ctx context.Context,
		svc *models.Service,
	) error

	Update(
		ctx context.Context,
		svc *models.Service,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) error

	CountAppointments(
		ctx context.Context,
		serviceID uint,
	) (int64, error)
}
