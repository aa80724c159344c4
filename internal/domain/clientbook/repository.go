package clientbook

import (
	"context"

	"github.com/vidalapps/salon-manager/internal/models"
)

type Repository interface {
	// List retorna os clientes mais recentes primeiro; query filtra por
	// nome, telefone ou e-mail.
	List(
		ctx context.Context,
		query string,
	) ([]models.Client, error)

	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	Create(
		ctx context.Context,
		client *models.Client,
	) error

	Update(
		ctx context.Context,
		client *models.Client,
	) error
}
