package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/vidalapps/salon-manager/internal/domain/clientbook"
	"github.com/vidalapps/salon-manager/internal/models"
)

type ClientbookGormRepository struct {
	db *gorm.DB
}

func NewClientbookGormRepository(db *gorm.DB) *ClientbookGormRepository {
	return &ClientbookGormRepository{db: db}
}

func (r *ClientbookGormRepository) List(
	ctx context.Context,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientbookGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientbookGormRepository) Create(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientbookGormRepository) Update(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Compile-time check
var _ domain.Repository = (*ClientbookGormRepository)(nil)
