package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/vidalapps/salon-manager/internal/domain/catalog"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) List(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *CatalogGormRepository) FindByName(
	ctx context.Context,
	name string,
	excludeID uint,
) (*models.Service, error) {

	q := r.db.WithContext(ctx).Where("name = ?", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var svc models.Service
	if err := q.First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *CatalogGormRepository) Create(
	ctx context.Context,
	svc *models.Service,
) error {

	err := r.db.WithContext(ctx).Create(svc).Error
	if err == nil {
		return nil
	}

	if isUniqueViolation(err, "idx_services_name") {
		return httperr.ErrBusiness(httperr.CodeServiceNameTaken)
	}
	return err
}

func (r *CatalogGormRepository) Update(
	ctx context.Context,
	svc *models.Service,
) error {

	err := r.db.WithContext(ctx).Save(svc).Error
	if err == nil {
		return nil
	}

	if isUniqueViolation(err, "idx_services_name") {
		return httperr.ErrBusiness(httperr.CodeServiceNameTaken)
	}
	return err
}

func (r *CatalogGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Service{}, id).Error
}

func (r *CatalogGormRepository) CountAppointments(
	ctx context.Context,
	serviceID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*CatalogGormRepository)(nil)
