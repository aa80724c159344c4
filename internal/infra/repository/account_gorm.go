package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/vidalapps/salon-manager/internal/domain/account"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Account, error) {

	var acct models.Account
	if err := r.db.WithContext(ctx).First(&acct, id).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *AccountGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.Account, error) {

	var acct models.Account
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *AccountGormRepository) FindByUsername(
	ctx context.Context,
	username string,
) (*models.Account, error) {

	var acct models.Account
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *AccountGormRepository) Create(
	ctx context.Context,
	acct *models.Account,
) error {

	err := r.db.WithContext(ctx).Create(acct).Error
	if err == nil {
		return nil
	}

	if isUniqueViolation(err, "idx_accounts_username") {
		return httperr.ErrBusiness(httperr.CodeUsernameTaken)
	}
	if isUniqueViolation(err, "idx_accounts_email") {
		return httperr.ErrBusiness(httperr.CodeEmailTaken)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
