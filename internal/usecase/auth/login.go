package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vidalapps/salon-manager/internal/audit"
	domain "github.com/vidalapps/salon-manager/internal/domain/account"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/models"
)

type LoginAccount struct {
	accounts domain.Repository
	audit    *audit.Dispatcher
}

func NewLoginAccount(
	accounts domain.Repository,
	audit *audit.Dispatcher,
) *LoginAccount {
	return &LoginAccount{
		accounts: accounts,
		audit:    audit,
	}
}

// Execute devolve o mesmo invalid_credentials para email desconhecido e
// senha errada, para não permitir enumeração de contas.
func (uc *LoginAccount) Execute(
	ctx context.Context,
	email string,
	password string,
) (*models.Account, error) {

	acct, err := uc.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
		}
		return nil, httperr.ErrBusiness(httperr.CodeConnectionError)
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(acct.PasswordHash),
		[]byte(password),
	); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: &acct.ID,
		Action:    "account_logged_in",
		Entity:    "account",
		EntityID:  &acct.ID,
	})

	return acct, nil
}
