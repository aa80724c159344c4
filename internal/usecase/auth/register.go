package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/vidalapps/salon-manager/internal/audit"
	domain "github.com/vidalapps/salon-manager/internal/domain/account"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/models"
	"github.com/vidalapps/salon-manager/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// ======================================================
// USE CASE
// ======================================================

type RegisterAccount struct {
	accounts     domain.Repository
	audit        *audit.Dispatcher
	verifyDomain bool
}

func NewRegisterAccount(
	accounts domain.Repository,
	audit *audit.Dispatcher,
	verifyDomain bool,
) *RegisterAccount {
	return &RegisterAccount{
		accounts:     accounts,
		audit:        audit,
		verifyDomain: verifyDomain,
	}
}

// Execute grava a conta com hash bcrypt. As regras de campo já passaram
// pelo form; aqui ficam o hash, o check opcional de domínio e o mapeamento
// da corrida de unicidade. Não loga a conta automaticamente.
func (uc *RegisterAccount) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.Account, error) {

	if uc.verifyDomain && !validators.IsEmailDomainValid(in.Email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmailDomain)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acct := &models.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
	}

	if err := uc.accounts.Create(ctx, acct); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: &acct.ID,
		Action:    "account_registered",
		Entity:    "account",
		EntityID:  &acct.ID,
	})

	return acct, nil
}
