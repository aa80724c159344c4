package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vidalapps/salon-manager/internal/domain/account"
	"github.com/vidalapps/salon-manager/internal/validators"
)

// --------- Registro ---------

type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func BindRegister(c *gin.Context) RegisterForm {
	return RegisterForm{
		Username:        strings.TrimSpace(c.PostForm("username")),
		Email:           strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}
}

// Validate cobre as regras de campo e a duplicidade de username/email.
// O índice único do banco continua valendo para corridas.
func (f *RegisterForm) Validate(ctx context.Context, accounts account.Repository) Errors {
	errs := Errors{}

	switch {
	case f.Username == "":
		errs["username"] = "Informe o nome de usuário."
	case len(f.Username) < 2 || len(f.Username) > 20:
		errs["username"] = "O usuário deve ter entre 2 e 20 caracteres."
	}

	switch {
	case f.Email == "":
		errs["email"] = "Informe o email."
	case !validators.IsEmailSyntaxValid(f.Email):
		errs["email"] = "Email inválido."
	}

	switch {
	case f.Password == "":
		errs["password"] = "Informe a senha."
	case len(f.Password) < 6:
		errs["password"] = "A senha deve ter no mínimo 6 caracteres."
	}

	if f.ConfirmPassword == "" {
		errs["confirm_password"] = "Confirme a senha."
	} else if f.Password != f.ConfirmPassword {
		errs["confirm_password"] = "As senhas devem ser iguais."
	}

	if _, ok := errs["username"]; !ok {
		if _, err := accounts.FindByUsername(ctx, f.Username); err == nil {
			errs["username"] = "Este nome de usuário já está em uso."
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			errs["form"] = connectionErrorMsg
		}
	}

	if _, ok := errs["email"]; !ok {
		if _, err := accounts.FindByEmail(ctx, f.Email); err == nil {
			errs["email"] = "Este email já está cadastrado."
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			errs["form"] = connectionErrorMsg
		}
	}

	return errs
}

// --------- Login ---------

type LoginForm struct {
	Email    string
	Password string
	Remember bool
}

func BindLogin(c *gin.Context) LoginForm {
	return LoginForm{
		Email:    strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
		Password: c.PostForm("password"),
		Remember: c.PostForm("remember") != "",
	}
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}

	switch {
	case f.Email == "":
		errs["email"] = "Informe o email."
	case !validators.IsEmailSyntaxValid(f.Email):
		errs["email"] = "Email inválido."
	}

	if f.Password == "" {
		errs["password"] = "Informe a senha."
	}

	return errs
}
