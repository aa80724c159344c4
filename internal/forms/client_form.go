package forms

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vidalapps/salon-manager/internal/validators"
)

type ClientForm struct {
	Name  string
	Phone string
	Email string
}

func BindClient(c *gin.Context) ClientForm {
	return ClientForm{
		Name:  strings.TrimSpace(c.PostForm("name")),
		Phone: strings.TrimSpace(c.PostForm("phone")),
		Email: strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
	}
}

func (f *ClientForm) Validate() Errors {
	errs := Errors{}

	switch {
	case f.Name == "":
		errs["name"] = "Informe o nome do cliente."
	case len(f.Name) > 100:
		errs["name"] = "O nome deve ter no máximo 100 caracteres."
	}

	switch {
	case f.Phone == "":
		errs["phone"] = "Informe o telefone."
	case len(f.Phone) > 20:
		errs["phone"] = "O telefone deve ter no máximo 20 caracteres."
	}

	// Email é opcional para clientes.
	if f.Email != "" && !validators.IsEmailSyntaxValid(f.Email) {
		errs["email"] = "Email inválido."
	}

	return errs
}
