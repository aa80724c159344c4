package forms

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vidalapps/salon-manager/internal/domain/catalog"
)

type ServiceForm struct {
	Name            string
	Price           string
	DurationMinutes string

	// Preenchidos por Validate quando os campos parseiam.
	PriceValue    float64
	DurationValue int
}

func BindService(c *gin.Context) ServiceForm {
	return ServiceForm{
		Name:            strings.TrimSpace(c.PostForm("name")),
		Price:           strings.TrimSpace(c.PostForm("price")),
		DurationMinutes: strings.TrimSpace(c.PostForm("duration_minutes")),
	}
}

// Validate aplica as regras de campo e a unicidade do nome. excludeID
// exclui o próprio registro na edição, para o nome inalterado não ser
// rejeitado como duplicado.
func (f *ServiceForm) Validate(
	ctx context.Context,
	services catalog.Repository,
	excludeID uint,
) Errors {

	errs := Errors{}

	switch {
	case f.Name == "":
		errs["name"] = "Informe o nome do serviço."
	case len(f.Name) < 3 || len(f.Name) > 100:
		errs["name"] = "O nome deve ter entre 3 e 100 caracteres."
	}

	if f.Price == "" {
		errs["price"] = "Informe o preço."
	} else {
		// Aceita vírgula decimal, comum na entrada pt-BR.
		price, err := strconv.ParseFloat(strings.Replace(f.Price, ",", ".", 1), 64)
		if err != nil {
			errs["price"] = "Preço inválido."
		} else if price <= 0 {
			errs["price"] = "O preço deve ser maior que zero."
		} else {
			f.PriceValue = price
		}
	}

	if f.DurationMinutes == "" {
		errs["duration_minutes"] = "Informe a duração."
	} else {
		dur, err := strconv.Atoi(f.DurationMinutes)
		if err != nil {
			errs["duration_minutes"] = "Duração inválida."
		} else if dur < 5 {
			errs["duration_minutes"] = "A duração deve ser de no mínimo 5 minutos."
		} else {
			f.DurationValue = dur
		}
	}

	if _, ok := errs["name"]; !ok {
		if _, err := services.FindByName(ctx, f.Name, excludeID); err == nil {
			errs["name"] = "Já existe um serviço com este nome."
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			errs["form"] = connectionErrorMsg
		}
	}

	return errs
}
