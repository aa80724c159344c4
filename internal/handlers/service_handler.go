package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vidalapps/salon-manager/internal/audit"
	domain "github.com/vidalapps/salon-manager/internal/domain/catalog"
	"github.com/vidalapps/salon-manager/internal/flash"
	"github.com/vidalapps/salon-manager/internal/forms"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/middleware"
	"github.com/vidalapps/salon-manager/internal/models"
)

type ServiceHandler struct {
	services domain.Repository
	audit    *audit.Dispatcher
}

func NewServiceHandler(
	services domain.Repository,
	audit *audit.Dispatcher,
) *ServiceHandler {
	return &ServiceHandler{
		services: services,
		audit:    audit,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	messages := flash.Pop(c)

	services, err := h.services.List(c.Request.Context())
	if err != nil {
		// Banco fora do ar não vira lista vazia silenciosa.
		messages = append(messages, flash.Message{
			Category: "danger",
			Text:     "Erro de conexão com o banco de dados.",
		})
		services = nil
	}

	c.HTML(http.StatusOK, "services_list", gin.H{
		"Services": services,
		"Flash":    messages,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *ServiceHandler) NewPage(c *gin.Context) {
	c.HTML(http.StatusOK, "service_form", gin.H{
		"Legend": "Criar Novo Serviço",
		"Action": "/service/new",
		"Form":   forms.ServiceForm{},
		"Errors": forms.Errors{},
		"Flash":  flash.Pop(c),
	})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	form := forms.BindService(c)

	errs := form.Validate(c.Request.Context(), h.services, 0)
	if errs.Any() {
		c.HTML(http.StatusOK, "service_form", gin.H{
			"Legend": "Criar Novo Serviço",
			"Action": "/service/new",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	svc := models.Service{
		Name:            form.Name,
		Price:           form.PriceValue,
		DurationMinutes: form.DurationValue,
	}

	if err := h.services.Create(c.Request.Context(), &svc); err != nil {
		if httperr.IsBusiness(err, httperr.CodeServiceNameTaken) {
			errs["name"] = "Já existe um serviço com este nome."
		} else {
			errs["form"] = "Erro de conexão com o banco de dados."
		}

		c.HTML(http.StatusOK, "service_form", gin.H{
			"Legend": "Criar Novo Serviço",
			"Action": "/service/new",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	h.dispatch(c, "service_created", svc.ID)

	flash.Set(c, "success", "Serviço \""+svc.Name+"\" criado com sucesso!")
	c.Redirect(http.StatusFound, "/services")
}

// ======================================================
// EDIT
// ======================================================

func (h *ServiceHandler) EditPage(c *gin.Context) {
	svc, ok := h.lookup(c)
	if !ok {
		return
	}

	form := forms.ServiceForm{
		Name:            svc.Name,
		Price:           strconv.FormatFloat(svc.Price, 'f', 2, 64),
		DurationMinutes: strconv.Itoa(svc.DurationMinutes),
	}

	c.HTML(http.StatusOK, "service_form", gin.H{
		"Legend": "Editar Serviço: " + svc.Name,
		"Action": "/service/" + strconv.FormatUint(uint64(svc.ID), 10) + "/edit",
		"Form":   form,
		"Errors": forms.Errors{},
		"Flash":  flash.Pop(c),
	})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	svc, ok := h.lookup(c)
	if !ok {
		return
	}

	form := forms.BindService(c)
	action := "/service/" + strconv.FormatUint(uint64(svc.ID), 10) + "/edit"

	// O próprio registro fica fora do check de duplicidade: manter o
	// nome inalterado na edição deve passar.
	errs := form.Validate(c.Request.Context(), h.services, svc.ID)
	if errs.Any() {
		c.HTML(http.StatusOK, "service_form", gin.H{
			"Legend": "Editar Serviço: " + svc.Name,
			"Action": action,
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	svc.Name = form.Name
	svc.Price = form.PriceValue
	svc.DurationMinutes = form.DurationValue

	if err := h.services.Update(c.Request.Context(), svc); err != nil {
		if httperr.IsBusiness(err, httperr.CodeServiceNameTaken) {
			errs["name"] = "Já existe um serviço com este nome."
		} else {
			errs["form"] = "Erro de conexão com o banco de dados."
		}

		c.HTML(http.StatusOK, "service_form", gin.H{
			"Legend": "Editar Serviço: " + svc.Name,
			"Action": action,
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	h.dispatch(c, "service_updated", svc.ID)

	flash.Set(c, "success", "Serviço \""+svc.Name+"\" atualizado com sucesso!")
	c.Redirect(http.StatusFound, "/services")
}

// ======================================================
// DELETE
// ======================================================

func (h *ServiceHandler) Delete(c *gin.Context) {
	svc, ok := h.lookup(c)
	if !ok {
		return
	}

	count, err := h.services.CountAppointments(c.Request.Context(), svc.ID)
	if err != nil {
		flash.Set(c, "danger", "Erro de conexão com o banco de dados.")
		c.Redirect(http.StatusFound, "/services")
		return
	}
	if count > 0 {
		flash.Set(c, "danger",
			"O serviço \""+svc.Name+"\" possui agendamentos e não pode ser excluído.")
		c.Redirect(http.StatusFound, "/services")
		return
	}

	if err := h.services.Delete(c.Request.Context(), svc.ID); err != nil {
		flash.Set(c, "danger", "Erro de conexão com o banco de dados.")
		c.Redirect(http.StatusFound, "/services")
		return
	}

	h.dispatch(c, "service_deleted", svc.ID)

	flash.Set(c, "success", "Serviço excluído com sucesso!")
	c.Redirect(http.StatusFound, "/services")
}

// ======================================================
// Helpers
// ======================================================

// lookup resolve :id para o serviço ou encerra a request com 404.
func (h *ServiceHandler) lookup(c *gin.Context) (*models.Service, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.NotFoundPage(c)
		return nil, false
	}

	svc, err := h.services.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFoundPage(c)
			return nil, false
		}

		flash.Set(c, "danger", "Erro de conexão com o banco de dados.")
		c.Redirect(http.StatusFound, "/services")
		c.Abort()
		return nil, false
	}

	return svc, true
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, entityID uint) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	h.audit.Dispatch(audit.Event{
		AccountID: &accountID,
		Action:    action,
		Entity:    "service",
		EntityID:  &entityID,
	})
}
