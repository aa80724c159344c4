package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vidalapps/salon-manager/internal/audit"
	domain "github.com/vidalapps/salon-manager/internal/domain/clientbook"
	"github.com/vidalapps/salon-manager/internal/flash"
	"github.com/vidalapps/salon-manager/internal/forms"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/middleware"
	"github.com/vidalapps/salon-manager/internal/models"
)

type ClientHandler struct {
	clients domain.Repository
	audit   *audit.Dispatcher
}

func NewClientHandler(
	clients domain.Repository,
	audit *audit.Dispatcher,
) *ClientHandler {
	return &ClientHandler{
		clients: clients,
		audit:   audit,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	messages := flash.Pop(c)
	query := c.Query("query")

	clients, err := h.clients.List(c.Request.Context(), query)
	if err != nil {
		messages = append(messages, flash.Message{
			Category: "danger",
			Text:     "Erro de conexão com o banco de dados.",
		})
		clients = nil
	}

	c.HTML(http.StatusOK, "clients_list", gin.H{
		"Clients": clients,
		"Query":   query,
		"Flash":   messages,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) NewPage(c *gin.Context) {
	c.HTML(http.StatusOK, "client_form", gin.H{
		"Legend": "Novo Cliente",
		"Action": "/client/new",
		"Form":   forms.ClientForm{},
		"Errors": forms.Errors{},
		"Flash":  flash.Pop(c),
	})
}

func (h *ClientHandler) Create(c *gin.Context) {
	form := forms.BindClient(c)

	errs := form.Validate()
	if errs.Any() {
		c.HTML(http.StatusOK, "client_form", gin.H{
			"Legend": "Novo Cliente",
			"Action": "/client/new",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	client := models.Client{
		Name:  form.Name,
		Phone: form.Phone,
		Email: form.Email,
	}

	if err := h.clients.Create(c.Request.Context(), &client); err != nil {
		errs["form"] = "Erro de conexão com o banco de dados."
		c.HTML(http.StatusOK, "client_form", gin.H{
			"Legend": "Novo Cliente",
			"Action": "/client/new",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	h.audit.Dispatch(audit.Event{
		AccountID: &accountID,
		Action:    "client_created",
		Entity:    "client",
		EntityID:  &client.ID,
	})

	flash.Set(c, "success", "Cliente \""+client.Name+"\" cadastrado com sucesso!")
	c.Redirect(http.StatusFound, "/clients")
}

// ======================================================
// EDIT
// ======================================================

func (h *ClientHandler) EditPage(c *gin.Context) {
	client, ok := h.lookup(c)
	if !ok {
		return
	}

	form := forms.ClientForm{
		Name:  client.Name,
		Phone: client.Phone,
		Email: client.Email,
	}

	c.HTML(http.StatusOK, "client_form", gin.H{
		"Legend": "Editar Cliente: " + client.Name,
		"Action": "/client/" + strconv.FormatUint(uint64(client.ID), 10) + "/edit",
		"Form":   form,
		"Errors": forms.Errors{},
		"Flash":  flash.Pop(c),
	})
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.lookup(c)
	if !ok {
		return
	}

	form := forms.BindClient(c)
	action := "/client/" + strconv.FormatUint(uint64(client.ID), 10) + "/edit"

	errs := form.Validate()
	if errs.Any() {
		c.HTML(http.StatusOK, "client_form", gin.H{
			"Legend": "Editar Cliente: " + client.Name,
			"Action": action,
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	client.Name = form.Name
	client.Phone = form.Phone
	client.Email = form.Email

	if err := h.clients.Update(c.Request.Context(), client); err != nil {
		errs["form"] = "Erro de conexão com o banco de dados."
		c.HTML(http.StatusOK, "client_form", gin.H{
			"Legend": "Editar Cliente: " + client.Name,
			"Action": action,
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	flash.Set(c, "success", "Cliente \""+client.Name+"\" atualizado com sucesso!")
	c.Redirect(http.StatusFound, "/clients")
}

// ======================================================
// Helpers
// ======================================================

func (h *ClientHandler) lookup(c *gin.Context) (*models.Client, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.NotFoundPage(c)
		return nil, false
	}

	client, err := h.clients.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFoundPage(c)
			return nil, false
		}

		flash.Set(c, "danger", "Erro de conexão com o banco de dados.")
		c.Redirect(http.StatusFound, "/clients")
		c.Abort()
		return nil, false
	}

	return client, true
}
