package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidalapps/salon-manager/internal/domain/catalog"
	"github.com/vidalapps/salon-manager/internal/domain/clientbook"
	"github.com/vidalapps/salon-manager/internal/flash"
	"github.com/vidalapps/salon-manager/internal/forms"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/middleware"
	ucschedule "github.com/vidalapps/salon-manager/internal/usecase/schedule"
)

type AppointmentHandler struct {
	bookUC     *ucschedule.BookAppointment
	completeUC *ucschedule.CompleteAppointment
	cancelUC   *ucschedule.CancelAppointment
	noShowUC   *ucschedule.MarkNoShow
	listUC     *ucschedule.ListAppointmentsByDate

	clients  clientbook.Repository
	services catalog.Repository
}

func NewAppointmentHandler(
	bookUC *ucschedule.BookAppointment,
	completeUC *ucschedule.CompleteAppointment,
	cancelUC *ucschedule.CancelAppointment,
	noShowUC *ucschedule.MarkNoShow,
	listUC *ucschedule.ListAppointmentsByDate,
	clients clientbook.Repository,
	services catalog.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:     bookUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		noShowUC:   noShowUC,
		listUC:     listUC,
		clients:    clients,
		services:   services,
	}
}

// ======================================================
// AGENDA (lista por dia)
// ======================================================

func (h *AppointmentHandler) Agenda(c *gin.Context) {
	messages := flash.Pop(c)

	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			httperr.NotFoundPage(c)
			return
		}
		date = parsed
	}

	appointments, err := h.listUC.Execute(c.Request.Context(), date)
	if err != nil {
		messages = append(messages, flash.Message{
			Category: "danger",
			Text:     "Erro de conexão com o banco de dados.",
		})
		appointments = nil
	}

	c.HTML(http.StatusOK, "appointments_list", gin.H{
		"Appointments": appointments,
		"Date":         date.Format("2006-01-02"),
		"Flash":        messages,
	})
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) NewPage(c *gin.Context) {
	h.renderBookingForm(c, forms.AppointmentForm{}, forms.Errors{}, flash.Pop(c))
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	form := forms.BindAppointment(c)

	errs := form.Validate()
	if errs.Any() {
		h.renderBookingForm(c, form, errs, nil)
		return
	}

	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	ap, err := h.bookUC.Execute(c.Request.Context(), accountID, ucschedule.BookAppointmentInput{
		ClientID:    form.ClientIDValue,
		ServiceID:   form.ServiceIDValue,
		ScheduledAt: form.ScheduledAt,
		Note:        form.Note,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "client_not_found"):
			errs["client_id"] = "Cliente não encontrado."
		case httperr.IsBusiness(err, "service_not_found"):
			errs["service_id"] = "Serviço não encontrado."
		default:
			errs["form"] = "Erro de conexão com o banco de dados."
		}

		h.renderBookingForm(c, form, errs, nil)
		return
	}

	flash.Set(c, "success", "Agendamento criado com sucesso!")
	c.Redirect(http.StatusFound, "/appointments?date="+ap.ScheduledAt.Format("2006-01-02"))
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, "concluído", func(accountID, id uint) error {
		_, err := h.completeUC.Execute(c.Request.Context(), accountID, id)
		return err
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, "cancelado", func(accountID, id uint) error {
		_, err := h.cancelUC.Execute(c.Request.Context(), accountID, id)
		return err
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, "marcado como falta", func(accountID, id uint) error {
		_, err := h.noShowUC.Execute(c.Request.Context(), accountID, id)
		return err
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	verb string,
	fn func(accountID, id uint) error,
) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.NotFoundPage(c)
		return
	}

	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	if err := fn(accountID, uint(id)); err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeNotFound):
			httperr.NotFoundPage(c)
			return
		case httperr.IsBusiness(err, httperr.CodeInvalidState):
			flash.Set(c, "danger", "Só agendamentos em aberto podem mudar de status.")
		default:
			flash.Set(c, "danger", "Erro de conexão com o banco de dados.")
		}
	} else {
		flash.Set(c, "success", "Agendamento "+verb+"!")
	}

	c.Redirect(http.StatusFound, "/appointments")
}

// ======================================================
// Helpers
// ======================================================

func (h *AppointmentHandler) renderBookingForm(
	c *gin.Context,
	form forms.AppointmentForm,
	errs forms.Errors,
	messages []flash.Message,
) {
	// Os selects precisam das listas mesmo no re-render com erro.
	clients, err := h.clients.List(c.Request.Context(), "")
	if err != nil {
		messages = append(messages, flash.Message{
			Category: "danger",
			Text:     "Erro de conexão com o banco de dados.",
		})
	}

	services, err := h.services.List(c.Request.Context())
	if err != nil && len(messages) == 0 {
		messages = append(messages, flash.Message{
			Category: "danger",
			Text:     "Erro de conexão com o banco de dados.",
		})
	}

	c.HTML(http.StatusOK, "appointment_form", gin.H{
		"Legend":   "Novo Agendamento",
		"Action":   "/appointment/new",
		"Form":     form,
		"Errors":   errs,
		"Clients":  clients,
		"Services": services,
		"Flash":    messages,
	})
}
