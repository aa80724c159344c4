package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidalapps/salon-manager/internal/flash"
	"github.com/vidalapps/salon-manager/internal/middleware"
	"github.com/vidalapps/salon-manager/internal/models"
	ucschedule "github.com/vidalapps/salon-manager/internal/usecase/schedule"
)

type DashboardHandler struct {
	listUC *ucschedule.ListAppointmentsByDate
}

func NewDashboardHandler(listUC *ucschedule.ListAppointmentsByDate) *DashboardHandler {
	return &DashboardHandler{listUC: listUC}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	messages := flash.Pop(c)
	acct := c.MustGet(middleware.ContextAccount).(*models.Account)

	today := time.Now()
	appointments, err := h.listUC.Execute(c.Request.Context(), today)
	if err != nil {
		messages = append(messages, flash.Message{
			Category: "danger",
			Text:     "Erro de conexão com o banco de dados.",
		})
		appointments = nil
	}

	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Account":      acct,
		"Today":        today.Format("02/01/2006"),
		"Appointments": appointments,
		"Flash":        messages,
	})
}
