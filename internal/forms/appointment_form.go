package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type AppointmentForm struct {
	ClientID  string
	ServiceID string
	Date      string
	Time      string
	Note      string

	// Preenchidos por Validate quando os campos parseiam.
	ClientIDValue  uint
	ServiceIDValue uint
	ScheduledAt    time.Time
}

func BindAppointment(c *gin.Context) AppointmentForm {
	return AppointmentForm{
		ClientID:  strings.TrimSpace(c.PostForm("client_id")),
		ServiceID: strings.TrimSpace(c.PostForm("service_id")),
		Date:      strings.TrimSpace(c.PostForm("date")),
		Time:      strings.TrimSpace(c.PostForm("time")),
		Note:      strings.TrimSpace(c.PostForm("note")),
	}
}

func (f *AppointmentForm) Validate() Errors {
	errs := Errors{}

	if f.ClientID == "" {
		errs["client_id"] = "Selecione o cliente."
	} else if id, err := strconv.ParseUint(f.ClientID, 10, 64); err != nil || id == 0 {
		errs["client_id"] = "Cliente inválido."
	} else {
		f.ClientIDValue = uint(id)
	}

	if f.ServiceID == "" {
		errs["service_id"] = "Selecione o serviço."
	} else if id, err := strconv.ParseUint(f.ServiceID, 10, 64); err != nil || id == 0 {
		errs["service_id"] = "Serviço inválido."
	} else {
		f.ServiceIDValue = uint(id)
	}

	if f.Date == "" || f.Time == "" {
		errs["scheduled_at"] = "Informe data e hora."
	} else {
		at, err := time.ParseInLocation(
			"2006-01-02 15:04",
			f.Date+" "+f.Time,
			time.Local,
		)
		if err != nil {
			errs["scheduled_at"] = "Data ou hora inválida."
		} else {
			f.ScheduledAt = at
		}
	}

	return errs
}
