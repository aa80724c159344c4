package schedule

import (
	"context"
	"time"

	"github.com/vidalapps/salon-manager/internal/audit"
	domain "github.com/vidalapps/salon-manager/internal/domain/schedule"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	ClientID    uint
	ServiceID   uint
	ScheduledAt time.Time
	Note        string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute valida as referências e grava o agendamento. Não há checagem
// de conflito de horário — a agenda é gerida pelo operador.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	accountID uint,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	if _, err := uc.repo.GetService(ctx, in.ServiceID); err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	ap := &models.Appointment{
		ClientID:    in.ClientID,
		ServiceID:   in.ServiceID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(domain.InitialStatus()),
		Note:        in.Note,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: &accountID,
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
