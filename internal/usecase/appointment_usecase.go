package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrStatusFinal         = errors.New("appointment status can no longer change")
	ErrNotAllowed          = errors.New("you are not allowed to access this appointment")
	ErrInvalidPeriod       = errors.New("invalid period, use today or week")
)

// Worklist periods
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
)

type AppointmentUsecase interface {
	GetAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	GetDoctorWorklist(ctx context.Context, period string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// GetAppointments lists appointments scoped to the caller: admins see all,
// doctors and patients see their own.
func (u *appointmentUsecase) GetAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	var appointments []entity.Appointment
	var err error
	switch {
	case principal.IsAdmin():
		appointments, err = u.appointmentRepo.FindAll(db)
	case principal.IsDoctor():
		appointments, err = u.appointmentRepo.FindByDoctorID(db, principal.UserID)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(db, principal.UserID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments for user %s: %+v", principal.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !principal.CanViewAppointment(appointment) {
		u.auditService.RecordDenied(u.db.WithContext(ctx), principal.UserID, entity.AuditActionAppointmentStatus, entity.JSON{
			"appointment_id": id.String(),
			"operation":      "view",
		})
		return nil, ErrNotAllowed
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus transitions an appointment through its lifecycle. Scheduled is
// the only state that allows a transition; the conditional update guarantees a
// terminal status is written exactly once even under concurrent requests.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	next, valid := entity.ParseAppointmentStatus(req.Status)
	if !valid {
		return nil, ErrInvalidStatus
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !principal.CanTransitionAppointment(appointment) {
		u.auditService.RecordDenied(u.db.WithContext(ctx), principal.UserID, entity.AuditActionAppointmentStatus, entity.JSON{
			"appointment_id": id.String(),
			"to_status":      string(next),
		})
		return nil, ErrNotAllowed
	}

	if !appointment.Status.CanTransitionTo(next) {
		return nil, ErrStatusFinal
	}

	rows, err := u.appointmentRepo.UpdateStatusFrom(u.db.WithContext(ctx), id, appointment.Status, next)
	if err != nil {
		u.log.Warnf("Failed to update status of appointment %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		// Lost the race against a concurrent transition
		return nil, ErrStatusFinal
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionAppointmentStatus, entity.JSON{
		"appointment_id": id.String(),
		"from_status":    string(appointment.Status),
		"to_status":      string(next),
	})

	appointment.Status = next
	return converter.AppointmentToResponse(appointment), nil
}

// DeleteAppointment hard-deletes an appointment. Admin-only; normal flows end
// appointments through status transitions instead.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionAppointmentDelete, entity.JSON{
		"appointment_id": id.String(),
	})

	return nil
}

// GetDoctorWorklist returns the logged-in doctor's appointments for today or
// for the next seven days.
func (u *appointmentUsecase) GetDoctorWorklist(ctx context.Context, period string) (*dto.AppointmentListResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	var from, to time.Time
	switch period {
	case "", PeriodToday:
		from, to = today, today
	case PeriodWeek:
		from, to = today, today.AddDate(0, 0, 6)
	default:
		return nil, ErrInvalidPeriod
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDateRange(u.db.WithContext(ctx), principal.UserID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find worklist for doctor %s: %+v", principal.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
