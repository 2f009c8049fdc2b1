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
	"clinic-appointment-api/internal/scheduling"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotTaken          = errors.New("slot is already booked")
	ErrBookingNotOwned    = errors.New("appointment does not belong to you")
	ErrBookingNotActive   = errors.New("appointment can no longer be cancelled")
	ErrPatientProfileGone = errors.New("patient profile not found")
)

// Booking creation retries on transient store errors only. A taken slot is a
// final answer, never retried.
const (
	maxBookingAttempts  = 3
	bookingRetryBackoff = 50 * time.Millisecond
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.AppointmentResponse, error)
	GetMyBookings(ctx context.Context) (*dto.AppointmentListResponse, error)
	CancelBooking(ctx context.Context, appointmentID uuid.UUID) error
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	patientRepo     repository.PatientProfileRepository
	auditService    service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

// CreateBooking books a slot for the logged-in patient.
//
// Flow:
//  1. Validate date and time formats
//  2. Validate the doctor and the caller's patient profile exist
//  3. Transaction: re-check the slot is free, then insert
//  4. The partial unique index on (doctor_id, date, time) backstops the check;
//     a duplicate-key error from a racing commit surfaces as ErrSlotTaken
//
// Transient store errors are retried a bounded number of times. ErrSlotTaken
// is final on first occurrence.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slot, err := time.Parse(scheduling.ClockLayout, req.Time)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	slotTime := slot.Format(scheduling.ClockLayout)

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", principal.UserID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileGone
	}

	appointment := &entity.Appointment{
		DoctorID:  &req.DoctorID,
		PatientID: &principal.UserID,
		Date:      date,
		Time:      slotTime,
		Status:    entity.AppointmentStatusScheduled,
	}

	for attempt := 1; ; attempt++ {
		err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			existing, err := u.appointmentRepo.FindActiveSlot(tx, req.DoctorID, date, slotTime)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrSlotTaken
			}
			return u.appointmentRepo.Create(tx, appointment)
		})
		if err == nil {
			break
		}
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		if attempt >= maxBookingAttempts {
			u.log.Warnf("Failed to create booking after %d attempts: %+v", attempt, err)
			return nil, err
		}
		u.log.Warnf("Booking attempt %d failed, retrying: %+v", attempt, err)
		time.Sleep(bookingRetryBackoff * time.Duration(attempt))
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"date":           req.Date,
		"time":           slotTime,
	})

	return converter.AppointmentToResponse(appointment), nil
}

// GetMyBookings returns all appointments for the logged-in patient
func (u *bookingUsecase) GetMyBookings(ctx context.Context) (*dto.AppointmentListResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for patient %s: %+v", principal.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelBooking lets a patient cancel their own scheduled appointment. The
// status update is conditional on the stored status still being scheduled, so
// a cancel racing with a doctor-side transition cannot clobber it.
func (u *bookingUsecase) CancelBooking(ctx context.Context, appointmentID uuid.UUID) error {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if !principal.CanCancelOwnAppointment(appointment) {
		u.auditService.RecordDenied(u.db.WithContext(ctx), principal.UserID, entity.AuditActionAppointmentCancel, entity.JSON{
			"appointment_id": appointmentID.String(),
		})
		return ErrBookingNotOwned
	}

	rows, err := u.appointmentRepo.UpdateStatusFrom(u.db.WithContext(ctx), appointmentID,
		entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrBookingNotActive
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointmentID.String(),
	})

	return nil
}
