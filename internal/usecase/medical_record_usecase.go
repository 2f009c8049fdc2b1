package usecase

import (
	"context"
	"errors"

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

var ErrRecordNotAllowed = errors.New("appointment does not accept a medical record")

type MedicalRecordUsecase interface {
	CreateRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	GetRecordsByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.MedicalRecordListResponse, error)
}

type medicalRecordUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	recordRepo      repository.MedicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:              db,
		log:             log,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// CreateRecord attaches an encounter record to an appointment. Only the
// assigned doctor may write one, and only while the appointment is scheduled
// or completed.
func (u *medicalRecordUsecase) CreateRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !principal.CanAttachMedicalRecord(appointment) {
		u.auditService.RecordDenied(u.db.WithContext(ctx), principal.UserID, entity.AuditActionMedicalRecordCreate, entity.JSON{
			"appointment_id": req.AppointmentID.String(),
		})
		return nil, ErrNotAllowed
	}

	if !appointment.AcceptsMedicalRecord() {
		return nil, ErrRecordNotAllowed
	}

	record := &entity.MedicalRecord{
		AppointmentID: req.AppointmentID,
		Symptoms:      req.Symptoms,
		Diagnosis:     req.Diagnosis,
		Treatment:     req.Treatment,
	}
	for _, lab := range req.LabResults {
		record.LabResults = append(record.LabResults, entity.LabResult{
			TestName: lab.TestName,
			Result:   lab.Result,
		})
	}

	// Create cascades to the lab result rows
	if err := u.recordRepo.Create(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create medical record for appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionMedicalRecordCreate, entity.JSON{
		"appointment_id": req.AppointmentID.String(),
		"record_id":      record.ID,
	})

	return converter.MedicalRecordToResponse(record), nil
}

// GetRecordsByAppointment lists the records of an appointment the caller may
// view: its doctor, its patient, or an admin.
func (u *medicalRecordUsecase) GetRecordsByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !principal.CanViewAppointment(appointment) {
		u.auditService.RecordDenied(u.db.WithContext(ctx), principal.UserID, entity.AuditActionMedicalRecordCreate, entity.JSON{
			"appointment_id": appointmentID.String(),
			"operation":      "view",
		})
		return nil, ErrNotAllowed
	}

	records, err := u.recordRepo.FindByAppointmentID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to list medical records for appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
