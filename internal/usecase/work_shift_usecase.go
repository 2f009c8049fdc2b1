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
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrShiftRange        = errors.New("shift end time must be after start time")
	ErrShiftOverlap      = errors.New("shift overlaps an existing shift for this doctor")
	ErrWorkShiftNotFound = errors.New("work shift not found")
)

type WorkShiftUsecase interface {
	CreateWorkShift(ctx context.Context, req *dto.CreateWorkShiftRequest) (*dto.WorkShiftResponse, error)
	GetDoctorWorkShifts(ctx context.Context, doctorID uuid.UUID) (*dto.WorkShiftListResponse, error)
	DeleteWorkShift(ctx context.Context, id int) error
}

type workShiftUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	workShiftRepo repository.WorkShiftRepository
	doctorRepo    repository.DoctorProfileRepository
	auditService  service.AuditService
}

func NewWorkShiftUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	workShiftRepo repository.WorkShiftRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) WorkShiftUsecase {
	return &workShiftUsecase{
		db:            db,
		log:           log,
		workShiftRepo: workShiftRepo,
		doctorRepo:    doctorRepo,
		auditService:  auditService,
	}
}

// CreateWorkShift registers an availability window for a doctor. Shifts for
// the same doctor and date must not overlap; two shifts may touch at a
// boundary (one ends 12:00, the next starts 12:00).
func (u *workShiftUsecase) CreateWorkShift(ctx context.Context, req *dto.CreateWorkShiftRequest) (*dto.WorkShiftResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	start, err := time.Parse(scheduling.ClockLayout, req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	end, err := time.Parse(scheduling.ClockLayout, req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !start.Before(end) {
		return nil, ErrShiftRange
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	shift := &entity.WorkShift{
		DoctorID:  req.DoctorID,
		Date:      date,
		StartTime: start.Format(scheduling.ClockLayout),
		EndTime:   end.Format(scheduling.ClockLayout),
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := u.workShiftRepo.FindByDoctorAndDate(tx, req.DoctorID, date)
		if err != nil {
			return err
		}
		for _, other := range existing {
			otherStart, err := scheduling.ParseClock(other.StartTime)
			if err != nil {
				continue
			}
			otherEnd, err := scheduling.ParseClock(other.EndTime)
			if err != nil {
				continue
			}
			if start.Before(otherEnd) && otherStart.Before(end) {
				return ErrShiftOverlap
			}
		}
		return u.workShiftRepo.Create(tx, shift)
	})
	if err != nil {
		if errors.Is(err, ErrShiftOverlap) {
			return nil, ErrShiftOverlap
		}
		u.log.Warnf("Failed to create work shift for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionWorkShiftCreate, entity.JSON{
		"work_shift_id": shift.ID,
		"doctor_id":     req.DoctorID.String(),
		"date":          req.Date,
	})

	return converter.WorkShiftToResponse(shift), nil
}

// GetDoctorWorkShifts returns all shifts registered for a doctor
func (u *workShiftUsecase) GetDoctorWorkShifts(ctx context.Context, doctorID uuid.UUID) (*dto.WorkShiftListResponse, error) {
	shifts, err := u.workShiftRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find work shifts for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.WorkShiftListResponse{
		WorkShifts: converter.WorkShiftsToResponses(shifts),
		Total:      len(shifts),
	}, nil
}

// DeleteWorkShift removes an availability window. Existing appointments are
// not touched; they were booked against the schedule as it stood.
func (u *workShiftUsecase) DeleteWorkShift(ctx context.Context, id int) error {
	shift, err := u.workShiftRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find work shift %d: %+v", id, err)
		return err
	}
	if shift == nil {
		return ErrWorkShiftNotFound
	}

	return u.workShiftRepo.Delete(u.db.WithContext(ctx), id)
}
