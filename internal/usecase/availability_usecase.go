package usecase

import (
	"context"
	"time"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	workShiftRepo   repository.WorkShiftRepository
	appointmentRepo repository.AppointmentRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	workShiftRepo repository.WorkShiftRepository,
	appointmentRepo repository.AppointmentRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		workShiftRepo:   workShiftRepo,
		appointmentRepo: appointmentRepo,
	}
}

// GetAvailableSlots lists the free slots for a doctor on a date.
//
// The result reflects a consistent read at query time; a slot may be taken by
// the time the caller books it, and the booking path re-validates. An unknown
// doctor simply has no shifts, which yields an empty slot list rather than an
// error, so this endpoint leaks nothing about which doctor IDs exist.
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	shifts, err := u.workShiftRepo.FindByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find work shifts for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	bookedTimes, err := u.appointmentRepo.FindBookedTimes(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find booked times for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		normalized, err := scheduling.NormalizeClock(t)
		if err != nil {
			u.log.Warnf("Skipping unparseable booked time %q for doctor %s: %+v", t, doctorID, err)
			continue
		}
		booked[normalized] = struct{}{}
	}

	slots := scheduling.ComputeSlots(shifts, booked, scheduling.SlotDuration)

	return &dto.AvailabilityResponse{
		DoctorID:            doctorID,
		Date:                day.Format("2006-01-02"),
		SlotDurationMinutes: int(scheduling.SlotDuration.Minutes()),
		Slots:               slots,
		Total:               len(slots),
	}, nil
}
