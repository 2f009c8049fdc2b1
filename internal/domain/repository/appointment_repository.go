package repository

import (
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)

	// FindActiveSlot returns the non-cancelled appointment occupying
	// (doctorID, date, timeOfDay), or nil when the slot is free.
	FindActiveSlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error)

	// FindBookedTimes returns the start times of all non-cancelled
	// appointments for the doctor on the date.
	FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error)

	// UpdateStatusFrom transitions the appointment status only when the stored
	// status still equals from. Returns the number of rows affected: 1 on
	// success, 0 when the appointment was concurrently transitioned away.
	UpdateStatusFrom(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)

	Delete(db *gorm.DB, id uuid.UUID) error
}
