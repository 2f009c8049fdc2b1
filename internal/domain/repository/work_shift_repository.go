package repository

import (
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkShiftRepository interface {
	Create(db *gorm.DB, shift *entity.WorkShift) error
	FindByID(db *gorm.DB, id int) (*entity.WorkShift, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.WorkShift, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WorkShift, error)
	Delete(db *gorm.DB, id int) error
}
