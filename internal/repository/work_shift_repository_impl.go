package repository

import (
	"errors"
	"time"

	"clinic-appointment-api/internal/domain/entity"
	domainRepo "clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workShiftRepository struct{}

func NewWorkShiftRepository() domainRepo.WorkShiftRepository {
	return &workShiftRepository{}
}

func (r *workShiftRepository) Create(db *gorm.DB, shift *entity.WorkShift) error {
	return db.Create(shift).Error
}

func (r *workShiftRepository) FindByID(db *gorm.DB, id int) (*entity.WorkShift, error) {
	var shift entity.WorkShift
	err := db.Where("id = ?", id).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *workShiftRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.WorkShift, error) {
	var shifts []entity.WorkShift
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *workShiftRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WorkShift, error) {
	var shifts []entity.WorkShift
	err := db.Where("doctor_id = ?", doctorID).
		Order("date ASC, start_time ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *workShiftRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.WorkShift{}, "id = ?", id).Error
}
