package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkShiftRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime string    `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime   string    `json:"end_time" validate:"required"`   // Format: HH:MM
}

type WorkShiftResponse struct {
	ID        int       `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkShiftListResponse struct {
	WorkShifts []WorkShiftResponse `json:"work_shifts"`
	Total      int                 `json:"total"`
}

type AvailabilityResponse struct {
	DoctorID            uuid.UUID `json:"doctor_id"`
	Date                string    `json:"date"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	Slots               []string  `json:"slots"`
	Total               int       `json:"total"`
}
