package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time     string    `json:"time" validate:"required"` // Format: HH:MM
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AppointmentResponse struct {
	ID        uuid.UUID               `json:"id"`
	Date      string                  `json:"date"`
	Time      string                  `json:"time"`
	Status    string                  `json:"status"`
	Doctor    *DoctorResponse         `json:"doctor,omitempty"`
	Patient   *PatientProfileResponse `json:"patient,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
