package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLabResultRequest struct {
	TestName string `json:"test_name" validate:"required"`
	Result   string `json:"result" validate:"omitempty"`
}

type CreateMedicalRecordRequest struct {
	AppointmentID uuid.UUID                `json:"appointment_id" validate:"required"`
	Symptoms      string                   `json:"symptoms" validate:"omitempty"`
	Diagnosis     string                   `json:"diagnosis" validate:"omitempty"`
	Treatment     string                   `json:"treatment" validate:"omitempty"`
	LabResults    []CreateLabResultRequest `json:"lab_results" validate:"omitempty,dive"`
}

type LabResultResponse struct {
	ID       int64  `json:"id"`
	TestName string `json:"test_name"`
	Result   string `json:"result,omitempty"`
}

type MedicalRecordResponse struct {
	ID            int64               `json:"id"`
	AppointmentID uuid.UUID           `json:"appointment_id"`
	Symptoms      string              `json:"symptoms,omitempty"`
	Diagnosis     string              `json:"diagnosis,omitempty"`
	Treatment     string              `json:"treatment,omitempty"`
	LabResults    []LabResultResponse `json:"lab_results,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
