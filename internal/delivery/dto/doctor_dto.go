package dto

import "github.com/google/uuid"

type CreateDoctorRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FullName      string `json:"full_name" validate:"required,min=2"`
	LicenseNumber string `json:"license_number" validate:"required"`
	SpecialtyID   int    `json:"specialty_id" validate:"required,gt=0"`
	PhoneNumber   string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Biography     string `json:"biography" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2"`
	SpecialtyID int    `json:"specialty_id" validate:"omitempty,gt=0"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Biography   string `json:"biography" validate:"omitempty"`
}

type DoctorResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email,omitempty"`
	FullName      string    `json:"full_name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	SpecialtyID   int       `json:"specialty_id"`
	SpecialtyName string    `json:"specialty_name,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Biography     string    `json:"biography,omitempty"`
	IsActive      bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
