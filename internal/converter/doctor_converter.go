package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:            profile.UserID,
		LicenseNumber: profile.LicenseNumber,
		SpecialtyID:   profile.SpecialtyID,
		PhoneNumber:   profile.PhoneNumber,
		Biography:     profile.Biography,
	}

	if profile.User.ID != uuid.Nil {
		response.Email = profile.User.Email
		response.FullName = profile.User.FullName
		response.IsActive = profile.User.IsActive
	}
	if profile.Specialty.ID != 0 {
		response.SpecialtyName = profile.Specialty.Name
	}

	return response
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to response DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		resp := DoctorProfileToResponse(&profiles[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
