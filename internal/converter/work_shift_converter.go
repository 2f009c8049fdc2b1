package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
)

// WorkShiftToResponse converts a WorkShift entity to WorkShiftResponse DTO
func WorkShiftToResponse(shift *entity.WorkShift) *dto.WorkShiftResponse {
	if shift == nil {
		return nil
	}

	return &dto.WorkShiftResponse{
		ID:        shift.ID,
		DoctorID:  shift.DoctorID,
		Date:      shift.Date.Format("2006-01-02"),
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		CreatedAt: shift.CreatedAt,
		UpdatedAt: shift.UpdatedAt,
	}
}

// WorkShiftsToResponses converts a slice of WorkShift entities to response DTOs
func WorkShiftsToResponses(shifts []entity.WorkShift) []dto.WorkShiftResponse {
	responses := make([]dto.WorkShiftResponse, len(shifts))
	for i := range shifts {
		resp := WorkShiftToResponse(&shifts[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
