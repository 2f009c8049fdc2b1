package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
)

// MedicalRecordToResponse converts a MedicalRecord entity to MedicalRecordResponse DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	labResults := make([]dto.LabResultResponse, len(record.LabResults))
	for i, lab := range record.LabResults {
		labResults[i] = dto.LabResultResponse{
			ID:       lab.ID,
			TestName: lab.TestName,
			Result:   lab.Result,
		}
	}

	return &dto.MedicalRecordResponse{
		ID:            record.ID,
		AppointmentID: record.AppointmentID,
		Symptoms:      record.Symptoms,
		Diagnosis:     record.Diagnosis,
		Treatment:     record.Treatment,
		LabResults:    labResults,
		CreatedAt:     record.CreatedAt,
	}
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to response DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		resp := MedicalRecordToResponse(&records[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
