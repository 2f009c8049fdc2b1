package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord represents the findings a doctor records for an appointment
type MedicalRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Symptoms      string    `gorm:"type:text" json:"symptoms,omitempty"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment     string    `gorm:"type:text" json:"treatment,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	LabResults  []LabResult `gorm:"foreignKey:RecordID" json:"lab_results,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// LabResult represents a single lab finding attached to a medical record
type LabResult struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RecordID int64  `gorm:"not null;index" json:"record_id"`
	TestName string `gorm:"type:varchar(255);not null" json:"test_name"`
	Result   string `gorm:"type:text" json:"result,omitempty"`

	// Relationships
	Record MedicalRecord `gorm:"foreignKey:RecordID" json:"record,omitempty"`
}

func (LabResult) TableName() string {
	return "lab_results"
}
