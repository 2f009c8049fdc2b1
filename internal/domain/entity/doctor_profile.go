package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	SpecialtyID   int       `gorm:"not null;index" json:"specialty_id"`
	PhoneNumber   string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Biography     string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialty    Specialty     `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	WorkShifts   []WorkShift   `gorm:"foreignKey:DoctorID" json:"work_shifts,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
