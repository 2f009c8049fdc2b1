package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is the closed set of appointment lifecycle states.
// Scheduled is the only non-terminal state.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// ParseAppointmentStatus maps a wire value onto the closed enum.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted ||
		s == AppointmentStatusCancelled ||
		s == AppointmentStatusNoShow
}

// CanTransitionTo reports whether s -> next is a legal lifecycle transition.
// Only scheduled -> {completed, cancelled, no_show} is allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s != AppointmentStatusScheduled {
		return false
	}
	return next.IsTerminal()
}

// Appointment represents a scheduled (or historical) booking of a slot.
// At most one non-cancelled appointment may exist per (doctor, date, time);
// the partial unique index on those columns enforces it at commit time.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID  *uuid.UUID        `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	PatientID *uuid.UUID        `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Date      time.Time         `gorm:"type:date;not null;index" json:"date"`
	Time      string            `gorm:"type:time;not null" json:"time"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor         *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient        *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	MedicalRecords []MedicalRecord `gorm:"foreignKey:AppointmentID" json:"medical_records,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate assigns an ID so callers never insert the zero UUID.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsScheduled checks if the appointment is still in its initial state
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// AcceptsMedicalRecord reports whether a medical record may be attached.
// Records document an encounter, so cancelled and no-show appointments
// cannot receive one.
func (a *Appointment) AcceptsMedicalRecord() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusCompleted
}
