package entity

import "github.com/google/uuid"

// Principal is the authenticated identity a request acts as. Doctor and patient
// profiles are keyed by user ID, so UserID doubles as the linked profile ID for
// those roles. All permission decisions go through Principal methods so role
// checks are not re-implemented per endpoint.
type Principal struct {
	UserID uuid.UUID
	Email  string
	RoleID int
}

func (p Principal) IsAdmin() bool {
	return p.RoleID == RoleIDAdmin
}

func (p Principal) IsDoctor() bool {
	return p.RoleID == RoleIDDoctor
}

func (p Principal) IsPatient() bool {
	return p.RoleID == RoleIDPatient
}

// CanViewAppointment reports whether the principal may read the appointment:
// admins always, doctors and patients only their own.
func (p Principal) CanViewAppointment(a *Appointment) bool {
	if p.IsAdmin() {
		return true
	}
	if p.IsDoctor() {
		return a.DoctorID != nil && *a.DoctorID == p.UserID
	}
	if p.IsPatient() {
		return a.PatientID != nil && *a.PatientID == p.UserID
	}
	return false
}

// CanTransitionAppointment reports whether the principal may change the
// appointment status. Only the assigned doctor or an admin may; patients go
// through the self-cancel path instead.
func (p Principal) CanTransitionAppointment(a *Appointment) bool {
	if p.IsAdmin() {
		return true
	}
	return p.IsDoctor() && a.DoctorID != nil && *a.DoctorID == p.UserID
}

// CanCancelOwnAppointment reports whether the principal may self-cancel the
// appointment: patients only, on their own appointment. The scheduled-only
// restriction is enforced by the status transition itself.
func (p Principal) CanCancelOwnAppointment(a *Appointment) bool {
	return p.IsPatient() && a.PatientID != nil && *a.PatientID == p.UserID
}

// CanAttachMedicalRecord reports whether the principal may write a medical
// record for the appointment: the assigned doctor only.
func (p Principal) CanAttachMedicalRecord(a *Appointment) bool {
	return p.IsDoctor() && a.DoctorID != nil && *a.DoctorID == p.UserID
}
