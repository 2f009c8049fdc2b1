package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestPrincipal_CanViewAppointment(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	otherID := uuid.New()

	appointment := &Appointment{
		DoctorID:  &doctorID,
		PatientID: &patientID,
	}

	tests := []struct {
		name      string
		principal Principal
		want      bool
	}{
		{"admin sees everything", Principal{UserID: otherID, RoleID: RoleIDAdmin}, true},
		{"assigned doctor", Principal{UserID: doctorID, RoleID: RoleIDDoctor}, true},
		{"other doctor", Principal{UserID: otherID, RoleID: RoleIDDoctor}, false},
		{"owning patient", Principal{UserID: patientID, RoleID: RoleIDPatient}, true},
		{"other patient", Principal{UserID: otherID, RoleID: RoleIDPatient}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.principal.CanViewAppointment(appointment); got != tt.want {
				t.Errorf("CanViewAppointment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrincipal_CanTransitionAppointment(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	appointment := &Appointment{
		DoctorID:  &doctorID,
		PatientID: &patientID,
	}

	admin := Principal{UserID: uuid.New(), RoleID: RoleIDAdmin}
	if !admin.CanTransitionAppointment(appointment) {
		t.Error("admin must be able to transition any appointment")
	}

	assigned := Principal{UserID: doctorID, RoleID: RoleIDDoctor}
	if !assigned.CanTransitionAppointment(appointment) {
		t.Error("assigned doctor must be able to transition")
	}

	other := Principal{UserID: uuid.New(), RoleID: RoleIDDoctor}
	if other.CanTransitionAppointment(appointment) {
		t.Error("unassigned doctor must not be able to transition")
	}

	patient := Principal{UserID: patientID, RoleID: RoleIDPatient}
	if patient.CanTransitionAppointment(appointment) {
		t.Error("patients must use the self-cancel path, not status transitions")
	}
}

func TestPrincipal_CanCancelOwnAppointment(t *testing.T) {
	patientID := uuid.New()
	appointment := &Appointment{PatientID: &patientID}

	owner := Principal{UserID: patientID, RoleID: RoleIDPatient}
	if !owner.CanCancelOwnAppointment(appointment) {
		t.Error("owning patient must be able to cancel")
	}

	stranger := Principal{UserID: uuid.New(), RoleID: RoleIDPatient}
	if stranger.CanCancelOwnAppointment(appointment) {
		t.Error("another patient must not be able to cancel")
	}

	admin := Principal{UserID: patientID, RoleID: RoleIDAdmin}
	if admin.CanCancelOwnAppointment(appointment) {
		t.Error("self-cancel is a patient capability only")
	}
}

func TestPrincipal_CanAttachMedicalRecord(t *testing.T) {
	doctorID := uuid.New()
	appointment := &Appointment{DoctorID: &doctorID}

	assigned := Principal{UserID: doctorID, RoleID: RoleIDDoctor}
	if !assigned.CanAttachMedicalRecord(appointment) {
		t.Error("assigned doctor must be able to attach a record")
	}

	other := Principal{UserID: uuid.New(), RoleID: RoleIDDoctor}
	if other.CanAttachMedicalRecord(appointment) {
		t.Error("unassigned doctor must not be able to attach a record")
	}

	admin := Principal{UserID: doctorID, RoleID: RoleIDAdmin}
	if admin.CanAttachMedicalRecord(appointment) {
		t.Error("record writing is a doctor capability only")
	}
}
