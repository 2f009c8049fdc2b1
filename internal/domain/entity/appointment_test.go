package entity

import "testing"

func TestParseAppointmentStatus(t *testing.T) {
	tests := []struct {
		input string
		want  AppointmentStatus
		valid bool
	}{
		{"scheduled", AppointmentStatusScheduled, true},
		{"completed", AppointmentStatusCompleted, true},
		{"cancelled", AppointmentStatusCancelled, true},
		{"no_show", AppointmentStatusNoShow, true},
		{"Scheduled", "", false},
		{"noshow", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, valid := ParseAppointmentStatus(tt.input)
		if valid != tt.valid || got != tt.want {
			t.Errorf("ParseAppointmentStatus(%q) = (%q, %v), want (%q, %v)", tt.input, got, valid, tt.want, tt.valid)
		}
	}
}

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	all := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	}

	// Scheduled may move to any terminal state, never to itself.
	for _, next := range all {
		want := next != AppointmentStatusScheduled
		if got := AppointmentStatusScheduled.CanTransitionTo(next); got != want {
			t.Errorf("scheduled -> %s = %v, want %v", next, got, want)
		}
	}

	// Terminal states never transition anywhere.
	for _, from := range all[1:] {
		for _, next := range all {
			if from.CanTransitionTo(next) {
				t.Errorf("%s -> %s allowed, terminal states must not transition", from, next)
			}
		}
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	if AppointmentStatusScheduled.IsTerminal() {
		t.Error("scheduled must not be terminal")
	}
	for _, s := range []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow} {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}

func TestAppointment_AcceptsMedicalRecord(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{AppointmentStatusScheduled, true},
		{AppointmentStatusCompleted, true},
		{AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.status}
		if got := a.AcceptsMedicalRecord(); got != tt.want {
			t.Errorf("AcceptsMedicalRecord() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
