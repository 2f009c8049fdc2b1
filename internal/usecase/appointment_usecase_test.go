package usecase

import (
	"errors"
	"testing"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentFixture struct {
	db      *gorm.DB
	doctor  *entity.DoctorProfile
	patient *entity.PatientProfile
	booking *dto.AppointmentResponse
}

func newAppointmentFixture(t *testing.T) (AppointmentUsecase, *appointmentFixture) {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	specialty := seedSpecialty(t, db, "Pediatrics")
	doctor := seedDoctor(t, db, specialty.ID)
	patient := seedPatient(t, db)

	bookingUC := NewBookingUsecase(db, log,
		repository.NewAppointmentRepository(),
		repository.NewDoctorProfileRepository(),
		repository.NewPatientProfileRepository(),
		newTestAuditService(log),
	)
	booking, err := bookingUC.CreateBooking(ctxWithPrincipal(patientPrincipal(patient)), &dto.CreateBookingRequest{
		DoctorID: doctor.UserID,
		Date:     "2026-09-01",
		Time:     "09:00",
	})
	if err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}

	uc := NewAppointmentUsecase(db, log,
		repository.NewAppointmentRepository(),
		newTestAuditService(log),
	)

	return uc, &appointmentFixture{db: db, doctor: doctor, patient: patient, booking: booking}
}

func TestUpdateStatus_DoctorCompletes(t *testing.T) {
	uc, fx := newAppointmentFixture(t)
	ctx := ctxWithPrincipal(doctorPrincipal(fx.doctor))

	updated, err := uc.UpdateStatus(ctx, fx.booking.ID, &dto.UpdateAppointmentStatusRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != "completed" {
		t.Errorf("status = %s, want completed", updated.Status)
	}
}

func TestUpdateStatus_TerminalIsFinal(t *testing.T) {
	uc, fx := newAppointmentFixture(t)
	ctx := ctxWithPrincipal(doctorPrincipal(fx.doctor))

	if _, err := uc.UpdateStatus(ctx, fx.booking.ID, &dto.UpdateAppointmentStatusRequest{Status: "no_show"}); err != nil {
		t.Fatalf("first UpdateStatus() error = %v", err)
	}

	for _, next := range []string{"scheduled", "completed", "cancelled", "no_show"} {
		_, err := uc.UpdateStatus(ctx, fx.booking.ID, &dto.UpdateAppointmentStatusRequest{Status: next})
		if next == "scheduled" {
			// scheduled is not reachable from any state
			if !errors.Is(err, ErrStatusFinal) {
				t.Errorf("UpdateStatus(%s) error = %v, want ErrStatusFinal", next, err)
			}
			continue
		}
		if !errors.Is(err, ErrStatusFinal) {
			t.Errorf("UpdateStatus(%s) after no_show error = %v, want ErrStatusFinal", next, err)
		}
	}
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	uc, fx := newAppointmentFixture(t)
	ctx := ctxWithPrincipal(doctorPrincipal(fx.doctor))

	_, err := uc.UpdateStatus(ctx, fx.booking.ID, &dto.UpdateAppointmentStatusRequest{Status: "done"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("UpdateStatus() error = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateStatus_UnassignedDoctorDenied(t *testing.T) {
	uc, fx := newAppointmentFixture(t)

	other := seedDoctor(t, fx.db, fx.doctor.SpecialtyID)
	_, err := uc.UpdateStatus(ctxWithPrincipal(doctorPrincipal(other)), fx.booking.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "completed"})
	if !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("UpdateStatus() by unassigned doctor error = %v, want ErrNotAllowed", err)
	}
}

func TestUpdateStatus_AdminAllowed(t *testing.T) {
	uc, fx := newAppointmentFixture(t)

	_, err := uc.UpdateStatus(ctxWithPrincipal(adminPrincipal()), fx.booking.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "cancelled"})
	if err != nil {
		t.Fatalf("UpdateStatus() by admin error = %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	uc, _ := newAppointmentFixture(t)

	_, err := uc.UpdateStatus(ctxWithPrincipal(adminPrincipal()), uuid.New(),
		&dto.UpdateAppointmentStatusRequest{Status: "completed"})
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("UpdateStatus() error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestGetAppointment_Scoping(t *testing.T) {
	uc, fx := newAppointmentFixture(t)

	// Owner, assigned doctor and admin can read it
	for _, p := range []entity.Principal{
		patientPrincipal(fx.patient),
		doctorPrincipal(fx.doctor),
		adminPrincipal(),
	} {
		if _, err := uc.GetAppointment(ctxWithPrincipal(p), fx.booking.ID); err != nil {
			t.Errorf("GetAppointment() as role %d error = %v", p.RoleID, err)
		}
	}

	// An unrelated patient cannot
	stranger := seedPatient(t, fx.db)
	_, err := uc.GetAppointment(ctxWithPrincipal(patientPrincipal(stranger)), fx.booking.ID)
	if !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("GetAppointment() by stranger error = %v, want ErrNotAllowed", err)
	}
}

func TestGetAppointments_ScopedLists(t *testing.T) {
	uc, fx := newAppointmentFixture(t)

	list, err := uc.GetAppointments(ctxWithPrincipal(patientPrincipal(fx.patient)))
	if err != nil {
		t.Fatalf("GetAppointments() as patient error = %v", err)
	}
	if list.Total != 1 {
		t.Errorf("patient list total = %d, want 1", list.Total)
	}

	list, err = uc.GetAppointments(ctxWithPrincipal(doctorPrincipal(fx.doctor)))
	if err != nil {
		t.Fatalf("GetAppointments() as doctor error = %v", err)
	}
	if list.Total != 1 {
		t.Errorf("doctor list total = %d, want 1", list.Total)
	}

	stranger := seedPatient(t, fx.db)
	list, err = uc.GetAppointments(ctxWithPrincipal(patientPrincipal(stranger)))
	if err != nil {
		t.Fatalf("GetAppointments() as stranger error = %v", err)
	}
	if list.Total != 0 {
		t.Errorf("stranger list total = %d, want 0", list.Total)
	}
}

func TestDeleteAppointment(t *testing.T) {
	uc, fx := newAppointmentFixture(t)
	ctx := ctxWithPrincipal(adminPrincipal())

	if err := uc.DeleteAppointment(ctx, fx.booking.ID); err != nil {
		t.Fatalf("DeleteAppointment() error = %v", err)
	}

	err := uc.DeleteAppointment(ctx, fx.booking.ID)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("second DeleteAppointment() error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestGetDoctorWorklist_InvalidPeriod(t *testing.T) {
	uc, fx := newAppointmentFixture(t)

	_, err := uc.GetDoctorWorklist(ctxWithPrincipal(doctorPrincipal(fx.doctor)), "month")
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("GetDoctorWorklist() error = %v, want ErrInvalidPeriod", err)
	}
}
