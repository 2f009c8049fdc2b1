package usecase

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newAvailabilityFixture(t *testing.T) (AvailabilityUsecase, BookingUsecase, *gorm.DB, *entity.DoctorProfile, *entity.PatientProfile) {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	specialty := seedSpecialty(t, db, "Dermatology")
	doctor := seedDoctor(t, db, specialty.ID)
	patient := seedPatient(t, db)

	availability := NewAvailabilityUsecase(db, log,
		repository.NewWorkShiftRepository(),
		repository.NewAppointmentRepository(),
	)
	booking := NewBookingUsecase(db, log,
		repository.NewAppointmentRepository(),
		repository.NewDoctorProfileRepository(),
		repository.NewPatientProfileRepository(),
		newTestAuditService(log),
	)

	return availability, booking, db, doctor, patient
}

func TestGetAvailableSlots_NoShifts(t *testing.T) {
	availability, _, _, doctor, _ := newAvailabilityFixture(t)

	resp, err := availability.GetAvailableSlots(context.Background(), doctor.UserID, "2026-09-01")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}
	if resp.Total != 0 || len(resp.Slots) != 0 {
		t.Errorf("doctor without shifts must have no slots, got %v", resp.Slots)
	}
}

func TestGetAvailableSlots_UnknownDoctor(t *testing.T) {
	availability, _, _, _, _ := newAvailabilityFixture(t)

	resp, err := availability.GetAvailableSlots(context.Background(), uuid.New(), "2026-09-01")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Errorf("unknown doctor must yield empty slots, got %v", resp.Slots)
	}
}

func TestGetAvailableSlots_InvalidDate(t *testing.T) {
	availability, _, _, doctor, _ := newAvailabilityFixture(t)

	_, err := availability.GetAvailableSlots(context.Background(), doctor.UserID, "09/01/2026")
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("GetAvailableSlots() error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestGetAvailableSlots_ExcludesBookedAndRestoresCancelled(t *testing.T) {
	availability, booking, db, doctor, patient := newAvailabilityFixture(t)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	seedShift(t, db, doctor.UserID, date, "09:00", "11:00")

	ctx := ctxWithPrincipal(patientPrincipal(patient))
	booked, err := booking.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: doctor.UserID,
		Date:     "2026-09-01",
		Time:     "09:30",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	resp, err := availability.GetAvailableSlots(context.Background(), doctor.UserID, "2026-09-01")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}
	want := []string{"09:00", "10:00", "10:30"}
	if !reflect.DeepEqual(resp.Slots, want) {
		t.Errorf("slots after booking = %v, want %v", resp.Slots, want)
	}

	// Cancelling frees the slot again
	if err := booking.CancelBooking(ctx, booked.ID); err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}

	resp, err = availability.GetAvailableSlots(context.Background(), doctor.UserID, "2026-09-01")
	if err != nil {
		t.Fatalf("GetAvailableSlots() after cancel error = %v", err)
	}
	want = []string{"09:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(resp.Slots, want) {
		t.Errorf("slots after cancel = %v, want %v", resp.Slots, want)
	}
}

func TestGetAvailableSlots_MultipleShiftsSorted(t *testing.T) {
	availability, _, db, doctor, _ := newAvailabilityFixture(t)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// Seeded out of order on purpose
	seedShift(t, db, doctor.UserID, date, "14:00", "15:00")
	seedShift(t, db, doctor.UserID, date, "09:00", "10:00")

	resp, err := availability.GetAvailableSlots(context.Background(), doctor.UserID, "2026-09-01")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}

	want := []string{"09:00", "09:30", "14:00", "14:30"}
	if !reflect.DeepEqual(resp.Slots, want) {
		t.Errorf("slots = %v, want %v", resp.Slots, want)
	}
	if !sort.StringsAreSorted(resp.Slots) {
		t.Errorf("slots not sorted: %v", resp.Slots)
	}
	if resp.SlotDurationMinutes != 30 {
		t.Errorf("slot duration = %d, want 30", resp.SlotDurationMinutes)
	}
}

func TestGetAvailableSlots_OtherDayBookingDoesNotLeak(t *testing.T) {
	availability, booking, db, doctor, patient := newAvailabilityFixture(t)

	seedShift(t, db, doctor.UserID, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:00", "10:00")
	seedShift(t, db, doctor.UserID, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), "09:00", "10:00")

	ctx := ctxWithPrincipal(patientPrincipal(patient))
	if _, err := booking.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: doctor.UserID,
		Date:     "2026-09-02",
		Time:     "09:00",
	}); err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	resp, err := availability.GetAvailableSlots(context.Background(), doctor.UserID, "2026-09-01")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}
	want := []string{"09:00", "09:30"}
	if !reflect.DeepEqual(resp.Slots, want) {
		t.Errorf("slots = %v, want %v; a booking on another day must not affect this day", resp.Slots, want)
	}
}
