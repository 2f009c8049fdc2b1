package usecase

import (
	"errors"
	"sync"
	"testing"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newBookingUsecase(t *testing.T) (BookingUsecase, *bookingFixture) {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	specialty := seedSpecialty(t, db, "Cardiology")
	doctor := seedDoctor(t, db, specialty.ID)
	patient := seedPatient(t, db)

	uc := NewBookingUsecase(
		db,
		log,
		repository.NewAppointmentRepository(),
		repository.NewDoctorProfileRepository(),
		repository.NewPatientProfileRepository(),
		newTestAuditService(log),
	)

	return uc, &bookingFixture{db: db, doctor: doctor, patient: patient}
}

type bookingFixture struct {
	db      *gorm.DB
	doctor  *entity.DoctorProfile
	patient *entity.PatientProfile
}

func TestCreateBooking_Success(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	booking, err := uc.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID,
		Date:     "2026-09-01",
		Time:     "09:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	if booking.Status != string(entity.AppointmentStatusScheduled) {
		t.Errorf("new booking status = %s, want scheduled", booking.Status)
	}
	if booking.Date != "2026-09-01" || booking.Time != "09:00" {
		t.Errorf("booking slot = %s %s, want 2026-09-01 09:00", booking.Date, booking.Time)
	}
}

func TestCreateBooking_SequentialConflict(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	req := &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID,
		Date:     "2026-09-01",
		Time:     "09:00",
	}

	if _, err := uc.CreateBooking(ctx, req); err != nil {
		t.Fatalf("first CreateBooking() error = %v", err)
	}

	_, err := uc.CreateBooking(ctx, req)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second CreateBooking() error = %v, want ErrSlotTaken", err)
	}
}

func TestCreateBooking_ConcurrentConflict(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	req := &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID,
		Date:     "2026-09-01",
		Time:     "10:30",
	}

	const racers = 8
	results := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.CreateBooking(ctx, req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotTaken):
		default:
			t.Errorf("racer %d returned unexpected error: %v", i, err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one concurrent booking must win, got %d", succeeded)
	}
}

func TestCreateBooking_DifferentSlotsBothSucceed(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	if _, err := uc.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID, Date: "2026-09-01", Time: "09:00",
	}); err != nil {
		t.Fatalf("CreateBooking(09:00) error = %v", err)
	}
	if _, err := uc.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID, Date: "2026-09-01", Time: "09:30",
	}); err != nil {
		t.Fatalf("CreateBooking(09:30) error = %v", err)
	}
	// Same time on another day is a different slot too
	if _, err := uc.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID, Date: "2026-09-02", Time: "09:00",
	}); err != nil {
		t.Fatalf("CreateBooking(next day) error = %v", err)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	tests := []struct {
		name    string
		req     *dto.CreateBookingRequest
		wantErr error
	}{
		{
			"bad date",
			&dto.CreateBookingRequest{DoctorID: fx.doctor.UserID, Date: "01-09-2026", Time: "09:00"},
			ErrInvalidDateFormat,
		},
		{
			"bad time",
			&dto.CreateBookingRequest{DoctorID: fx.doctor.UserID, Date: "2026-09-01", Time: "9am"},
			ErrInvalidTimeFormat,
		},
		{
			"unknown doctor",
			&dto.CreateBookingRequest{DoctorID: uuid.New(), Date: "2026-09-01", Time: "09:00"},
			ErrDoctorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateBooking(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateBooking() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCancelBooking_FreesSlot(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	req := &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID,
		Date:     "2026-09-01",
		Time:     "11:00",
	}

	booking, err := uc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	if err := uc.CancelBooking(ctx, booking.ID); err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}

	// The cancelled row no longer blocks the slot
	rebooked, err := uc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("rebooking after cancel error = %v", err)
	}
	if rebooked.ID == booking.ID {
		t.Error("rebooking must create a new appointment")
	}
}

func TestCancelBooking_OnlyOwnerMayCancel(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	booking, err := uc.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID,
		Date:     "2026-09-01",
		Time:     "09:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	stranger := entity.Principal{UserID: uuid.New(), RoleID: entity.RoleIDPatient}
	err = uc.CancelBooking(ctxWithPrincipal(stranger), booking.ID)
	if !errors.Is(err, ErrBookingNotOwned) {
		t.Fatalf("CancelBooking() by stranger error = %v, want ErrBookingNotOwned", err)
	}
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	booking, err := uc.CreateBooking(ctx, &dto.CreateBookingRequest{
		DoctorID: fx.doctor.UserID,
		Date:     "2026-09-01",
		Time:     "09:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	if err := uc.CancelBooking(ctx, booking.ID); err != nil {
		t.Fatalf("first CancelBooking() error = %v", err)
	}

	err = uc.CancelBooking(ctx, booking.ID)
	if !errors.Is(err, ErrBookingNotActive) {
		t.Fatalf("second CancelBooking() error = %v, want ErrBookingNotActive", err)
	}
}

func TestGetMyBookings(t *testing.T) {
	uc, fx := newBookingUsecase(t)
	ctx := ctxWithPrincipal(patientPrincipal(fx.patient))

	for _, slot := range []string{"09:00", "09:30"} {
		if _, err := uc.CreateBooking(ctx, &dto.CreateBookingRequest{
			DoctorID: fx.doctor.UserID, Date: "2026-09-01", Time: slot,
		}); err != nil {
			t.Fatalf("CreateBooking(%s) error = %v", slot, err)
		}
	}

	list, err := uc.GetMyBookings(ctx)
	if err != nil {
		t.Fatalf("GetMyBookings() error = %v", err)
	}
	if list.Total != 2 {
		t.Errorf("GetMyBookings() total = %d, want 2", list.Total)
	}

	// Another patient's view is empty
	other := seedPatient(t, fx.db)
	otherList, err := uc.GetMyBookings(ctxWithPrincipal(patientPrincipal(other)))
	if err != nil {
		t.Fatalf("GetMyBookings() for other patient error = %v", err)
	}
	if otherList.Total != 0 {
		t.Errorf("other patient sees %d bookings, want 0", otherList.Total)
	}
}
