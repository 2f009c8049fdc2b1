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

func newWorkShiftFixture(t *testing.T) (WorkShiftUsecase, *gorm.DB, *entity.DoctorProfile) {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	specialty := seedSpecialty(t, db, "Neurology")
	doctor := seedDoctor(t, db, specialty.ID)

	uc := NewWorkShiftUsecase(db, log,
		repository.NewWorkShiftRepository(),
		repository.NewDoctorProfileRepository(),
		newTestAuditService(log),
	)

	return uc, db, doctor
}

func TestCreateWorkShift_Success(t *testing.T) {
	uc, _, doctor := newWorkShiftFixture(t)
	ctx := ctxWithPrincipal(adminPrincipal())

	shift, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
		DoctorID:  doctor.UserID,
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	if err != nil {
		t.Fatalf("CreateWorkShift() error = %v", err)
	}
	if shift.StartTime != "09:00" || shift.EndTime != "12:00" {
		t.Errorf("shift times = %s-%s, want 09:00-12:00", shift.StartTime, shift.EndTime)
	}
}

func TestCreateWorkShift_Validation(t *testing.T) {
	uc, _, doctor := newWorkShiftFixture(t)
	ctx := ctxWithPrincipal(adminPrincipal())

	tests := []struct {
		name    string
		req     *dto.CreateWorkShiftRequest
		wantErr error
	}{
		{
			"bad date",
			&dto.CreateWorkShiftRequest{DoctorID: doctor.UserID, Date: "Sep 1", StartTime: "09:00", EndTime: "12:00"},
			ErrInvalidDateFormat,
		},
		{
			"bad time",
			&dto.CreateWorkShiftRequest{DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: "morning", EndTime: "12:00"},
			ErrInvalidTimeFormat,
		},
		{
			"end before start",
			&dto.CreateWorkShiftRequest{DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: "12:00", EndTime: "09:00"},
			ErrShiftRange,
		},
		{
			"zero length",
			&dto.CreateWorkShiftRequest{DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: "09:00", EndTime: "09:00"},
			ErrShiftRange,
		},
		{
			"unknown doctor",
			&dto.CreateWorkShiftRequest{DoctorID: uuid.New(), Date: "2026-09-01", StartTime: "09:00", EndTime: "12:00"},
			ErrDoctorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateWorkShift(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateWorkShift() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateWorkShift_Overlap(t *testing.T) {
	uc, _, doctor := newWorkShiftFixture(t)
	ctx := ctxWithPrincipal(adminPrincipal())

	if _, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
		DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("CreateWorkShift() error = %v", err)
	}

	overlapping := []struct{ start, end string }{
		{"08:00", "09:30"}, // tail overlaps
		{"11:30", "14:00"}, // head overlaps
		{"10:00", "11:00"}, // contained
		{"08:00", "13:00"}, // covers
	}
	for _, o := range overlapping {
		_, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
			DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: o.start, EndTime: o.end,
		})
		if !errors.Is(err, ErrShiftOverlap) {
			t.Errorf("CreateWorkShift(%s-%s) error = %v, want ErrShiftOverlap", o.start, o.end, err)
		}
	}

	// Touching at the boundary is allowed
	if _, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
		DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: "12:00", EndTime: "14:00",
	}); err != nil {
		t.Errorf("adjacent shift rejected: %v", err)
	}

	// Same window on another day is fine
	if _, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
		DoctorID: doctor.UserID, Date: "2026-09-02", StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Errorf("shift on another day rejected: %v", err)
	}
}

func TestCreateWorkShift_OverlapScopedToDoctor(t *testing.T) {
	uc, db, doctor := newWorkShiftFixture(t)
	ctx := ctxWithPrincipal(adminPrincipal())

	other := seedDoctor(t, db, doctor.SpecialtyID)

	if _, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
		DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("CreateWorkShift() error = %v", err)
	}

	if _, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
		DoctorID: other.UserID, Date: "2026-09-01", StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Errorf("same window for another doctor rejected: %v", err)
	}
}

func TestDeleteWorkShift(t *testing.T) {
	uc, _, doctor := newWorkShiftFixture(t)
	ctx := ctxWithPrincipal(adminPrincipal())

	shift, err := uc.CreateWorkShift(ctx, &dto.CreateWorkShiftRequest{
		DoctorID: doctor.UserID, Date: "2026-09-01", StartTime: "09:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("CreateWorkShift() error = %v", err)
	}

	if err := uc.DeleteWorkShift(ctx, shift.ID); err != nil {
		t.Fatalf("DeleteWorkShift() error = %v", err)
	}

	if err := uc.DeleteWorkShift(ctx, shift.ID); !errors.Is(err, ErrWorkShiftNotFound) {
		t.Fatalf("second DeleteWorkShift() error = %v, want ErrWorkShiftNotFound", err)
	}

	list, err := uc.GetDoctorWorkShifts(ctx, doctor.UserID)
	if err != nil {
		t.Fatalf("GetDoctorWorkShifts() error = %v", err)
	}
	if list.Total != 0 {
		t.Errorf("shifts remaining after delete = %d, want 0", list.Total)
	}
}
