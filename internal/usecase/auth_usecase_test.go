package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/repository"
)

// Redis-backed paths (login, logout, refresh) need a live token store and are
// exercised against a real deployment; these tests cover the registration
// flow, which only touches the database.
func newAuthUsecase(t *testing.T) AuthUsecase {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	return NewAuthUsecase(db, log,
		repository.NewUserRepository(),
		repository.NewPatientProfileRepository(),
		repository.NewRoleRepository(),
		nil,
		nil,
		newTestAuditService(log),
	)
}

func TestRegisterPatient_Success(t *testing.T) {
	uc := newAuthUsecase(t)

	user, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:       "jane@clinic.test",
		Password:    "secret123",
		FullName:    "Jane Doe",
		DateOfBirth: "1990-05-20",
		Gender:      entity.GenderFemale,
	})
	if err != nil {
		t.Fatalf("RegisterPatient() error = %v", err)
	}
	if user.Role != entity.RolePatient {
		t.Errorf("role = %s, want patient", user.Role)
	}
	if user.Email != "jane@clinic.test" {
		t.Errorf("email = %s", user.Email)
	}
}

func TestRegisterPatient_DuplicateEmail(t *testing.T) {
	uc := newAuthUsecase(t)

	req := &dto.RegisterPatientRequest{
		Email:       "dup@clinic.test",
		Password:    "secret123",
		FullName:    "First",
		DateOfBirth: "1990-05-20",
		Gender:      entity.GenderMale,
	}
	if _, err := uc.RegisterPatient(context.Background(), req); err != nil {
		t.Fatalf("first RegisterPatient() error = %v", err)
	}

	_, err := uc.RegisterPatient(context.Background(), req)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("second RegisterPatient() error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestRegisterPatient_BadDateOfBirth(t *testing.T) {
	uc := newAuthUsecase(t)

	_, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:       "bad@clinic.test",
		Password:    "secret123",
		FullName:    "Bad Date",
		DateOfBirth: "20/05/1990",
		Gender:      entity.GenderMale,
	})
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("RegisterPatient() error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	uc := newAuthUsecase(t)

	_, err := uc.GetCurrentUser(context.Background(), entity.Principal{}.UserID)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetCurrentUser() error = %v, want ErrUserNotFound", err)
	}
}
