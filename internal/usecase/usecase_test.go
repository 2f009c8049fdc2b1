package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/repository"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the production schema
// shape. The pool is capped at one connection so concurrent transactions
// serialize the same way they would against Postgres row locks, and
// TranslateError maps SQLite unique violations onto gorm.ErrDuplicatedKey
// exactly like the Postgres driver does.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Specialty{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.WorkShift{},
		&entity.Appointment{},
		&entity.MedicalRecord{},
		&entity.LabResult{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	// Same partial unique index the Postgres migration creates; it backstops
	// the booking check-then-insert.
	err = db.Exec(`CREATE UNIQUE INDEX uniq_appointments_active_slot
		ON appointments(doctor_id, date, time)
		WHERE status != 'cancelled'`).Error
	if err != nil {
		t.Fatalf("failed to create slot index: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAuditService(log *logrus.Logger) service.AuditService {
	return service.NewAuditService(log, repository.NewAuditLogRepository())
}

func ctxWithPrincipal(p entity.Principal) context.Context {
	return context.WithValue(context.Background(), middleware.PrincipalKey, p)
}

func seedSpecialty(t *testing.T, db *gorm.DB, name string) *entity.Specialty {
	t.Helper()
	specialty := &entity.Specialty{Name: name}
	if err := db.Create(specialty).Error; err != nil {
		t.Fatalf("failed to seed specialty: %v", err)
	}
	return specialty
}

func seedDoctor(t *testing.T, db *gorm.DB, specialtyID int) *entity.DoctorProfile {
	t.Helper()

	user := &entity.User{
		RoleID:   entity.RoleIDDoctor,
		Email:    uuid.New().String() + "@clinic.test",
		Password: "x",
		FullName: "Dr. Test",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed doctor user: %v", err)
	}

	profile := &entity.DoctorProfile{
		UserID:        user.ID,
		LicenseNumber: "LIC-" + uuid.New().String()[:8],
		SpecialtyID:   specialtyID,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to seed doctor profile: %v", err)
	}
	profile.User = *user
	return profile
}

func seedPatient(t *testing.T, db *gorm.DB) *entity.PatientProfile {
	t.Helper()

	user := &entity.User{
		RoleID:   entity.RoleIDPatient,
		Email:    uuid.New().String() + "@clinic.test",
		Password: "x",
		FullName: "Test Patient",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed patient user: %v", err)
	}

	profile := &entity.PatientProfile{
		UserID:      user.ID,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderMale,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to seed patient profile: %v", err)
	}
	profile.User = *user
	return profile
}

func seedShift(t *testing.T, db *gorm.DB, doctorID uuid.UUID, date time.Time, start, end string) *entity.WorkShift {
	t.Helper()
	shift := &entity.WorkShift{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if err := db.Create(shift).Error; err != nil {
		t.Fatalf("failed to seed work shift: %v", err)
	}
	return shift
}

func patientPrincipal(p *entity.PatientProfile) entity.Principal {
	return entity.Principal{UserID: p.UserID, Email: p.User.Email, RoleID: entity.RoleIDPatient}
}

func doctorPrincipal(d *entity.DoctorProfile) entity.Principal {
	return entity.Principal{UserID: d.UserID, Email: d.User.Email, RoleID: entity.RoleIDDoctor}
}

func adminPrincipal() entity.Principal {
	return entity.Principal{UserID: uuid.New(), Email: "admin@clinic.test", RoleID: entity.RoleIDAdmin}
}
