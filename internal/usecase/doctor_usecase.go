package usecase

import (
	"context"
	"errors"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrLicenseAlreadyExists = errors.New("license number already exists")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctorsBySpecialty(ctx context.Context, specialtyID int) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeactivateDoctor(ctx context.Context, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	doctorRepo    repository.DoctorProfileRepository
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		doctorRepo:    doctorRepo,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

// CreateDoctor provisions a doctor account: a user row plus a doctor profile,
// atomically. Admin-only; doctors never self-register.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), req.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", req.SpecialtyID, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDDoctor,
		IsActive: true,
	}

	var profile *entity.DoctorProfile
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			return err
		}

		profile = &entity.DoctorProfile{
			UserID:        user.ID,
			LicenseNumber: req.LicenseNumber,
			SpecialtyID:   req.SpecialtyID,
			PhoneNumber:   req.PhoneNumber,
			Biography:     req.Biography,
		}
		if err := u.doctorRepo.Create(tx, profile); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err, "license_number") {
				return ErrLicenseAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) || errors.Is(err, ErrLicenseAlreadyExists) {
			return nil, err
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionDoctorCreate, entity.JSON{
		"doctor_id": user.ID.String(),
		"email":     user.Email,
	})

	profile.User = *user
	profile.Specialty = *specialty
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

// GetDoctorsBySpecialty returns active doctors in a specialty. Public.
func (u *doctorUsecase) GetDoctorsBySpecialty(ctx context.Context, specialtyID int) (*dto.DoctorListResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), specialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", specialtyID, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	profiles, err := u.doctorRepo.FindBySpecialtyID(u.db.WithContext(ctx), specialtyID)
	if err != nil {
		u.log.Warnf("Failed to list doctors for specialty %d: %+v", specialtyID, err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if req.SpecialtyID != 0 && req.SpecialtyID != profile.SpecialtyID {
		specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), req.SpecialtyID)
		if err != nil {
			return nil, err
		}
		if specialty == nil {
			return nil, ErrSpecialtyNotFound
		}
		profile.SpecialtyID = req.SpecialtyID
		profile.Specialty = *specialty
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.FullName != "" && req.FullName != profile.User.FullName {
			profile.User.FullName = req.FullName
			if err := u.userRepo.Update(tx, &profile.User); err != nil {
				return err
			}
		}
		return u.doctorRepo.Update(tx, profile)
	})
	if err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionDoctorUpdate, entity.JSON{
		"doctor_id": doctorID.String(),
	})

	return converter.DoctorProfileToResponse(profile), nil
}

// DeactivateDoctor retires a doctor account. The user row is kept so past
// appointments and records stay attributable; the account just cannot log in
// and drops out of public listings.
func (u *doctorUsecase) DeactivateDoctor(ctx context.Context, doctorID uuid.UUID) error {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	profile.User.IsActive = false
	if err := u.userRepo.Update(u.db.WithContext(ctx), &profile.User); err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", doctorID, err)
		return err
	}

	u.auditService.Record(u.db.WithContext(ctx), &principal.UserID, entity.AuditActionDoctorDelete, entity.JSON{
		"doctor_id": doctorID.String(),
	})

	return nil
}
