package usecase

import (
	"context"
	"errors"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSpecialtyNotFound      = errors.New("specialty not found")
	ErrSpecialtyAlreadyExists = errors.New("specialty name already exists")
	ErrSpecialtyInUse         = errors.New("specialty still has doctors assigned")
)

type SpecialtyUsecase interface {
	CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	UpdateSpecialty(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	DeleteSpecialty(ctx context.Context, id int) error
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
	}
}

func (u *specialtyUsecase) CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := u.specialtyRepo.Create(u.db.WithContext(ctx), specialty); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}

	return specialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}

	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i := range specialties {
		responses[i] = *specialtyToResponse(&specialties[i])
	}

	return &dto.SpecialtyListResponse{
		Specialties: responses,
		Total:       len(responses),
	}, nil
}

func (u *specialtyUsecase) UpdateSpecialty(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	if req.Name != "" {
		specialty.Name = req.Name
	}
	if req.Description != "" {
		specialty.Description = req.Description
	}

	if err := u.specialtyRepo.Update(u.db.WithContext(ctx), specialty); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to update specialty %d: %+v", id, err)
		return nil, err
	}

	return specialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) DeleteSpecialty(ctx context.Context, id int) error {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", id, err)
		return err
	}
	if specialty == nil {
		return ErrSpecialtyNotFound
	}

	if err := u.specialtyRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		// Doctor profiles reference specialties; the FK blocks the delete
		if errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyError(err, "specialty") {
			return ErrSpecialtyInUse
		}
		u.log.Warnf("Failed to delete specialty %d: %+v", id, err)
		return err
	}

	return nil
}

func specialtyToResponse(specialty *entity.Specialty) *dto.SpecialtyResponse {
	return &dto.SpecialtyResponse{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
	}
}
