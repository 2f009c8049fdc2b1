package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
	"clinic-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type WorkShiftHandler struct {
	workShiftUsecase usecase.WorkShiftUsecase
	validator        *validator.CustomValidator
}

func NewWorkShiftHandler(workShiftUsecase usecase.WorkShiftUsecase, validator *validator.CustomValidator) *WorkShiftHandler {
	return &WorkShiftHandler{
		workShiftUsecase: workShiftUsecase,
		validator:        validator,
	}
}

func (h *WorkShiftHandler) CreateWorkShift(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWorkShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	shift, err := h.workShiftUsecase.CreateWorkShift(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrInvalidTimeFormat:
			response.BadRequest(w, "Invalid time format, use HH:MM")
		case usecase.ErrShiftRange:
			response.BadRequest(w, "Shift end time must be after start time")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrShiftOverlap:
			response.Conflict(w, "Shift overlaps an existing shift for this doctor")
		default:
			response.InternalServerError(w, "Failed to create work shift")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Work shift created successfully", shift)
}

func (h *WorkShiftHandler) GetDoctorWorkShifts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	shifts, err := h.workShiftUsecase.GetDoctorWorkShifts(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get work shifts")
		return
	}

	response.Success(w, http.StatusOK, "Work shifts retrieved successfully", shifts)
}

// GetMyWorkShifts lets a doctor list their own shifts. The doctor profile is
// keyed by the user ID, so the principal is enough to scope the query.
func (h *WorkShiftHandler) GetMyWorkShifts(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	shifts, err := h.workShiftUsecase.GetDoctorWorkShifts(r.Context(), principal.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to get work shifts")
		return
	}

	response.Success(w, http.StatusOK, "Work shifts retrieved successfully", shifts)
}

func (h *WorkShiftHandler) DeleteWorkShift(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid work shift ID", nil)
		return
	}

	err = h.workShiftUsecase.DeleteWorkShift(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrWorkShiftNotFound:
			response.NotFound(w, "Work shift not found")
		default:
			response.InternalServerError(w, "Failed to delete work shift")
		}
		return
	}

	response.Success(w, http.StatusOK, "Work shift deleted successfully", nil)
}
