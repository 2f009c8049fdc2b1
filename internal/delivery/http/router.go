package http

import (
	"net/http"

	"clinic-appointment-api/internal/delivery/http/handler"
	"clinic-appointment-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	availabilityHandler  *handler.AvailabilityHandler
	bookingHandler       *handler.BookingHandler
	appointmentHandler   *handler.AppointmentHandler
	workShiftHandler     *handler.WorkShiftHandler
	doctorHandler        *handler.DoctorHandler
	specialtyHandler     *handler.SpecialtyHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	appointmentHandler *handler.AppointmentHandler,
	workShiftHandler *handler.WorkShiftHandler,
	doctorHandler *handler.DoctorHandler,
	specialtyHandler *handler.SpecialtyHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		availabilityHandler:  availabilityHandler,
		bookingHandler:       bookingHandler,
		appointmentHandler:   appointmentHandler,
		workShiftHandler:     workShiftHandler,
		doctorHandler:        doctorHandler,
		specialtyHandler:     specialtyHandler,
		medicalRecordHandler: medicalRecordHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public browsing routes
	api.HandleFunc("/specialties", r.specialtyHandler.GetSpecialties).Methods(http.MethodGet)
	api.HandleFunc("/specialties/{id}/doctors", r.doctorHandler.GetDoctorsBySpecialty).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/availability", r.availabilityHandler.GetAvailableSlots).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Patient booking routes
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.Use(middleware.RequirePatient)
	bookings.HandleFunc("", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)

	// Appointment routes (any authenticated role; scoping happens per caller)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/records", r.medicalRecordHandler.GetRecordsByAppointment).Methods(http.MethodGet)

	// Doctor and admin routes for appointment lifecycle
	appointmentStatus := api.PathPrefix("/appointments").Subrouter()
	appointmentStatus.Use(r.authMiddleware.Authenticate)
	appointmentStatus.Use(middleware.RequireAdminOrDoctor)
	appointmentStatus.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/worklist", r.appointmentHandler.GetWorklist).Methods(http.MethodGet)
	doctor.HandleFunc("/work-shifts", r.workShiftHandler.GetMyWorkShifts).Methods(http.MethodGet)
	doctor.HandleFunc("/medical-records", r.medicalRecordHandler.CreateRecord).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeactivateDoctor).Methods(http.MethodDelete)

	// Specialty management (admin)
	admin.HandleFunc("/specialties", r.specialtyHandler.CreateSpecialty).Methods(http.MethodPost)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.UpdateSpecialty).Methods(http.MethodPut)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.DeleteSpecialty).Methods(http.MethodDelete)

	// Work shift management (admin)
	admin.HandleFunc("/work-shifts", r.workShiftHandler.CreateWorkShift).Methods(http.MethodPost)
	admin.HandleFunc("/work-shifts/{id}", r.workShiftHandler.DeleteWorkShift).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{doctorId}/work-shifts", r.workShiftHandler.GetDoctorWorkShifts).Methods(http.MethodGet)

	// Appointment administration (admin)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
