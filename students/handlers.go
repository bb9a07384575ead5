package students

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
)

var validate = validator.New()

// Handlers handles HTTP requests for student records.
type Handlers struct {
	service *StudentService
}

// NewHandlers creates a new students Handlers.
func NewHandlers(service *StudentService) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the student API routes on a chi sub-router. Both
// routes require the auth gate.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Post("/", h.upsertStudent)
	router.Get("/", h.getOwnStudent)
}

// upsertStudent godoc
// @Summary Create or replace the caller's student record
// @Description Repeated submissions are idempotent; the record always matches the last request.
// @Tags students
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param studentBody body students.UpsertStudentRequest true "Student details"
// @Success 200 {object} students.Student
// @Failure 400 {object} apperror.ErrorResponse "name or class missing"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/student [post]
func (h *Handlers) upsertStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	var req UpsertStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.FromValidation(err))
		return
	}

	student, err := h.service.Upsert(r.Context(), userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, student)
}

// getOwnStudent godoc
// @Summary Get the caller's student record
// @Tags students
// @Produce json
// @Security TokenAuth
// @Success 200 {object} students.Student
// @Failure 404 {object} apperror.ErrorResponse "Student not found for this user"
// @Router /api/student [get]
func (h *Handlers) getOwnStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	student, err := h.service.GetOwnStudent(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, student)
}
