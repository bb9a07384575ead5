// Package profiles, HTTP handlers.
// The controller layer for profile routes: decode, validate, resolve the
// authenticated identity from the request context, delegate to the service.
package profiles

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
)

var validate = validator.New()

// Handlers provides HTTP handlers for profile management.
type Handlers struct {
	service *ProfileService
}

// NewHandlers creates new profile Handlers.
func NewHandlers(service *ProfileService) *Handlers {
	return &Handlers{service: service}
}

// HandleGetOwnProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} profiles.Profile
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "No profile exists yet for this user"
// @Router /api/profile/me [get]
func (h *Handlers) HandleGetOwnProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
			return
		}

		profile, err := h.service.GetOwnProfile(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleUpsertProfile godoc
// @Summary Create or merge-update the caller's profile
// @Description Supplied fields overwrite; unsupplied fields keep their prior values. Skills is a comma-separated string.
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param profileBody body profiles.UpsertProfileRequest true "Profile fields"
// @Success 200 {object} profiles.Profile
// @Failure 400 {object} apperror.ErrorResponse "status or skills missing"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/profile [post]
func (h *Handlers) HandleUpsertProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
			return
		}

		var req UpsertProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.FromValidation(err))
			return
		}

		profile, err := h.service.Upsert(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleListProfiles godoc
// @Summary List all profiles
// @Description Public: returns every profile with the owning user's name and avatar.
// @Tags profile
// @Produce json
// @Success 200 {array} profiles.Profile
// @Router /api/profile [get]
func (h *Handlers) HandleListProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := h.service.ListProfiles(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profiles)
	}
}

// HandleGetProfileByUser godoc
// @Summary Get a profile by user id
// @Description Public. A malformed id is reported as not found, never as a server error.
// @Tags profile
// @Produce json
// @Param user_id path string true "User id"
// @Success 200 {object} profiles.Profile
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/profile/user/{user_id} [get]
func (h *Handlers) HandleGetProfileByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.service.GetProfileByUser(r.Context(), chi.URLParam(r, "user_id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleDeleteAccount godoc
// @Summary Delete the caller's account
// @Description Removes the profile and the user record. Posts and the student record are not cascaded.
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/profile [delete]
func (h *Handlers) HandleDeleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
			return
		}

		if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, map[string]string{"msg": "User deleted"})
	}
}

// HandleAddExperience godoc
// @Summary Head-insert an experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param experienceBody body profiles.AddExperienceRequest true "Experience entry"
// @Success 200 {object} profiles.Profile
// @Failure 400 {object} apperror.ErrorResponse "title, description or from missing"
// @Failure 404 {object} apperror.ErrorResponse "Caller has no profile"
// @Router /api/profile/experience [put]
func (h *Handlers) HandleAddExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
			return
		}

		var req AddExperienceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.FromValidation(err))
			return
		}

		profile, err := h.service.AddExperience(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleRemoveExperience godoc
// @Summary Remove an experience entry
// @Description Removing an id that is not in the caller's profile is a no-op that still returns the profile.
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param exp_id path string true "Experience entry id"
// @Success 200 {object} profiles.Profile
// @Failure 404 {object} apperror.ErrorResponse "Caller has no profile"
// @Router /api/profile/experience/{exp_id} [delete]
func (h *Handlers) HandleRemoveExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
			return
		}

		profile, err := h.service.RemoveExperience(r.Context(), userID, chi.URLParam(r, "exp_id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleAddEducation godoc
// @Summary Head-insert an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param educationBody body profiles.AddEducationRequest true "Education entry"
// @Success 200 {object} profiles.Profile
// @Failure 400 {object} apperror.ErrorResponse "degree, description or from missing"
// @Failure 404 {object} apperror.ErrorResponse "Caller has no profile"
// @Router /api/profile/education [put]
func (h *Handlers) HandleAddEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
			return
		}

		var req AddEducationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.FromValidation(err))
			return
		}

		profile, err := h.service.AddEducation(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleRemoveEducation godoc
// @Summary Remove an education entry
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param edu_id path string true "Education entry id"
// @Success 200 {object} profiles.Profile
// @Failure 404 {object} apperror.ErrorResponse "Caller has no profile"
// @Router /api/profile/education/{edu_id} [delete]
func (h *Handlers) HandleRemoveEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
			return
		}

		profile, err := h.service.RemoveEducation(r.Context(), userID, chi.URLParam(r, "edu_id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, profile)
	}
}
