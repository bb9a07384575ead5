// Package profiles, Data Transfer Objects.
// Plain (non-pointer) strings are deliberate on the upsert request: an empty
// field means "not supplied, keep whatever the profile already has", which is
// the merge contract of repeated profile submissions.
package profiles

// UpsertProfileRequest is the payload for creating or merge-updating a profile.
// Skills arrive as one comma-separated string and are split server-side.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" validate:"required"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// AddExperienceRequest is the payload for head-inserting an experience entry.
// Dates are strings so clients can send either "2006-01-02" or RFC 3339.
type AddExperienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description" validate:"required"`
}

// AddEducationRequest is the payload for head-inserting an education entry.
type AddEducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description" validate:"required"`
}
