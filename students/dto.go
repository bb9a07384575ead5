package students

// UpsertStudentRequest is the request body for creating or replacing the
// caller's student record.
type UpsertStudentRequest struct {
	Name          string `json:"studentname" validate:"required"`
	Class         string `json:"studentclass" validate:"required"`
	Marks         []Mark `json:"marks"`
	YearOfPassing string `json:"yearofpassing"` // "2006-01-02" or RFC3339, optional
}
