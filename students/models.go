package students

import "time"

// Mark is a single subject score. Marks keep the order they were submitted
// in, which is why they live in one jsonb column instead of a child table.
type Mark struct {
	Subject string `json:"subject"`
	Score   int    `json:"score"`
}

// Student is the academic record attached to a user account. At most one
// record exists per user.
type Student struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user"`
	Name          string     `json:"studentname"`
	Class         string     `json:"studentclass"`
	Marks         []Mark     `json:"marks"`
	YearOfPassing *time.Time `json:"yearofpassing,omitempty"`
}
