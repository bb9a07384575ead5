// Package students manages the standalone student record. A user has at most
// one record; submitting again replaces it wholesale, unlike the profile's
// field-by-field merge.
package students

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/devconnect-go/apperror"
)

// StudentService contains the business logic for student records.
type StudentService struct {
	db *pgxpool.Pool
}

// NewStudentService creates a new StudentService.
func NewStudentService(db *pgxpool.Pool) *StudentService {
	return &StudentService{db: db}
}

// parseYear accepts a bare "2006-01-02" date or a full RFC 3339 timestamp.
func parseYear(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
}

// Upsert creates the caller's student record or replaces it if one already
// exists. The replace is total: every column takes the submitted value.
func (s *StudentService) Upsert(ctx context.Context, userID int, req UpsertStudentRequest) (*Student, error) {
	var year *time.Time
	if req.YearOfPassing != "" {
		t, err := parseYear(req.YearOfPassing)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), err)
		}
		year = &t
	}

	marks := req.Marks
	if marks == nil {
		marks = []Mark{}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO students (user_id, name, class, marks, year_of_passing)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			class = EXCLUDED.class,
			marks = EXCLUDED.marks,
			year_of_passing = EXCLUDED.year_of_passing`,
		userID, req.Name, req.Class, marks, year)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to save student record", err)
	}
	return s.GetOwnStudent(ctx, userID)
}

// GetOwnStudent returns the caller's student record.
func (s *StudentService) GetOwnStudent(ctx context.Context, userID int) (*Student, error) {
	student := &Student{Marks: []Mark{}}
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, class, marks, year_of_passing
		FROM students
		WHERE user_id = $1`,
		userID).Scan(&student.ID, &student.UserID, &student.Name, &student.Class, &student.Marks, &student.YearOfPassing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Student not found for this user", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load student record", err)
	}
	if student.Marks == nil {
		student.Marks = []Mark{}
	}
	return student, nil
}
