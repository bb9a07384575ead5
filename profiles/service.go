// Package profiles contains the business logic for profile documents: the
// merge-upsert, the skills splitting, the experience/education sub-collections,
// the public listing, and account deletion. It acts as the service layer;
// `handlers.go` translates HTTP to and from these methods.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/devconnect-go/apperror"
)

// ProfileService provides methods for profile management.
type ProfileService struct {
	db *pgxpool.Pool
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *pgxpool.Pool) *ProfileService {
	return &ProfileService{db: db}
}

// SplitSkills turns the comma-separated skills input into an ordered slice of
// trimmed entries. Blank entries ("go,,rust" or trailing commas) are dropped.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseDate accepts the two date formats clients send: a bare "2006-01-02" or
// a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
}

// profileRow is the raw column set of one profiles row, used internally for
// the merge-upsert. Pointers mirror the nullable columns.
type profileRow struct {
	UserID         int
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         string
	GithubUsername *string
	Skills         []string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	LinkedIn       *string
	Instagram      *string
}

// mergeProfileFields applies an upsert request on top of the existing row.
// Supplied (non-empty) fields overwrite; unsupplied fields keep their prior
// values, so repeated submissions with disjoint field sets accumulate into the
// union of both. Status and skills are always supplied (validated upstream).
func mergeProfileFields(existing *profileRow, req UpsertProfileRequest) *profileRow {
	merged := &profileRow{}
	if existing != nil {
		*merged = *existing
	}

	set := func(dst **string, v string) {
		if v != "" {
			val := v
			*dst = &val
		}
	}
	set(&merged.Company, req.Company)
	set(&merged.Website, req.Website)
	set(&merged.Location, req.Location)
	set(&merged.Bio, req.Bio)
	set(&merged.GithubUsername, req.GithubUsername)
	set(&merged.Youtube, req.Youtube)
	set(&merged.Twitter, req.Twitter)
	set(&merged.Facebook, req.Facebook)
	set(&merged.LinkedIn, req.LinkedIn)
	set(&merged.Instagram, req.Instagram)

	merged.Status = req.Status
	merged.Skills = SplitSkills(req.Skills)
	return merged
}

// GetOwnProfile returns the caller's profile document.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID int) (*Profile, error) {
	profile, err := s.loadProfileByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("No profile found for this user", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load profile", err)
	}
	return profile, nil
}

// ListProfiles returns every profile with the owning user's name and avatar
// joined in. This endpoint is public.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.user_id, u.name, u.avatar,
		       p.company, p.website, p.location, p.bio, p.status, p.githubusername,
		       p.skills,
		       p.social_youtube, p.social_twitter, p.social_facebook, p.social_linkedin, p.social_instagram,
		       p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var p Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan profile", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate profiles", err)
	}

	// Attach the sub-collections. The profile count here is small enough that
	// one query pair per profile stays well within budget.
	for i := range profiles {
		if err := s.attachSubCollections(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// GetProfileByUser returns the profile of an arbitrary user, public.
// A malformed identifier is treated exactly like an unknown one: not found,
// never a server error.
func (s *ProfileService) GetProfileByUser(ctx context.Context, userIDParam string) (*Profile, error) {
	userID, err := strconv.Atoi(userIDParam)
	if err != nil {
		return nil, apperror.NewNotFoundError("Profile not found", nil)
	}
	profile, err := s.loadProfileByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Profile not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load profile", err)
	}
	return profile, nil
}

// Upsert creates the caller's profile or merge-updates the existing one and
// returns the resulting document.
func (s *ProfileService) Upsert(ctx context.Context, userID int, req UpsertProfileRequest) (*Profile, error) {
	existing, err := s.loadRowByUser(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewDatabaseError("failed to load profile for upsert", err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		existing = nil
	}

	merged := mergeProfileFields(existing, req)
	merged.UserID = userID

	_, err = s.db.Exec(ctx, `
		INSERT INTO profiles (user_id, company, website, location, bio, status, githubusername, skills,
		                      social_youtube, social_twitter, social_facebook, social_linkedin, social_instagram,
		                      updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			githubusername = EXCLUDED.githubusername,
			skills = EXCLUDED.skills,
			social_youtube = EXCLUDED.social_youtube,
			social_twitter = EXCLUDED.social_twitter,
			social_facebook = EXCLUDED.social_facebook,
			social_linkedin = EXCLUDED.social_linkedin,
			social_instagram = EXCLUDED.social_instagram,
			updated_at = now()`,
		merged.UserID, merged.Company, merged.Website, merged.Location, merged.Bio,
		merged.Status, merged.GithubUsername, merged.Skills,
		merged.Youtube, merged.Twitter, merged.Facebook, merged.LinkedIn, merged.Instagram,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to upsert profile", err)
	}

	return s.GetOwnProfile(ctx, userID)
}

// AddExperience head-inserts an experience entry into the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID int, req AddExperienceRequest) (*Profile, error) {
	from, err := parseDate(req.From)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}
	var to *time.Time
	if req.To != "" {
		t, err := parseDate(req.To)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), nil)
		}
		to = &t
	}

	profileID, err := s.profileIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO experiences (profile_id, title, company, location, from_date, to_date, current, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		profileID, req.Title, req.Company, req.Location, from, to, req.Current, req.Description,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to add experience", err)
	}
	return s.GetOwnProfile(ctx, userID)
}

// RemoveExperience removes an experience entry by id from the caller's profile.
// An unknown (or malformed) entry id is a no-op: the unchanged profile is
// returned rather than an error.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID int, expIDParam string) (*Profile, error) {
	profileID, err := s.profileIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if expID, convErr := strconv.Atoi(expIDParam); convErr == nil {
		// Scoping the delete to the caller's profile stops one user removing
		// entries from another user's document.
		_, err = s.db.Exec(ctx, `DELETE FROM experiences WHERE id = $1 AND profile_id = $2`, expID, profileID)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to remove experience", err)
		}
	}
	return s.GetOwnProfile(ctx, userID)
}

// AddEducation head-inserts an education entry into the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID int, req AddEducationRequest) (*Profile, error) {
	from, err := parseDate(req.From)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}
	var to *time.Time
	if req.To != "" {
		t, err := parseDate(req.To)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), nil)
		}
		to = &t
	}

	profileID, err := s.profileIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO educations (profile_id, school, degree, field_of_study, from_date, to_date, current, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		profileID, req.School, req.Degree, req.FieldOfStudy, from, to, req.Current, req.Description,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to add education", err)
	}
	return s.GetOwnProfile(ctx, userID)
}

// RemoveEducation removes an education entry by id, same no-op contract as
// RemoveExperience.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID int, eduIDParam string) (*Profile, error) {
	profileID, err := s.profileIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if eduID, convErr := strconv.Atoi(eduIDParam); convErr == nil {
		_, err = s.db.Exec(ctx, `DELETE FROM educations WHERE id = $1 AND profile_id = $2`, eduID, profileID)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to remove education", err)
		}
	}
	return s.GetOwnProfile(ctx, userID)
}

// DeleteAccount removes the caller's profile and user record in a single
// transaction. Posts and the student record are deliberately left in place:
// posts keep their denormalized author snapshot, and the student record is an
// independent entity. That inconsistency is part of the contract.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		// Rollback after a successful commit is a harmless no-op.
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return apperror.NewDatabaseError("failed to delete profile", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("failed to commit account deletion", err)
	}
	return nil
}

// --- Database helper functions ---

// profileIDForUser resolves the caller's profile id, with the not-found error
// every sub-collection operation shares.
func (s *ProfileService) profileIDForUser(ctx context.Context, userID int) (int, error) {
	var profileID int
	err := s.db.QueryRow(ctx, `SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("No profile found for this user", nil)
		}
		return 0, apperror.NewDatabaseError("failed to resolve profile", err)
	}
	return profileID, nil
}

// loadRowByUser fetches the raw column set for the merge-upsert.
func (s *ProfileService) loadRowByUser(ctx context.Context, userID int) (*profileRow, error) {
	var row profileRow
	err := s.db.QueryRow(ctx, `
		SELECT user_id, company, website, location, bio, status, githubusername, skills,
		       social_youtube, social_twitter, social_facebook, social_linkedin, social_instagram
		FROM profiles WHERE user_id = $1`, userID).Scan(
		&row.UserID, &row.Company, &row.Website, &row.Location, &row.Bio, &row.Status,
		&row.GithubUsername, &row.Skills,
		&row.Youtube, &row.Twitter, &row.Facebook, &row.LinkedIn, &row.Instagram,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// loadProfileByUser fetches one full profile document with the user join and
// both sub-collections. Returns pgx.ErrNoRows untouched so callers can map it
// to their own not-found message.
func (s *ProfileService) loadProfileByUser(ctx context.Context, userID int) (*Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT p.id, p.user_id, u.name, u.avatar,
		       p.company, p.website, p.location, p.bio, p.status, p.githubusername,
		       p.skills,
		       p.social_youtube, p.social_twitter, p.social_facebook, p.social_linkedin, p.social_instagram,
		       p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`, userID)

	var p Profile
	if err := scanProfile(row, &p); err != nil {
		return nil, err
	}
	if err := s.attachSubCollections(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// scanProfile scans one joined profile row. pgx.Row and pgx.Rows share the
// Scan method, so both the single and the list query use this.
func scanProfile(row pgx.Row, p *Profile) error {
	return row.Scan(
		&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar,
		&p.Company, &p.Website, &p.Location, &p.Bio, &p.Status, &p.GithubUsername,
		&p.Skills,
		&p.Social.Youtube, &p.Social.Twitter, &p.Social.Facebook, &p.Social.LinkedIn, &p.Social.Instagram,
		&p.UpdatedAt,
	)
}

// attachSubCollections loads the experience and education lists, newest first.
// Head-insert ordering falls out of `ORDER BY id DESC`: a later insert always
// has a larger id.
func (s *ProfileService) attachSubCollections(ctx context.Context, p *Profile) error {
	expRows, err := s.db.Query(ctx, `
		SELECT id, title, company, location, from_date, to_date, current, description
		FROM experiences WHERE profile_id = $1 ORDER BY id DESC`, p.ID)
	if err != nil {
		return apperror.NewDatabaseError("failed to load experience", err)
	}
	defer expRows.Close()

	p.Experience = []Experience{}
	for expRows.Next() {
		var e Experience
		if err := expRows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return apperror.NewDatabaseError("failed to scan experience", err)
		}
		p.Experience = append(p.Experience, e)
	}
	if err := expRows.Err(); err != nil {
		return apperror.NewDatabaseError("failed to iterate experience", err)
	}

	eduRows, err := s.db.Query(ctx, `
		SELECT id, school, degree, field_of_study, from_date, to_date, current, description
		FROM educations WHERE profile_id = $1 ORDER BY id DESC`, p.ID)
	if err != nil {
		return apperror.NewDatabaseError("failed to load education", err)
	}
	defer eduRows.Close()

	p.Education = []Education{}
	for eduRows.Next() {
		var e Education
		if err := eduRows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return apperror.NewDatabaseError("failed to scan education", err)
		}
		p.Education = append(p.Education, e)
	}
	if err := eduRows.Err(); err != nil {
		return apperror.NewDatabaseError("failed to iterate education", err)
	}
	return nil
}
