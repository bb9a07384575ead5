// Package profiles, entity definitions.
// A Profile is the one-per-user portfolio document: free-form text fields,
// a skills list, social links, and two ordered sub-collections (experience
// and education). The owning user's name and avatar are joined in at read
// time so clients can render a profile card without a second lookup.
package profiles

import "time"

// ProfileUser is the slice of the owning user joined into every profile read.
type ProfileUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// SocialLinks groups the optional social media fields of a profile.
// Pointers distinguish "never set" (null in JSON) from an empty value.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// Experience is one entry of the experience sub-collection.
// Entries are returned newest-first: the most recently added entry heads the list.
type Experience struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company,omitempty"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// Education is one entry of the education sub-collection, same ordering rules
// as Experience.
type Education struct {
	ID           int        `json:"id"`
	School       string     `json:"school,omitempty"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy,omitempty"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// Profile is the full profile document.
type Profile struct {
	ID             int          `json:"id"`
	User           ProfileUser  `json:"user"`
	Company        *string      `json:"company,omitempty"`
	Website        *string      `json:"website,omitempty"`
	Location       *string      `json:"location,omitempty"`
	Bio            *string      `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername *string      `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
