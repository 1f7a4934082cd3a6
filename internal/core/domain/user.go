package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is what admin order listings expose about the owning user.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Identity is the verified caller attached by the auth middleware. It is the
// only source of user id and admin flag for every operation; request bodies
// are never trusted for either.
type Identity struct {
	UserID  string
	IsAdmin bool
}
