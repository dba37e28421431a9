package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrWrongPassword = errors.New("wrong password")

// User models a registered account. The ID is the public login name chosen at
// registration; it is unique and never changes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser is the slice of a User carried in an authenticated session and
// snapshotted onto notes at send time.
type SessionUser struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Ref returns the session/snapshot view of the user.
func (u *User) Ref() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name}
}
