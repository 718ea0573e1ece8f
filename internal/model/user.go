package model

import "time"

// User is a staff account as stored in the `users` table.  Accounts are
// created by an admin and never self-register.  PasswordHash is nil until
// the user's first login, which sets it (see AuthHandler.Login).
//
// Fields:
//  ID           – primary key identifier.
//  FirstName    – given name.
//  LastName     – family name.
//  Email        – unique login email.
//  PasswordHash – bcrypt hash, nil before the first login.
//  Role         – fixed business classification, one of the Role constants.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"` // never serialized
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
