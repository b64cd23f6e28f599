package models

import "time"

// User is a customer (or admin) profile document. The document ID is
// the identity's ID; email is sourced from signup and never edited.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Contact      string    `bson:"contact" json:"contact"`
	Email        string    `bson:"email" json:"email"`
	Role         string    `bson:"role" json:"role"`
	Address      Address   `bson:"address,omitempty" json:"address"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	AuthProvider string    `bson:"authProvider,omitempty" json:"authProvider,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updated_at"`

	ResetToken        string    `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpires time.Time `bson:"resetTokenExpires,omitempty" json:"-"`
}

// FullName joins first and last name the way orders display it.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
	Contact   string `json:"contact" validate:"required,min=7,max=20"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// UserUpdateData defines profile fields the owning customer may edit.
// Email is deliberately absent.
type UserUpdateData struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Contact   *string `json:"contact,omitempty" validate:"omitempty,min=7,max=20"`
	Street    *string `json:"street,omitempty"`
	BlockLot  *string `json:"blockLot,omitempty"`
	Barangay  *string `json:"barangay,omitempty"`
	Landmark  *string `json:"landmark,omitempty"`
}

// ChangePasswordRequest requires the current password for
// re-authentication before the new one is set.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// RequestPasswordResetRequest defines the body for the request password reset endpoint.
type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the body for completing the password reset.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
