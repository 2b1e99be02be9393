package model

import "time"

// Roles assignable to a user.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered student or admin account.
//
// OTP and OTPExpiry are set on signup and on forgot-password requests and
// cleared on successful verification or password reset. An account with
// Verified == false cannot obtain a session or token through login.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:30;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string     `json:"role" gorm:"size:20;not null;default:'student'"`
	Verified     bool       `json:"verified" gorm:"not null;default:false"`
	OTP          *string    `json:"-" gorm:"size:6"`
	OTPExpiry    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PublicUser is the projection of a user safe to return to clients.
type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
