package models

import "time"

// UserRole defines allowed roles for marketplace users
type UserRole string

const (
	RoleVendor   UserRole = "vendor"
	RoleCustomer UserRole = "customer"
	RoleRider    UserRole = "rider"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleVendor, RoleCustomer, RoleRider:
		return true
	}
	return false
}

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Role          UserRole  `json:"role" gorm:"not null;default:'customer'"`
	JTI           string    `json:"-" gorm:"index"` // rotated on login, revokes older tokens
	LoyaltyPoints int       `json:"loyalty_points" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName falls back to the email when the profile has no name yet
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
