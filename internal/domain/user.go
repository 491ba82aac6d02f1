package domain

import "time" // Timestamps

// DefaultRole is assigned to every new account
const DefaultRole = "user"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	Username  string    `gorm:"uniqueIndex;size:191;not null" json:"username"` // Unique login identifier (email)
	Password  string    `gorm:"not null" json:"-"`                             // Hashed password, never serialized
	Role      string    `gorm:"size:32;not null;default:user" json:"role"`     // Role: stored, not used for authorization
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`               // Registration time
}
