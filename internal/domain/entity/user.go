package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-api/internal/domain/enum"
)

// User represents a staff member. Washers are users with RoleWasher.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"size:200;not null" json:"name"`
	Email    string    `gorm:"size:200;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"size:200;not null" json:"-"`
	Role     enum.Role `gorm:"not null" json:"role"`
	Phone    string    `gorm:"size:50" json:"phone,omitempty"`
	Active   bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
