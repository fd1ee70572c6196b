package entity

import (
	"time"

	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a cashier or admin. Accounts are normally created through
// Google sign-in; manually created users get a placeholder provider ID and
// a local admin can carry a bcrypt password as a break-glass login.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	GoogleID  string         `gorm:"size:255;unique;not null" json:"-"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Name      string         `gorm:"size:255" json:"name"`
	Role      enum.Role      `gorm:"size:20;default:'USER'" json:"role"`
	Password  *string        `gorm:"size:255" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipts     []Receipt     `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
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

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == enum.RoleAdmin
}
