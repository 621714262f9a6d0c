package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservedUsername is rejected on every create/update path because it
// collides with the /users/me profile route.
const ReservedUsername = "me"

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"-"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Role        Role      `gorm:"size:30;default:'user';not null" json:"role"`
	IsSuperuser bool      `gorm:"default:false;not null" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}
