package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/constants"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex" json:"username"`
	Email       string    `gorm:"size:254" json:"email"`
	Password    string    `gorm:"size:128" json:"-"`
	Role        string    `gorm:"size:10;default:junior" json:"role"`
	IsSuperuser bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate defaults the role to junior and promotes superusers to admin.
// The promotion is a stored convenience only; authorization re-derives the
// effective rank from IsSuperuser on every check.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = constants.RoleJunior
	}
	if u.IsSuperuser {
		u.Role = constants.RoleAdmin
	}
	return nil
}
