package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserCode string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"user_code"`
	Username string    `gorm:"type:varchar(100);not null" json:"username"`

	Profile      *UserProfile      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	RoleMappings []UserRoleMapping `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"role_mappings,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile holds the 1:1 personal data for a user. The back
// reference is the UserID foreign key only, so the serialized graph
// can never loop back into User.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Age       *int      `json:"age,omitempty"`
}
