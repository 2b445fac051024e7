package domain

import "github.com/google/uuid"

// Role joins are made on Code, the business key, not on the surrogate
// ID. Permissions and mappings reference roles.code directly.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`

	Permissions []Permission `gorm:"foreignKey:RoleCode;references:Code;constraint:OnDelete:CASCADE" json:"permissions,omitempty"`
}

type Permission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoleCode string `gorm:"type:varchar(50);index;not null" json:"role_code"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
}

// UserRoleMapping records that a user holds a role.
type UserRoleMapping struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	RoleCode string    `gorm:"type:varchar(50);index;not null" json:"role_code"`

	Role *Role `gorm:"foreignKey:RoleCode;references:Code;constraint:OnDelete:CASCADE" json:"role,omitempty"`
}
