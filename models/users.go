package models

import "time"

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"type:varchar(255)" json:"email"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin   bool       `gorm:"not null;default:false" json:"-"`
	Roles     []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// UserRole is one membership of a user in a role.
type UserRole struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_role"`
	Role      Role `gorm:"type:varchar(32);not null;uniqueIndex:idx_user_role;index"`
	CreatedAt time.Time
}

func (u User) RoleList() []Role {
	roles := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Role)
	}
	return roles
}

func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin, Roles: u.RoleList()}
}
