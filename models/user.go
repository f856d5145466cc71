package models

import (
	"drive/db"
	"drive/utils"
	"errors"
	"strconv"
)

type User struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	CreatedByID *uint64
	CreatedBy   *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name        string     `gorm:"type:varchar(100)"`
	Email       string     `gorm:"type:varchar(150);index:uniq_email,unique"`
	Password    string     `gorm:"type:varchar(128)"`
	PassSalt    string     `gorm:"type:varchar(200)"`
	Admin       bool       `gorm:"not null;default:false"`
	Roles       []UserRole `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// UserRole is a named role attached to a user, e.g. "TEAM_LEAD".
// Grants can target role names instead of individual users.
type UserRole struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index:uniq_user_role,unique"`
	Name   string `gorm:"type:varchar(100);index:uniq_user_role,unique"`
}

const saltSize = 60

func UserCreate(name, email, plainTextPassword string) (u User, err error) {
	u.Email = email
	u.Name = name
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
	return u, db.Instance.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

func UserLogin(email, plainTextPassword string) (u User, err error) {
	result := db.Instance.Preload("Roles").First(&u, "email = ?", email)
	if result.Error != nil {
		return User{}, errors.New("invalid credentials")
	}
	if u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return User{}, errors.New("invalid credentials")
	}
	return u, nil
}

func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

func (u *User) RoleNames() []string {
	names := []string{}
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// IDString is the form in which a user appears as a grant target
func (u *User) IDString() string {
	return strconv.FormatUint(u.ID, 10)
}
