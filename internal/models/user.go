package models

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User owns transactions. Email is optional but unique when present.
type User struct {
	ID    uint    `gorm:"column:user_id;primaryKey;autoIncrement" json:"id"`
	Name  string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email *string `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.normalize()
	return u.Validate()
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrNameRequired
	}

	if u.Email != nil && !emailRegex.MatchString(*u.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, *u.Email)
	}

	return nil
}

// normalize trims the name and collapses a blank email to no email so that
// several users without an address never collide on the unique index.
func (u *User) normalize() {
	u.Name = strings.TrimSpace(u.Name)
	if u.Email == nil {
		return
	}
	email := strings.TrimSpace(*u.Email)
	if email == "" {
		u.Email = nil
		return
	}
	u.Email = &email
}

func (u *User) HasEmail() bool {
	return u.Email != nil
}

func (u *User) TableName() string {
	return "users"
}
