package model

import (
	"errors"
	"net/mail"
	"time"
)

type User struct {
	ID           int64     `json:"id"         db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Name         string    `json:"name"       db:"name"          gorm:"column:name;not null"`
	Email        string    `json:"email"      db:"email"         gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `json:"-"          db:"password_hash" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }

// RegisterRequest is the input for registering a user.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

func (p RegisterRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return errors.New("email is invalid")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
