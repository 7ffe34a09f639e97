package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/Daskott/contactbook/server/auth"
	"gorm.io/gorm"
)

var allFieldsExceptPassword = []string{"id",
	"account_id",
	"first_name",
	"last_name",
	"email",
	"owner",
	"created_at",
	"updated_at",
}

type User struct {
	BaseModel
	AccountID uint     `json:"account_id" gorm:"not null;index"`
	Account   *Account `json:"-"`
	FirstName string   `json:"first_name" validate:"required,max=25"`
	LastName  string   `json:"last_name" validate:"required,max=25"`
	Email     string   `json:"email" validate:"required,email,max=50" gorm:"not null;unique"`
	Password  string   `json:"password,omitempty" validate:"required,password" gorm:"not null"`
	Owner     bool     `json:"owner" gorm:"default:false"`
}

func (user *User) Name() string {
	return user.FirstName + " " + user.LastName
}

func FindUserBy(ctx context.Context, field string, value interface{}) (*User, error) {
	user := User{}
	err := db.WithContext(ctx).Select(allFieldsExceptPassword).First(&user, fmt.Sprintf("%v = ?", field), value).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserWithPassword is only meant for credential checks, the hash
// must never leave the auth flow
func FindUserWithPassword(ctx context.Context, email string) (*User, error) {
	user := User{}
	err := db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func CreateUser(ctx context.Context, user *User) error {
	if _, err := FindAccount(ctx, user.AccountID); err != nil {
		return fmt.Errorf("CreateUser: account %v: %w", user.AccountID, err)
	}

	passwordHash, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = passwordHash

	return db.WithContext(ctx).Create(user).Error
}

func AtLeastOneUserExists(ctx context.Context) (bool, error) {
	err := db.WithContext(ctx).First(&User{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
