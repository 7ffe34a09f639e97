package models

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Account is the tenant every user, organization & contact belongs to
type Account struct {
	BaseModel
	Name string `json:"name" gorm:"not null"`
}

func CreateAccount(ctx context.Context, name string) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("account name is required")
	}

	account := Account{Name: name}
	err := db.WithContext(ctx).Create(&account).Error
	if err != nil {
		return nil, errors.Wrap(err, "CreateAccount")
	}

	return &account, nil
}

func FindAccount(ctx context.Context, id interface{}) (*Account, error) {
	account := Account{}
	err := db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &account, nil
}
