package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Organization struct {
	BaseModel
	AccountID uint   `json:"-" gorm:"not null;index"`
	Name      string `json:"name" gorm:"not null"`
}

func CreateOrganization(ctx context.Context, accountID uint, name string) (*Organization, error) {
	organization := Organization{AccountID: accountID, Name: name}
	err := db.WithContext(ctx).Create(&organization).Error
	if err != nil {
		return nil, errors.Wrap(err, "CreateOrganization")
	}

	return &organization, nil
}

// OrganizationExists reports whether organization 'id' belongs to account 'accountID'
func OrganizationExists(ctx context.Context, accountID uint, id uint) (bool, error) {
	err := db.WithContext(ctx).Select("id").
		Where("account_id = ?", accountID).First(&Organization{}, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
