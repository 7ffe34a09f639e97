package models

import (
	"context"
	"fmt"
	"time"

	"github.com/Daskott/contactbook/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ACTIVE_CONTACT LifecycleState = iota
	DELETED_CONTACT
)

type LifecycleState int

// Lifecycle is the soft-delete state of a contact. DeletedAt is only
// meaningful when State is DELETED_CONTACT.
type Lifecycle struct {
	State     LifecycleState
	DeletedAt time.Time
}

type Contact struct {
	BaseModel
	AccountID       uint          `gorm:"not null;index"`
	OrganizationID  *uint         `gorm:"index"`
	Organization    *Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	FirstName       string        `gorm:"size:50;not null"`
	LastName        string        `gorm:"size:50;not null"`
	Email           *string       `gorm:"size:50"`
	Phone           *string       `gorm:"size:50"`
	Address         *string       `gorm:"size:150"`
	City            *string       `gorm:"size:50"`
	Region          *string       `gorm:"size:50"`
	Country         *string       `gorm:"size:2"`
	PostalCode      *string       `gorm:"size:25"`
	Status          *string       `gorm:"size:25;index"`
	StatusNotes     *string       `gorm:"size:255"`
	StatusUpdatedAt *time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (contact *Contact) Name() string {
	return contact.FirstName + " " + contact.LastName
}

func (contact *Contact) Lifecycle() Lifecycle {
	if !contact.DeletedAt.Valid {
		return Lifecycle{State: ACTIVE_CONTACT}
	}

	return Lifecycle{State: DELETED_CONTACT, DeletedAt: contact.DeletedAt.Time}
}

// BeforeSave keeps the stored phone number in (###)-###-#### format
// whenever it holds exactly 10 digits
func (contact *Contact) BeforeSave(tx *gorm.DB) error {
	if contact.Phone != nil {
		phone := NormalizePhone(*contact.Phone)
		contact.Phone = &phone
	}
	return nil
}

func (contact *Contact) Save(ctx context.Context) error {
	err := db.WithContext(ctx).Omit(clause.Associations).Save(contact).Error
	if err != nil {
		return errors.Wrapf(err, "Contact.Save id=%v", contact.ID)
	}

	return contact.loadOrganization(ctx)
}

// SoftDelete marks the contact as deleted, the row stays in place
func (contact *Contact) SoftDelete(ctx context.Context) error {
	err := db.WithContext(ctx).Where("account_id = ?", contact.AccountID).Delete(contact).Error
	if err != nil {
		return errors.Wrapf(err, "Contact.SoftDelete id=%v", contact.ID)
	}

	return nil
}

func (contact *Contact) Restore(ctx context.Context) error {
	err := db.WithContext(ctx).Unscoped().Model(contact).
		Where("account_id = ?", contact.AccountID).Update("deleted_at", nil).Error
	if err != nil {
		return errors.Wrapf(err, "Contact.Restore id=%v", contact.ID)
	}

	contact.DeletedAt = gorm.DeletedAt{}
	return nil
}

func (contact *Contact) loadOrganization(ctx context.Context) error {
	if contact.OrganizationID == nil {
		contact.Organization = nil
		return nil
	}

	organization := Organization{}
	err := db.WithContext(ctx).First(&organization, *contact.OrganizationID).Error
	if err != nil {
		return errors.Wrap(err, "Contact.loadOrganization")
	}

	contact.Organization = &organization
	return nil
}

// CreateContact persists a new contact for 'accountID', whatever the
// contact's AccountID was before
func CreateContact(ctx context.Context, accountID uint, contact *Contact) error {
	contact.AccountID = accountID

	err := db.WithContext(ctx).Omit(clause.Associations).Create(contact).Error
	if err != nil {
		return errors.Wrap(err, "CreateContact")
	}

	return contact.loadOrganization(ctx)
}

// FindContact looks up contact 'id' within 'accountID'. 'trashed' decides
// whether soft deleted rows can be matched.
func FindContact(ctx context.Context, accountID uint, id interface{}, trashed TrashedScope) (*Contact, error) {
	contact := Contact{}

	query := db.WithContext(ctx).Preload("Organization").Where("account_id = ?", accountID)
	err := trashed.apply(query).First(&contact, "contacts.id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// FetchContacts returns page 'page' of the contacts matching 'filter',
// newest first
func FetchContacts(ctx context.Context, accountID uint, filter ContactFilter, page int) ([]Contact, *Paging, error) {
	var total int64
	contacts := []Contact{}

	baseQuery := func() *gorm.DB {
		return filter.Apply(db.WithContext(ctx).Model(&Contact{}).Where("account_id = ?", accountID))
	}

	err := baseQuery().Count(&total).Error
	if err != nil {
		return nil, nil, errors.Wrap(err, "FetchContacts: count")
	}

	err = baseQuery().Scopes(paginate(page, CONTACTS_PAGE_SIZE)).
		Preload("Organization").Order("contacts.created_at desc").Order("contacts.id desc").
		Find(&contacts).Error
	if err != nil {
		return nil, nil, errors.Wrap(err, "FetchContacts: find")
	}

	return contacts, newPaging(int64(page), CONTACTS_PAGE_SIZE, total, int64(len(contacts))), nil
}

// NormalizePhone rewrites 'value' as (###)-###-#### when it holds exactly
// 10 digits, otherwise it's returned as is
func NormalizePhone(value string) string {
	digits := utils.Digits(value)
	if len(digits) != 10 {
		return value
	}

	return fmt.Sprintf("(%s)-%s-%s", digits[0:3], digits[3:6], digits[6:10])
}
