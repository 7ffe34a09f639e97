package models

import "time"

type OrganizationResource struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ContactResource is the public JSON shape of a contact. Fields tagged
// omitempty are left out entirely when unset, nullable columns are
// emitted as null.
type ContactResource struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	FirstName       string                `json:"first_name"`
	LastName        string                `json:"last_name"`
	Email           *string               `json:"email"`
	Phone           *string               `json:"phone"`
	Address         *string               `json:"address"`
	City            *string               `json:"city"`
	Region          *string               `json:"region"`
	Country         *string               `json:"country"`
	PostalCode      *string               `json:"postal_code"`
	Status          *string               `json:"status"`
	StatusNotes     *string               `json:"status_notes"`
	StatusUpdatedAt *time.Time            `json:"status_updated_at,omitempty"`
	Organization    *OrganizationResource `json:"organization,omitempty"`
	DeletedAt       *time.Time            `json:"deleted_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func NewContactResource(contact *Contact) ContactResource {
	resource := ContactResource{
		ID:              contact.ID,
		Name:            contact.Name(),
		FirstName:       contact.FirstName,
		LastName:        contact.LastName,
		Email:           contact.Email,
		Phone:           contact.Phone,
		Address:         contact.Address,
		City:            contact.City,
		Region:          contact.Region,
		Country:         contact.Country,
		PostalCode:      contact.PostalCode,
		Status:          contact.Status,
		StatusNotes:     contact.StatusNotes,
		StatusUpdatedAt: contact.StatusUpdatedAt,
		CreatedAt:       contact.CreatedAt,
		UpdatedAt:       contact.UpdatedAt,
	}

	if contact.Organization != nil {
		resource.Organization = &OrganizationResource{ID: contact.Organization.ID, Name: contact.Organization.Name}
	}

	if lifecycle := contact.Lifecycle(); lifecycle.State == DELETED_CONTACT {
		deletedAt := lifecycle.DeletedAt
		resource.DeletedAt = &deletedAt
	}

	return resource
}

func NewContactResources(contacts []Contact) []ContactResource {
	resources := make([]ContactResource, 0, len(contacts))
	for i := range contacts {
		resources = append(resources, NewContactResource(&contacts[i]))
	}

	return resources
}
