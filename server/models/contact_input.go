package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Daskott/contactbook/utils"
)

// ContactInput is the writable part of a contact as sent by a client.
// Only keys present in the request body are applied on update.
type ContactInput struct {
	FirstName      *string `json:"first_name" validate:"required,max=50"`
	LastName       *string `json:"last_name" validate:"required,max=50"`
	OrganizationID *uint   `json:"organization_id"`
	Email          *string `json:"email" validate:"omitempty,max=50,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=50"`
	Address        *string `json:"address" validate:"omitempty,max=150"`
	City           *string `json:"city" validate:"omitempty,max=50"`
	Region         *string `json:"region" validate:"omitempty,max=50"`
	Country        *string `json:"country" validate:"omitempty,max=2"`
	PostalCode     *string `json:"postal_code" validate:"omitempty,max=25"`
	Status         *string `json:"status" validate:"omitempty,max=25"`
	StatusNotes    *string `json:"status_notes" validate:"omitempty,max=255"`

	present map[string]bool
}

type stringField struct {
	key string
	src **string
	dst **string
}

// DecodeContactInput reads a JSON object from 'body'. Keys that aren't part
// of ContactInput (e.g. account_id) are dropped. Values of the wrong JSON type
// are reported per key in 'typeErrs'; 'err' is only set for undecodable bodies.
func DecodeContactInput(body io.Reader) (input *ContactInput, typeErrs map[string][]string, err error) {
	raw := make(map[string]json.RawMessage)

	err = json.NewDecoder(body).Decode(&raw)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}

	input = &ContactInput{present: make(map[string]bool)}
	typeErrs = make(map[string][]string)
	targets := input.targets()

	for key, value := range raw {
		target, ok := targets[key]
		if !ok {
			continue
		}

		input.present[key] = true
		if err := json.Unmarshal(value, target); err != nil {
			typeErrs[key] = append(typeErrs[key], typeErrorMessage(key))
		}
	}

	input.normalize()

	return input, typeErrs, nil
}

// Has reports whether 'key' was sent by the client
func (input *ContactInput) Has(key string) bool {
	return input.present[key]
}

// ApplyTo copies every sent field onto 'contact'. A change of status
// stamps StatusUpdatedAt with 'now'.
func (input *ContactInput) ApplyTo(contact *Contact, now time.Time) {
	if input.Has("first_name") && input.FirstName != nil {
		contact.FirstName = *input.FirstName
	}

	if input.Has("last_name") && input.LastName != nil {
		contact.LastName = *input.LastName
	}

	if input.Has("organization_id") {
		contact.OrganizationID = input.OrganizationID
		contact.Organization = nil
	}

	if input.Has("status") && !sameValue(contact.Status, input.Status) {
		statusUpdatedAt := now
		contact.StatusUpdatedAt = &statusUpdatedAt
	}

	for _, field := range input.stringFields(contact) {
		if input.Has(field.key) {
			*field.dst = *field.src
		}
	}
}

func (input *ContactInput) targets() map[string]interface{} {
	return map[string]interface{}{
		"first_name":      &input.FirstName,
		"last_name":       &input.LastName,
		"organization_id": &input.OrganizationID,
		"email":           &input.Email,
		"phone":           &input.Phone,
		"address":         &input.Address,
		"city":            &input.City,
		"region":          &input.Region,
		"country":         &input.Country,
		"postal_code":     &input.PostalCode,
		"status":          &input.Status,
		"status_notes":    &input.StatusNotes,
	}
}

func (input *ContactInput) stringFields(contact *Contact) []stringField {
	return []stringField{
		{"email", &input.Email, &contact.Email},
		{"phone", &input.Phone, &contact.Phone},
		{"address", &input.Address, &contact.Address},
		{"city", &input.City, &contact.City},
		{"region", &input.Region, &contact.Region},
		{"country", &input.Country, &contact.Country},
		{"postal_code", &input.PostalCode, &contact.PostalCode},
		{"status", &input.Status, &contact.Status},
		{"status_notes", &input.StatusNotes, &contact.StatusNotes},
	}
}

// normalize trims every string & turns blank ones into nil, so a blank
// required field counts as missing and a blank optional one clears the column
func (input *ContactInput) normalize() {
	fields := append(input.stringFields(&Contact{}),
		stringField{key: "first_name", src: &input.FirstName},
		stringField{key: "last_name", src: &input.LastName},
	)

	for _, field := range fields {
		if *field.src == nil {
			continue
		}

		trimmed := strings.TrimSpace(**field.src)
		if trimmed == "" {
			*field.src = nil
			continue
		}
		*field.src = &trimmed
	}
}

func sameValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func typeErrorMessage(key string) string {
	if key == "organization_id" {
		return fmt.Sprintf("The %s must be an integer.", utils.Humanize(key))
	}
	return fmt.Sprintf("The %s must be a string.", utils.Humanize(key))
}
