package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	ACTIVE_ONLY TrashedScope = iota
	DELETED_ONLY
	WITH_DELETED
)

// TrashedScope selects which soft-delete states a contact query can match
type TrashedScope int

// ParseTrashedScope maps the 'trashed' query value to a scope,
// anything other than "with" or "only" means active contacts only
func ParseTrashedScope(value string) TrashedScope {
	switch value {
	case "with":
		return WITH_DELETED
	case "only":
		return DELETED_ONLY
	}
	return ACTIVE_ONLY
}

func (scope TrashedScope) apply(tx *gorm.DB) *gorm.DB {
	switch scope {
	case WITH_DELETED:
		return tx.Unscoped()
	case DELETED_ONLY:
		return tx.Unscoped().Where("contacts.deleted_at IS NOT NULL")
	}
	return tx
}

type ContactFilter struct {
	Search  string
	Trashed TrashedScope
	Status  string
}

func NewContactFilter(search, trashed, status string) ContactFilter {
	return ContactFilter{
		Search:  strings.TrimSpace(search),
		Trashed: ParseTrashedScope(trashed),
		Status:  strings.TrimSpace(status),
	}
}

// Apply narrows 'tx' down to the contacts matching every non-empty filter
func (filter ContactFilter) Apply(tx *gorm.DB) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where(
			"(LOWER(contacts.first_name) LIKE ? OR LOWER(contacts.last_name) LIKE ? OR LOWER(contacts.email) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if filter.Status != "" {
		tx = tx.Where("contacts.status = ?", filter.Status)
	}

	return filter.Trashed.apply(tx)
}
