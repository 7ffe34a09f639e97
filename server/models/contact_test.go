package models

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(value string) *string {
	return &value
}

func newTestAccount(t *testing.T, name string) *Account {
	account, err := CreateAccount(context.Background(), name)
	require.Nil(t, err)
	return account
}

func TestContactName(t *testing.T) {
	contact := Contact{FirstName: "Jane", LastName: "Smith"}
	assert.Equal(t, "Jane Smith", contact.Name())
}

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		value    string
		expected string
	}{
		{"555-987-6543", "(555)-987-6543"},
		{"5559876543", "(555)-987-6543"},
		{"(555) 987 6543", "(555)-987-6543"},
		{"+1 555 987 6543", "+1 555 987 6543"},
		{"987-6543", "987-6543"},
		{"call me", "call me"},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizePhone(tc.value))
		})
	}
}

func TestCreateContact(t *testing.T) {
	InitializeTestDb()
	ctx := context.Background()

	account := newTestAccount(t, "Test Account")
	organization, err := CreateOrganization(ctx, account.ID, "Acme Inc.")
	require.Nil(t, err)

	contact := &Contact{
		AccountID:      999,
		FirstName:      "Jane",
		LastName:       "Smith",
		Phone:          strPtr("555.987.6543"),
		OrganizationID: &organization.ID,
	}
	require.Nil(t, CreateContact(ctx, account.ID, contact))

	assert.Equal(t, account.ID, contact.AccountID)
	assert.Equal(t, "(555)-987-6543", *contact.Phone)
	assert.Equal(t, "Acme Inc.", contact.Organization.Name)
	assert.Equal(t, ACTIVE_CONTACT, contact.Lifecycle().State)

	found, err := FindContact(ctx, account.ID, contact.ID, ACTIVE_ONLY)
	require.Nil(t, err)
	assert.Equal(t, "(555)-987-6543", *found.Phone)
	assert.Equal(t, "Acme Inc.", found.Organization.Name)

	_, err = FindContact(ctx, account.ID+1, contact.ID, WITH_DELETED)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "Contacts of other accounts can't be found")
}

func TestSoftDeleteAndRestore(t *testing.T) {
	InitializeTestDb()
	ctx := context.Background()

	account := newTestAccount(t, "Test Account")
	contact := &Contact{FirstName: "John", LastName: "Doe"}
	require.Nil(t, CreateContact(ctx, account.ID, contact))

	require.Nil(t, contact.SoftDelete(ctx))

	_, err := FindContact(ctx, account.ID, contact.ID, ACTIVE_ONLY)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	trashed, err := FindContact(ctx, account.ID, contact.ID, WITH_DELETED)
	require.Nil(t, err)
	assert.Equal(t, DELETED_CONTACT, trashed.Lifecycle().State)
	assert.False(t, trashed.Lifecycle().DeletedAt.IsZero())

	trashed, err = FindContact(ctx, account.ID, contact.ID, DELETED_ONLY)
	require.Nil(t, err)

	require.Nil(t, trashed.Restore(ctx))
	assert.Equal(t, ACTIVE_CONTACT, trashed.Lifecycle().State)

	restored, err := FindContact(ctx, account.ID, contact.ID, ACTIVE_ONLY)
	require.Nil(t, err)
	assert.Equal(t, ACTIVE_CONTACT, restored.Lifecycle().State)
}

func TestFetchContacts(t *testing.T) {
	InitializeTestDb()
	ctx := context.Background()

	account := newTestAccount(t, "Test Account")
	otherAccount := newTestAccount(t, "Other Account")

	fixtures := []*Contact{
		{FirstName: "John", LastName: "Smith", Email: strPtr("john@example.com"), Status: strPtr("lead")},
		{FirstName: "Jane", LastName: "Doe", Email: strPtr("jane@example.com"), Status: strPtr("customer")},
		{FirstName: "Harvey", LastName: "Specter", Email: strPtr("harvey@pearson.com"), Status: strPtr("lead")},
		{FirstName: "Louis", LastName: "Litt", Email: strPtr("louis@PEARSON.com")},
	}
	for _, contact := range fixtures {
		require.Nil(t, CreateContact(ctx, account.ID, contact))
	}
	require.Nil(t, fixtures[3].SoftDelete(ctx))

	require.Nil(t, CreateContact(ctx, otherAccount.ID, &Contact{FirstName: "John", LastName: "Other"}))

	testCases := []struct {
		desc          string
		filter        ContactFilter
		expectedNames []string
	}{
		{"no filter", NewContactFilter("", "", ""), []string{"Harvey Specter", "Jane Doe", "John Smith"}},
		{"search first name", NewContactFilter("john", "", ""), []string{"John Smith"}},
		{"search last name", NewContactFilter("DOE", "", ""), []string{"Jane Doe"}},
		{"search email", NewContactFilter("pearson", "", ""), []string{"Harvey Specter"}},
		{"search email with trashed", NewContactFilter("pearson", "with", ""), []string{"Louis Litt", "Harvey Specter"}},
		{"only trashed", NewContactFilter("", "only", ""), []string{"Louis Litt"}},
		{"status", NewContactFilter("", "", "lead"), []string{"Harvey Specter", "John Smith"}},
		{"status & search", NewContactFilter("smith", "", "lead"), []string{"John Smith"}},
		{"no match", NewContactFilter("nobody", "with", ""), []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			contacts, paging, err := FetchContacts(ctx, account.ID, tc.filter, 1)
			require.Nil(t, err)

			names := []string{}
			for _, contact := range contacts {
				names = append(names, contact.Name())
			}
			assert.Equal(t, tc.expectedNames, names)
			assert.Equal(t, int64(len(tc.expectedNames)), paging.Total)
		})
	}
}

func TestFetchContactsPagination(t *testing.T) {
	InitializeTestDb()
	ctx := context.Background()

	account := newTestAccount(t, "Test Account")
	for i := 1; i <= 23; i++ {
		contact := &Contact{FirstName: fmt.Sprintf("Contact%02d", i), LastName: "Doe"}
		require.Nil(t, CreateContact(ctx, account.ID, contact))
	}

	contacts, paging, err := FetchContacts(ctx, account.ID, ContactFilter{}, 3)
	require.Nil(t, err)
	assert.Len(t, contacts, 3)
	assert.Equal(t, "Contact03", contacts[0].FirstName)
	assert.Equal(t, int64(23), paging.Total)
	assert.Equal(t, int64(3), paging.Pages)
	assert.Equal(t, int64(21), *paging.From)
	assert.Equal(t, int64(23), *paging.To)

	contacts, paging, err = FetchContacts(ctx, account.ID, ContactFilter{}, 9)
	require.Nil(t, err)
	assert.Empty(t, contacts)
	assert.Nil(t, paging.From)
	assert.Nil(t, paging.To)
}

func TestContactSaveSetsUpdatedAt(t *testing.T) {
	InitializeTestDb()
	ctx := context.Background()

	account := newTestAccount(t, "Test Account")
	contact := &Contact{FirstName: "John", LastName: "Doe"}
	require.Nil(t, CreateContact(ctx, account.ID, contact))

	createdAt := contact.CreatedAt
	time.Sleep(10 * time.Millisecond)

	contact.City = strPtr("Toronto")
	require.Nil(t, contact.Save(ctx))

	found, err := FindContact(ctx, account.ID, contact.ID, ACTIVE_ONLY)
	require.Nil(t, err)
	assert.Equal(t, "Toronto", *found.City)
	assert.True(t, found.UpdatedAt.After(createdAt))
	assert.Equal(t, account.ID, found.AccountID)
}
