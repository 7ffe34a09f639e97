package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaging(t *testing.T) {
	paging := newPaging(2, CONTACTS_PAGE_SIZE, 25, 10)
	assert.Equal(t, int64(3), paging.Pages)
	assert.Equal(t, int64(11), *paging.From)
	assert.Equal(t, int64(20), *paging.To)

	paging = newPaging(0, CONTACTS_PAGE_SIZE, 0, 0)
	assert.Equal(t, int64(1), paging.Page)
	assert.Equal(t, int64(1), paging.Pages, "An empty result still has one page")
	assert.Nil(t, paging.From)
	assert.Nil(t, paging.To)
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, MIN_PAGE_SIZE, clampPageSize(0))
	assert.Equal(t, MAX_PAGE_SIZE, clampPageSize(1000))
	assert.Equal(t, 25, clampPageSize(25))
}
