package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	MAX_PAGE_SIZE      = 100
	MIN_PAGE_SIZE      = 10
	CONTACTS_PAGE_SIZE = 10
)

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Paging describes one page of a result set. From and To are nil
// when the page holds no rows.
type Paging struct {
	Total   int64  `json:"total"`
	Page    int64  `json:"current_page"`
	Pages   int64  `json:"last_page"`
	PerPage int64  `json:"per_page"`
	From    *int64 `json:"from"`
	To      *int64 `json:"to"`
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}

		offset := (page - 1) * clampPageSize(pageSize)
		return db.Offset(offset).Limit(clampPageSize(pageSize))
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func clampPageSize(pageSize int) int {
	switch {
	case pageSize > MAX_PAGE_SIZE:
		return MAX_PAGE_SIZE
	case pageSize <= 0:
		return MIN_PAGE_SIZE
	}
	return pageSize
}

func newPaging(page, pageSize, total, count int64) *Paging {
	paging := &Paging{Page: page, Total: total, PerPage: int64(clampPageSize(int(pageSize)))}
	if paging.Page <= 0 {
		paging.Page = 1
	}

	paging.Pages = int64(math.Ceil(float64(paging.Total) / float64(paging.PerPage)))
	if paging.Pages == 0 {
		paging.Pages = 1
	}

	if count > 0 {
		from := (paging.Page-1)*paging.PerPage + 1
		to := from + count - 1
		paging.From, paging.To = &from, &to
	}

	return paging
}
