package models

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
)

const AVG_PER_DAY_WINDOW_IN_DAYS = 30

type ContactStats struct {
	TotalContacts     int64  `json:"totalContacts"`
	ContactsToday     int64  `json:"contactsToday"`
	ContactsYesterday int64  `json:"contactsYesterday"`
	ContactsThisWeek  int64  `json:"contactsThisWeek"`
	ContactsLastWeek  int64  `json:"contactsLastWeek"`
	ContactsThisMonth int64  `json:"contactsThisMonth"`
	ContactsLastMonth int64  `json:"contactsLastMonth"`
	AvgPerDay         string `json:"avgPerDay"`
}

// createdWindow is a [From, To) range on contacts.created_at, a nil bound is open
type createdWindow struct {
	From *time.Time
	To   *time.Time
}

// CurrentContactStats counts the active contacts of 'accountID' created in
// calendar windows around 'at'. Days, weeks (starting Monday) & months are
// taken in 'loc'.
func CurrentContactStats(ctx context.Context, accountID uint, at time.Time, loc *time.Location) (*ContactStats, error) {
	if loc == nil {
		loc = time.UTC
	}

	calendar := &now.Config{WeekStartDay: time.Monday, TimeLocation: loc}
	current := calendar.With(at.In(loc))

	startOfToday := current.BeginningOfDay()
	startOfWeek := current.BeginningOfWeek()
	startOfMonth := current.BeginningOfMonth()
	thirtyDaysAgo := at.AddDate(0, 0, -AVG_PER_DAY_WINDOW_IN_DAYS)

	stats := ContactStats{}
	windows := []struct {
		count  *int64
		window createdWindow
	}{
		{&stats.TotalContacts, createdWindow{}},
		{&stats.ContactsToday, between(startOfToday, startOfToday.AddDate(0, 0, 1))},
		{&stats.ContactsYesterday, between(startOfToday.AddDate(0, 0, -1), startOfToday)},
		{&stats.ContactsThisWeek, since(startOfWeek)},
		{&stats.ContactsLastWeek, between(startOfWeek.AddDate(0, 0, -7), startOfWeek)},
		{&stats.ContactsThisMonth, since(startOfMonth)},
		{&stats.ContactsLastMonth, between(startOfMonth.AddDate(0, -1, 0), startOfMonth)},
	}

	for _, w := range windows {
		count, err := countContactsCreated(ctx, accountID, w.window)
		if err != nil {
			return nil, err
		}
		*w.count = count
	}

	last30Days, err := countContactsCreated(ctx, accountID, since(thirtyDaysAgo))
	if err != nil {
		return nil, err
	}
	stats.AvgPerDay = fmt.Sprintf("%.1f", float64(last30Days)/AVG_PER_DAY_WINDOW_IN_DAYS)

	return &stats, nil
}

func countContactsCreated(ctx context.Context, accountID uint, window createdWindow) (int64, error) {
	var count int64

	query := db.WithContext(ctx).Model(&Contact{}).Where("account_id = ?", accountID)
	if window.From != nil {
		query = query.Where("created_at >= ?", window.From.UTC())
	}

	if window.To != nil {
		query = query.Where("created_at < ?", window.To.UTC())
	}

	err := query.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "countContactsCreated")
	}

	return count, nil
}

func between(from, to time.Time) createdWindow {
	return createdWindow{From: &from, To: &to}
}

func since(from time.Time) createdWindow {
	return createdWindow{From: &from}
}
